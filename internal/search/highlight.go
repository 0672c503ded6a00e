package search

import "regexp"

const (
	markOpen  = "<mark>"
	markClose = "</mark>"
)

// Highlighter holds the compiled keyword patterns of one query so they can be
// applied to many result rows.
type Highlighter struct {
	keywords []string
	patterns []*regexp.Regexp
}

func NewHighlighter(query string) *Highlighter {
	kws := Keywords(query)
	h := &Highlighter{keywords: kws, patterns: make([]*regexp.Regexp, len(kws))}
	for i, kw := range kws {
		h.patterns[i] = regexp.MustCompile("(?i)" + regexp.QuoteMeta(kw))
	}
	return h
}

// Apply wraps case-insensitive occurrences of each keyword in <mark> tags.
// Keywords are applied one after another in query order, each over the output of the
// previous one, and the inserted text is the keyword as typed rather than the matched
// text. A later keyword may therefore match inside an earlier marker (e.g. "mark").
func (h *Highlighter) Apply(text string) string {
	if text == "" {
		return text
	}
	for i, re := range h.patterns {
		text = re.ReplaceAllLiteralString(text, markOpen+h.keywords[i]+markClose)
	}
	return text
}

// Highlight is NewHighlighter(query).Apply(text) for a single string.
func Highlight(text, query string) string {
	if text == "" || query == "" {
		return text
	}
	return NewHighlighter(query).Apply(text)
}

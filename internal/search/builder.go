// Package search turns a free-text query into a SQL predicate over the searchable
// prescription columns, and highlights matched keywords in result text.
package search

import "strings"

type MatchType string

const (
	Fuzzy MatchType = "fuzzy"
	Exact MatchType = "exact"
	And   MatchType = "and"
	Or    MatchType = "or"
)

// Columns tested by every mode, in the order conditions are emitted.
var Columns = []string{"efficacy", "name", "ingredients", "symptoms"}

// ParseMatchType maps the raw match_type parameter. Empty and unknown values fall back to fuzzy.
func ParseMatchType(raw string) MatchType {
	switch MatchType(strings.TrimSpace(raw)) {
	case Exact:
		return Exact
	case And:
		return And
	case Or:
		return Or
	default:
		return Fuzzy
	}
}

// Keywords splits q on any whitespace.
func Keywords(q string) []string {
	return strings.Fields(q)
}

// Build returns a WHERE predicate (without the keyword) and its positional args.
// fuzzy and exact both test the whole query as one substring. and/or test each
// keyword against every column and join the per-keyword groups with AND/OR.
// Matching uses instr(), so it is case-sensitive and free of LIKE wildcards.
// An empty query yields an empty predicate.
func Build(q string, mode MatchType) (string, []any) {
	q = strings.TrimSpace(q)
	if q == "" {
		return "", nil
	}

	switch mode {
	case And, Or:
		kws := Keywords(q)
		groups := make([]string, 0, len(kws))
		args := make([]any, 0, len(kws)*len(Columns))
		for _, kw := range kws {
			g, a := group(kw)
			groups = append(groups, g)
			args = append(args, a...)
		}
		sep := " AND "
		if mode == Or {
			sep = " OR "
		}
		return strings.Join(groups, sep), args
	default:
		return group(q)
	}
}

func group(term string) (string, []any) {
	conds := make([]string, len(Columns))
	args := make([]any, len(Columns))
	for i, col := range Columns {
		conds[i] = "instr(" + col + ", ?) > 0"
		args[i] = term
	}
	return "(" + strings.Join(conds, " OR ") + ")", args
}

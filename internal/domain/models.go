package domain

type Prescription struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Efficacy    string `db:"efficacy" json:"efficacy"`
	Ingredients string `db:"ingredients" json:"ingredients"`
	Usage       string `db:"usage" json:"usage"`
	Precautions string `db:"precautions" json:"precautions"`
	Category    string `db:"category" json:"category"`
	Source      string `db:"source" json:"source"`
	Symptoms    string `db:"symptoms" json:"symptoms"`
	CreatedAt   string `db:"created_at" json:"created_at"`
	UpdatedAt   string `db:"updated_at" json:"updated_at"`
}

// Fields that a partial update may touch, in column order.
var UpdatableFields = []string{
	"name", "efficacy", "ingredients", "usage", "precautions", "category", "source", "symptoms",
}

type CategoryStat struct {
	Category string `db:"category" json:"category"`
	Count    int    `db:"count" json:"count"`
}

type Stats struct {
	TotalPrescriptions int            `json:"total_prescriptions"`
	CategoryStats      []CategoryStat `json:"category_stats"`
}

type ListResult struct {
	Prescriptions []Prescription `json:"prescriptions"`
	Total         int            `json:"total"`
	Page          int            `json:"page"`
	Limit         int            `json:"limit"`
	Pages         int            `json:"pages"`
}

// SearchResult.Total counts the rows on the returned page only.
type SearchResult struct {
	Prescriptions []Prescription `json:"prescriptions"`
	Total         int            `json:"total"`
	Page          int            `json:"page"`
	Limit         int            `json:"limit"`
	Query         string         `json:"query"`
	MatchType     string         `json:"match_type"`
}

package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"fangji/internal/domain"
	"fangji/internal/repos"
	"fangji/internal/search"
)

const DefaultLimit = 20

// CreateInput is the body of a create request. Only name and efficacy are required.
type CreateInput struct {
	Name        string `json:"name" validate:"required"`
	Efficacy    string `json:"efficacy" validate:"required"`
	Ingredients string `json:"ingredients"`
	Usage       string `json:"usage"`
	Precautions string `json:"precautions"`
	Category    string `json:"category"`
	Source      string `json:"source"`
	Symptoms    string `json:"symptoms"`
}

type PrescriptionService struct {
	Prescriptions *repos.PrescriptionRepo
	validate      *validator.Validate
}

func NewPrescriptionService(prescriptions *repos.PrescriptionRepo) *PrescriptionService {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &PrescriptionService{Prescriptions: prescriptions, validate: v}
}

// normalize applies the list/search paging defaults. Out-of-range values are
// clamped rather than rejected. A page too far out for its offset to fit in an int
// gets the largest offset, which selects no rows.
func normalize(page, limit int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if page-1 > math.MaxInt/limit {
		return page, limit, math.MaxInt
	}
	return page, limit, (page - 1) * limit
}

func pageCount(total, limit int) int {
	n := total / limit
	if total%limit != 0 {
		n++
	}
	return n
}

func (s *PrescriptionService) List(ctx context.Context, page, limit int, category string) (domain.ListResult, error) {
	page, limit, offset := normalize(page, limit)

	rows, err := s.Prescriptions.List(ctx, category, limit, offset)
	if err != nil {
		return domain.ListResult{}, err
	}
	total, err := s.Prescriptions.Count(ctx, category)
	if err != nil {
		return domain.ListResult{}, err
	}
	return domain.ListResult{
		Prescriptions: rows,
		Total:         total,
		Page:          page,
		Limit:         limit,
		Pages:         pageCount(total, limit),
	}, nil
}

func (s *PrescriptionService) Get(ctx context.Context, id int64) (domain.Prescription, error) {
	p, err := s.Prescriptions.Get(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Prescription{}, ErrNotFound
	}
	if err != nil {
		return domain.Prescription{}, fmt.Errorf("get prescription %d: %w", id, err)
	}
	return p, nil
}

// Search matches q against name, efficacy, ingredients and symptoms and highlights
// the keywords in name and efficacy. Total counts the returned page only.
// matchType is echoed back as given; unknown values search like "fuzzy".
func (s *PrescriptionService) Search(ctx context.Context, q, matchType string, page, limit int) (domain.SearchResult, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return domain.SearchResult{}, &ValidationError{Field: "q", Message: "搜索关键词不能为空"}
	}
	if matchType == "" {
		matchType = string(search.Fuzzy)
	}
	page, limit, offset := normalize(page, limit)

	where, args := search.Build(q, search.ParseMatchType(matchType))
	rows, err := s.Prescriptions.Search(ctx, where, args, limit, offset)
	if err != nil {
		return domain.SearchResult{}, err
	}
	hl := search.NewHighlighter(q)
	for i := range rows {
		rows[i].Name = hl.Apply(rows[i].Name)
		rows[i].Efficacy = hl.Apply(rows[i].Efficacy)
	}
	return domain.SearchResult{
		Prescriptions: rows,
		Total:         len(rows),
		Page:          page,
		Limit:         limit,
		Query:         q,
		MatchType:     matchType,
	}, nil
}

func (s *PrescriptionService) Create(ctx context.Context, in CreateInput) (int64, error) {
	if err := s.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return 0, required(verrs[0].Field())
		}
		return 0, err
	}
	return s.Prescriptions.Insert(ctx, domain.Prescription{
		Name:        in.Name,
		Efficacy:    in.Efficacy,
		Ingredients: in.Ingredients,
		Usage:       in.Usage,
		Precautions: in.Precautions,
		Category:    in.Category,
		Source:      in.Source,
		Symptoms:    in.Symptoms,
	})
}

// UpdateFields picks the recognised fields out of a decoded JSON object.
// null becomes "", other non-string values are formatted with fmt.
func UpdateFields(body map[string]any) map[string]string {
	out := map[string]string{}
	for _, f := range domain.UpdatableFields {
		v, ok := body[f]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case nil:
			out[f] = ""
		case string:
			out[f] = t
		default:
			out[f] = fmt.Sprint(t)
		}
	}
	return out
}

// Update applies a partial update. A body without recognised fields is a
// successful no-op that leaves updated_at untouched.
func (s *PrescriptionService) Update(ctx context.Context, id int64, body map[string]any) error {
	ok, err := s.Prescriptions.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}

	fields := UpdateFields(body)
	for _, f := range []string{"name", "efficacy"} {
		if v, present := fields[f]; present && v == "" {
			return required(f)
		}
	}
	if len(fields) == 0 {
		return nil
	}
	_, err = s.Prescriptions.Update(ctx, id, fields)
	return err
}

func (s *PrescriptionService) Delete(ctx context.Context, id int64) error {
	n, err := s.Prescriptions.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

package repos

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"fangji/internal/domain"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) List(ctx context.Context) ([]string, error) {
	out := []string{}
	err := r.db.SelectContext(ctx, &out, `
  SELECT DISTINCT category
  FROM prescriptions
  WHERE category IS NOT NULL
  ORDER BY category
`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return out, nil
}

func (r *CategoryRepo) Total(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM prescriptions`); err != nil {
		return 0, fmt.Errorf("count prescriptions: %w", err)
	}
	return n, nil
}

func (r *CategoryRepo) Counts(ctx context.Context) ([]domain.CategoryStat, error) {
	out := []domain.CategoryStat{}
	err := r.db.SelectContext(ctx, &out, `
  SELECT category, COUNT(*) AS count
  FROM prescriptions
  WHERE category IS NOT NULL
  GROUP BY category
  ORDER BY count DESC, category
`)
	if err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}
	return out, nil
}

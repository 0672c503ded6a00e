package repos

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"fangji/internal/domain"
)

const prescriptionCols = `
    id, name, efficacy,
    COALESCE(ingredients,'') AS ingredients,
    COALESCE(usage,'') AS usage,
    COALESCE(precautions,'') AS precautions,
    COALESCE(category,'') AS category,
    COALESCE(source,'') AS source,
    COALESCE(symptoms,'') AS symptoms,
    COALESCE(created_at,'') AS created_at,
    COALESCE(updated_at,'') AS updated_at`

type PrescriptionRepo struct {
	db    *sqlx.DB
	clock Clock
}

func NewPrescriptionRepo(db *sqlx.DB) *PrescriptionRepo {
	return &PrescriptionRepo{db: db, clock: systemClock{}}
}

// WithClock replaces the time source used for created_at/updated_at.
func (r *PrescriptionRepo) WithClock(c Clock) *PrescriptionRepo {
	r.clock = c
	return r
}

func categoryFilter(category string) (string, []any) {
	if category == "" {
		return `1=1`, nil
	}
	return `category = ?`, []any{category}
}

func (r *PrescriptionRepo) List(ctx context.Context, category string, limit, offset int) ([]domain.Prescription, error) {
	where, args := categoryFilter(category)
	args = append(args, limit, offset)

	out := []domain.Prescription{}
	err := r.db.SelectContext(ctx, &out, `
  SELECT`+prescriptionCols+`
  FROM prescriptions
  WHERE `+where+`
  ORDER BY created_at DESC, id DESC
  LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("list prescriptions: %w", err)
	}
	return out, nil
}

func (r *PrescriptionRepo) Count(ctx context.Context, category string) (int, error) {
	where, args := categoryFilter(category)
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM prescriptions WHERE `+where, args...); err != nil {
		return 0, fmt.Errorf("count prescriptions: %w", err)
	}
	return n, nil
}

// Get returns sql.ErrNoRows when id does not exist.
func (r *PrescriptionRepo) Get(ctx context.Context, id int64) (domain.Prescription, error) {
	var p domain.Prescription
	err := r.db.GetContext(ctx, &p, `
  SELECT`+prescriptionCols+`
  FROM prescriptions
  WHERE id = ?`, id)
	return p, err
}

func (r *PrescriptionRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM prescriptions WHERE id = ?`, id); err != nil {
		return false, fmt.Errorf("check prescription %d: %w", id, err)
	}
	return n > 0, nil
}

// Insert stores p and returns the assigned id. p.ID and the timestamps are ignored.
func (r *PrescriptionRepo) Insert(ctx context.Context, p domain.Prescription) (int64, error) {
	now := stamp(r.clock)
	res, err := r.db.ExecContext(ctx, `
  INSERT INTO prescriptions(name, efficacy, ingredients, usage, precautions, category, source, symptoms, created_at, updated_at)
  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.Efficacy, p.Ingredients, p.Usage, p.Precautions, p.Category, p.Source, p.Symptoms, now, now)
	if err != nil {
		return 0, fmt.Errorf("insert prescription: %w", err)
	}
	return res.LastInsertId()
}

// Update sets the given columns and refreshes updated_at, which never moves backwards.
// Keys outside domain.UpdatableFields are ignored; with no usable key nothing is written.
func (r *PrescriptionRepo) Update(ctx context.Context, id int64, fields map[string]string) (int64, error) {
	sets := []string{}
	args := []any{}
	for _, col := range domain.UpdatableFields {
		v, ok := fields[col]
		if !ok {
			continue
		}
		sets = append(sets, col+` = ?`)
		args = append(args, v)
	}
	if len(sets) == 0 {
		return 0, nil
	}
	sets = append(sets, `updated_at = MAX(COALESCE(updated_at,''), ?)`)
	args = append(args, stamp(r.clock), id)

	res, err := r.db.ExecContext(ctx, `UPDATE prescriptions SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return 0, fmt.Errorf("update prescription %d: %w", id, err)
	}
	return res.RowsAffected()
}

func (r *PrescriptionRepo) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM prescriptions WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("delete prescription %d: %w", id, err)
	}
	return res.RowsAffected()
}

// Search runs a predicate produced by the search package, newest id first.
func (r *PrescriptionRepo) Search(ctx context.Context, where string, whereArgs []any, limit, offset int) ([]domain.Prescription, error) {
	if where == "" {
		where = `1=1`
	}
	args := append(append([]any{}, whereArgs...), limit, offset)

	out := []domain.Prescription{}
	err := r.db.SelectContext(ctx, &out, `
  SELECT`+prescriptionCols+`
  FROM prescriptions
  WHERE `+where+`
  ORDER BY id DESC
  LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("search prescriptions: %w", err)
	}
	return out, nil
}

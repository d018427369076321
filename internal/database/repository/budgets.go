package repository

import (
	"context"
	"database/sql"
)

// BudgetRepo handles the per-category budget limits. Budgets are read-only
// from the application's point of view; Upsert exists for seeding.
type BudgetRepo struct {
	db *sql.DB
}

func NewBudgetRepo(db *sql.DB) *BudgetRepo { return &BudgetRepo{db: db} }

func (r *BudgetRepo) Upsert(ctx context.Context, b Budget) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO budgets(category, limit_cents) VALUES(?, ?)
	ON CONFLICT(category) DO UPDATE SET limit_cents = excluded.limit_cents;
	`, b.Category, b.LimitCents)
	return err
}

func (r *BudgetRepo) List(ctx context.Context) ([]Budget, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT category, limit_cents FROM budgets ORDER BY category")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Budget
	for rows.Next() {
		var b Budget
		if err := rows.Scan(&b.Category, &b.LimitCents); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// ExpenseRepo handles expense rows.
type ExpenseRepo struct {
	db *sql.DB
}

func NewExpenseRepo(db *sql.DB) *ExpenseRepo { return &ExpenseRepo{db: db} }

const expenseColumns = "id, user_id, amount, description, location, category, date, status, notes, attachment_name, attachment_data, created_at, updated_at"

func (r *ExpenseRepo) Insert(ctx context.Context, e Expense) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO expenses(
	 id, user_id, amount, description, location, category, date, status,
	 notes, attachment_name, attachment_data, created_at, updated_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP);
	`, e.ID, e.UserID, e.AmountCents, e.Description, e.Location, e.Category,
		e.Date, e.Status, e.Notes, e.AttachmentName, e.AttachmentData)
	return err
}

// Update applies a partial update to an expense row.
func (r *ExpenseRepo) Update(ctx context.Context, id string, upd ExpenseUpdate) error {
	var sets []string
	var args []interface{}
	if upd.AmountCents != nil {
		sets = append(sets, "amount = ?")
		args = append(args, *upd.AmountCents)
	}
	set := func(col string, v *string) {
		if v != nil {
			sets = append(sets, col+" = ?")
			args = append(args, *v)
		}
	}
	set("description", upd.Description)
	set("location", upd.Location)
	set("category", upd.Category)
	set("date", upd.Date)
	set("status", upd.Status)
	set("notes", upd.Notes)

	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)
	res, err := r.db.ExecContext(ctx,
		"UPDATE expenses SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("update expense %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *ExpenseRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("delete expense %s: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteAll clears every expense for all users in one statement.
func (r *ExpenseRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM expenses")
	return err
}

// List returns all expenses, most recent date first.
func (r *ExpenseRepo) List(ctx context.Context) ([]Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+expenseColumns+" FROM expenses ORDER BY date DESC, created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *ExpenseRepo) Get(ctx context.Context, id string) (*Expense, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+expenseColumns+" FROM expenses WHERE id = ?", id)
	e, err := scanExpense(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

// scanExpense handles nullable fields for both Row and Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanExpense(row scanner) (Expense, error) {
	var e Expense
	var notes, attName, attData sql.NullString
	if err := row.Scan(&e.ID, &e.UserID, &e.AmountCents, &e.Description, &e.Location,
		&e.Category, &e.Date, &e.Status, &notes, &attName, &attData,
		&e.CreatedAt, &e.UpdatedAt); err != nil {
		return Expense{}, err
	}
	if notes.Valid {
		e.Notes = &notes.String
	}
	if attName.Valid {
		e.AttachmentName = &attName.String
	}
	if attData.Valid {
		e.AttachmentData = &attData.String
	}
	return e, nil
}

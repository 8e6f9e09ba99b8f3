package store

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/nzbudget/budget-server/internal/domain"
	"github.com/nzbudget/budget-server/pkg/dateutil"
	"github.com/nzbudget/budget-server/pkg/money"
)

// CreateExpense inserts an expense for the user, assigning an id if the
// caller left it empty.
func (s *Store) CreateExpense(userID string, e *domain.Expense) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	_, err := s.db.Exec(`INSERT INTO expenses
		(id, user_id, name, amount_cents, frequency, due_day, due_date, account_id, sub_account_cents)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, userID, e.Name, money.Cents(e.Amount), string(e.Frequency), e.DueDay,
		dateText(e.DueDate), nullIfEmpty(e.AccountID), money.Cents(e.SubAccountBalance))
	return err
}

// UpdateExpense rewrites an expense owned by the user.
func (s *Store) UpdateExpense(userID string, e *domain.Expense) error {
	res, err := s.db.Exec(`UPDATE expenses SET
		name = ?, amount_cents = ?, frequency = ?, due_day = ?, due_date = ?,
		account_id = ?, sub_account_cents = ?
		WHERE id = ? AND user_id = ?`,
		e.Name, money.Cents(e.Amount), string(e.Frequency), e.DueDay,
		dateText(e.DueDate), nullIfEmpty(e.AccountID), money.Cents(e.SubAccountBalance),
		e.ID, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// DeleteExpense removes an expense owned by the user.
func (s *Store) DeleteExpense(userID, id string) error {
	res, err := s.db.Exec("DELETE FROM expenses WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// ListExpenses returns all of the user's expenses.
func (s *Store) ListExpenses(userID string) ([]domain.Expense, error) {
	rows, err := s.db.Query(`SELECT
		id, name, amount_cents, frequency, due_day, due_date, account_id, sub_account_cents
		FROM expenses WHERE user_id = ? ORDER BY name`, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []domain.Expense
	for rows.Next() {
		var e domain.Expense
		var amount, subAccount int64
		var frequency string
		var dueDate, accountID sql.NullString
		err := rows.Scan(&e.ID, &e.Name, &amount, &frequency, &e.DueDay,
			&dueDate, &accountID, &subAccount)
		if err != nil {
			return nil, err
		}
		e.Amount = money.FromCents(amount)
		e.SubAccountBalance = money.FromCents(subAccount)
		e.Frequency = domain.Frequency(frequency)
		if accountID.Valid {
			e.AccountID = accountID.String
		}
		if dueDate.Valid && dueDate.String != "" {
			if t, err := dateutil.ParseDate(dueDate.String); err == nil {
				e.DueDate = &t
			}
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

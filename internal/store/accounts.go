package store

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/nzbudget/budget-server/internal/domain"
	"github.com/nzbudget/budget-server/pkg/dateutil"
	"github.com/nzbudget/budget-server/pkg/money"
)

// CreateAccount inserts an account for the user, assigning an id if the
// caller left it empty.
func (s *Store) CreateAccount(userID string, a *domain.Account) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	_, err := s.db.Exec(`INSERT INTO accounts
		(id, user_id, name, balance_cents, acceleration_cents, acceleration_buffer_weeks,
		 is_spending, is_week_ahead, target_cents, priority, starting_balance_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, userID, a.Name, money.Cents(a.Balance), money.Cents(a.AccelerationAmount),
		a.AccelerationBufferWeeks, boolInt(a.IsSpendingAccount), boolInt(a.IsWeekAhead),
		money.Cents(a.TargetBalance), a.Priority, dateText(a.StartingBalanceDate))
	return err
}

// UpdateAccount rewrites an account owned by the user.
func (s *Store) UpdateAccount(userID string, a *domain.Account) error {
	res, err := s.db.Exec(`UPDATE accounts SET
		name = ?, balance_cents = ?, acceleration_cents = ?, acceleration_buffer_weeks = ?,
		is_spending = ?, is_week_ahead = ?, target_cents = ?, priority = ?, starting_balance_date = ?
		WHERE id = ? AND user_id = ?`,
		a.Name, money.Cents(a.Balance), money.Cents(a.AccelerationAmount),
		a.AccelerationBufferWeeks, boolInt(a.IsSpendingAccount), boolInt(a.IsWeekAhead),
		money.Cents(a.TargetBalance), a.Priority, dateText(a.StartingBalanceDate),
		a.ID, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// DeleteAccount removes an account and orphans its expenses. The expenses
// keep their sub-ledger balances and become unallocated.
func (s *Store) DeleteAccount(userID, id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec("DELETE FROM accounts WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return err
	}
	if err := requireRow(res); err != nil {
		return err
	}
	if _, err := tx.Exec("UPDATE expenses SET account_id = NULL WHERE account_id = ? AND user_id = ?", id, userID); err != nil {
		return err
	}
	return tx.Commit()
}

// ListAccounts returns all of the user's accounts ordered by priority.
func (s *Store) ListAccounts(userID string) ([]domain.Account, error) {
	rows, err := s.db.Query(`SELECT
		id, name, balance_cents, acceleration_cents, acceleration_buffer_weeks,
		is_spending, is_week_ahead, target_cents, priority, starting_balance_date
		FROM accounts WHERE user_id = ? ORDER BY priority, name`, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []domain.Account
	for rows.Next() {
		var a domain.Account
		var balance, accel, target int64
		var spending, weekAhead int
		var startDate sql.NullString
		err := rows.Scan(&a.ID, &a.Name, &balance, &accel, &a.AccelerationBufferWeeks,
			&spending, &weekAhead, &target, &a.Priority, &startDate)
		if err != nil {
			return nil, err
		}
		a.Balance = money.FromCents(balance)
		a.AccelerationAmount = money.FromCents(accel)
		a.TargetBalance = money.FromCents(target)
		a.IsSpendingAccount = spending != 0
		a.IsWeekAhead = weekAhead != 0
		if startDate.Valid && startDate.String != "" {
			if t, err := dateutil.ParseDate(startDate.String); err == nil {
				a.StartingBalanceDate = &t
			}
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// dateText renders an optional date as its wire format, or NULL.
func dateText(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(dateutil.DateLayout)
}

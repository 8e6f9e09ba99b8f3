package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/nzbudget/budget-server/internal/domain"
	"github.com/nzbudget/budget-server/pkg/dateutil"
	"github.com/nzbudget/budget-server/pkg/money"
)

// SaveSettings upserts the user's budget settings.
func (s *Store) SaveSettings(userID string, st domain.Settings) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO settings
		(user_id, pay_amount_cents, pay_type, kiwisaver, kiwisaver_rate, student_loan,
		 ietc, allowance_cents, allowance_frequency, horizon_weeks, start_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, money.Cents(st.PayAmount), string(st.PayType), boolInt(st.KiwiSaver),
		st.KiwiSaverRate.String(), boolInt(st.StudentLoan), boolInt(st.IETC),
		money.Cents(st.AllowanceAmount), string(st.AllowanceFrequency),
		st.HorizonWeeks, st.StartDate.Format(dateutil.DateLayout))
	return err
}

// GetSettings returns the user's settings. ErrNotFound means the profile
// has not been configured yet.
func (s *Store) GetSettings(userID string) (domain.Settings, error) {
	var st domain.Settings
	var payAmount, allowance int64
	var payType, ksRate, allowanceFreq, startDate string
	var kiwiSaver, studentLoan, ietc int

	err := s.db.QueryRow(`SELECT
		pay_amount_cents, pay_type, kiwisaver, kiwisaver_rate, student_loan,
		ietc, allowance_cents, allowance_frequency, horizon_weeks, start_date
		FROM settings WHERE user_id = ?`, userID,
	).Scan(&payAmount, &payType, &kiwiSaver, &ksRate, &studentLoan,
		&ietc, &allowance, &allowanceFreq, &st.HorizonWeeks, &startDate)
	if errors.Is(err, sql.ErrNoRows) {
		return st, ErrNotFound
	}
	if err != nil {
		return st, err
	}

	st.PayAmount = money.FromCents(payAmount)
	st.PayType = domain.PayType(payType)
	st.KiwiSaver = kiwiSaver != 0
	st.StudentLoan = studentLoan != 0
	st.IETC = ietc != 0
	st.AllowanceAmount = money.FromCents(allowance)
	st.AllowanceFrequency = domain.Frequency(allowanceFreq)

	if st.KiwiSaverRate, err = decimal.NewFromString(ksRate); err != nil {
		return st, fmt.Errorf("parsing kiwisaver rate: %w", err)
	}
	if st.StartDate, err = dateutil.ParseDate(startDate); err != nil {
		return st, fmt.Errorf("parsing start date: %w", err)
	}
	return st, nil
}

// LoadBudget assembles the full budget snapshot for a user. Settings must
// exist; accounts and expenses may be empty.
func (s *Store) LoadBudget(userID string) (*domain.Budget, error) {
	settings, err := s.GetSettings(userID)
	if err != nil {
		return nil, err
	}
	accounts, err := s.ListAccounts(userID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.ListExpenses(userID)
	if err != nil {
		return nil, err
	}
	b := &domain.Budget{
		Settings: settings,
		Accounts: accounts,
		Expenses: expenses,
	}
	b.Sanitize()
	return b, nil
}

package service

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nzbudget/budget-server/internal/config"
	"github.com/nzbudget/budget-server/internal/domain"
	"github.com/nzbudget/budget-server/internal/store"
	"github.com/nzbudget/budget-server/pkg/dateutil"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "budget.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg := &config.Config{
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
	}
	return NewService(st, log, cfg)
}

func registerUser(t *testing.T, s *Service) *domain.User {
	t.Helper()
	u, err := s.Register("test@example.com", "test", "long enough password")
	require.NoError(t, err)
	return u
}

func testSettings() domain.Settings {
	return domain.Settings{
		PayAmount:    decimal.NewFromInt(1200),
		PayType:      domain.PayGross,
		HorizonWeeks: 12,
		StartDate:    dateutil.Date(2025, 1, 6),
	}
}

func TestRegisterAndLogin(t *testing.T) {
	s := newTestService(t)
	u := registerUser(t, s)

	tokenStr, err := s.Login("test@example.com", "long enough password")
	require.NoError(t, err)

	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(*jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(*jwt.RegisteredClaims)
	assert.Equal(t, u.ID, claims.Subject)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestRegisterRejectsWeakInput(t *testing.T) {
	s := newTestService(t)

	_, err := s.Register("", "x", "long enough password")
	assert.Error(t, err)

	_, err = s.Register("short@example.com", "x", "short")
	assert.ErrorContains(t, err, "at least 8 characters")
}

func TestLoginBadPassword(t *testing.T) {
	s := newTestService(t)
	registerUser(t, s)

	_, err := s.Login("test@example.com", "not the password")
	assert.ErrorIs(t, err, store.ErrInvalidCredentials)
}

func TestCreateExpenseValidatesAndSanitizes(t *testing.T) {
	s := newTestService(t)
	u := registerUser(t, s)

	err := s.CreateExpense(u.ID, &domain.Expense{
		Name:      "Bad",
		Amount:    decimal.NewFromInt(50),
		Frequency: "sometimes",
	})
	assert.ErrorContains(t, err, "unknown frequency")

	e := &domain.Expense{
		Name:              "Power",
		Amount:            decimal.NewFromInt(60),
		Frequency:         domain.Weekly,
		DueDay:            3,
		SubAccountBalance: decimal.NewFromInt(-5),
	}
	require.NoError(t, s.CreateExpense(u.ID, e))

	expenses, err := s.ListExpenses(u.ID)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.True(t, expenses[0].SubAccountBalance.IsZero(), "negative sub-ledger should be coerced to zero")
}

func TestSecondSpendingAccountRejected(t *testing.T) {
	s := newTestService(t)
	u := registerUser(t, s)

	require.NoError(t, s.CreateAccount(u.ID, &domain.Account{Name: "Everyday", IsSpendingAccount: true}))

	err := s.CreateAccount(u.ID, &domain.Account{Name: "Also everyday", IsSpendingAccount: true})
	assert.ErrorContains(t, err, "already the spending account")

	// Updating the existing spending account is fine.
	accounts, err := s.ListAccounts(u.ID)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	accounts[0].Balance = decimal.NewFromInt(100)
	assert.NoError(t, s.UpdateAccount(u.ID, &accounts[0]))
}

func TestProjectionRequiresSettings(t *testing.T) {
	s := newTestService(t)
	u := registerUser(t, s)

	_, err := s.Projection(u.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestProjectionComputesAndCaches(t *testing.T) {
	s := newTestService(t)
	u := registerUser(t, s)

	require.NoError(t, s.SaveSettings(u.ID, testSettings()))
	bills := &domain.Account{Name: "Bills", Balance: decimal.NewFromInt(100)}
	require.NoError(t, s.CreateAccount(u.ID, bills))
	require.NoError(t, s.CreateExpense(u.ID, &domain.Expense{
		Name:      "Power",
		Amount:    decimal.NewFromInt(60),
		Frequency: domain.Weekly,
		DueDay:    3,
		AccountID: bills.ID,
	}))

	first, err := s.Projection(u.ID)
	require.NoError(t, err)
	require.Len(t, first.Plans, 1)
	require.Len(t, first.Projections, 1)
	assert.True(t, first.WeeklyExpenseTotal.Equal(decimal.NewFromInt(60)))

	// Second call without edits returns the cached summary.
	second, err := s.Projection(u.ID)
	require.NoError(t, err)
	assert.Same(t, first, second)

	// An edit invalidates the cache; the next call sees the new expense.
	require.NoError(t, s.CreateExpense(u.ID, &domain.Expense{
		Name:      "Internet",
		Amount:    decimal.NewFromInt(20),
		Frequency: domain.Weekly,
		DueDay:    1,
		AccountID: bills.ID,
	}))
	third, err := s.Projection(u.ID)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.True(t, third.WeeklyExpenseTotal.Equal(decimal.NewFromInt(80)))
}

func TestDebouncedRecompute(t *testing.T) {
	s := newTestService(t)
	u := registerUser(t, s)
	require.NoError(t, s.SaveSettings(u.ID, testSettings()))

	// A burst of edits leaves exactly one pending timer.
	for i := 0; i < 5; i++ {
		require.NoError(t, s.CreateExpense(u.ID, &domain.Expense{
			Name:      "Spotify",
			Amount:    decimal.NewFromInt(15),
			Frequency: domain.Weekly,
			DueDay:    1,
		}))
	}
	s.mu.RLock()
	pending := len(s.pending)
	s.mu.RUnlock()
	assert.Equal(t, 1, pending)

	// Eventually the background recompute repopulates the cache.
	assert.Eventually(t, func() bool {
		s.mu.RLock()
		defer s.mu.RUnlock()
		_, ok := s.cache[u.ID]
		return ok
	}, 5*time.Second, 20*time.Millisecond)
}

func TestDeductions(t *testing.T) {
	s := newTestService(t)

	res, err := s.Deductions(testSettings())
	require.NoError(t, err)
	assert.True(t, res.WeeklyNet.Sub(decimal.NewFromFloat(969.57)).Abs().LessThan(decimal.NewFromFloat(0.01)))

	_, err = s.Deductions(domain.Settings{PayType: "weird", HorizonWeeks: 1})
	assert.Error(t, err)
}

func TestStartStop(t *testing.T) {
	s := newTestService(t)
	require.NoError(t, s.Start())
	s.Stop()
}

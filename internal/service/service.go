// Package service holds the business logic between the HTTP layer and the
// store: authentication, budget CRUD with boundary sanitization, and the
// cached projection summary.
package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/nzbudget/budget-server/internal/calculation"
	"github.com/nzbudget/budget-server/internal/config"
	"github.com/nzbudget/budget-server/internal/domain"
	"github.com/nzbudget/budget-server/internal/store"
)

// recomputeDelay is how long after the last edit the projection cache is
// rebuilt. Rapid successive edits collapse into one recompute.
const recomputeDelay = 500 * time.Millisecond

// Service handles business logic.
type Service struct {
	store  *store.Store
	engine *calculation.Engine
	log    *logrus.Logger
	config *config.Config

	mu      sync.RWMutex
	cache   map[string]*domain.BudgetSummary
	pending map[string]*time.Timer

	cron *cron.Cron
}

// NewService initializes a new service.
func NewService(st *store.Store, log *logrus.Logger, cfg *config.Config) *Service {
	engine := calculation.NewEngine()
	engine.SetLogger(log)
	return &Service{
		store:   st,
		engine:  engine,
		log:     log,
		config:  cfg,
		cache:   make(map[string]*domain.BudgetSummary),
		pending: make(map[string]*time.Timer),
		cron:    cron.New(),
	}
}

// Start schedules the nightly cache refresh. Projections depend on the
// current date, so a summary computed yesterday drifts overnight.
func (s *Service) Start() error {
	_, err := s.cron.AddFunc("0 3 * * *", s.refreshAll)
	if err != nil {
		return fmt.Errorf("scheduling nightly refresh: %w", err)
	}
	s.cron.Start()
	return nil
}

// Stop halts the background scheduler and any pending recomputes.
func (s *Service) Stop() {
	s.cron.Stop()
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.pending {
		t.Stop()
		delete(s.pending, id)
	}
}

// Register creates a new user account.
func (s *Service) Register(email, username, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required")
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}
	u, err := s.store.CreateUser(email, username, password)
	if err != nil {
		return nil, err
	}
	s.log.Infof("User registered: %s", u.Email)
	return u, nil
}

// Login authenticates a user and returns a signed JWT.
func (s *Service) Login(email, password string) (string, error) {
	u, err := s.store.Authenticate(email, password)
	if err != nil {
		return "", err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   u.ID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.config.TokenTTL)),
	})
	signed, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	s.log.Infof("User logged in: %s", u.Email)
	return signed, nil
}

// CreateExpense validates, sanitizes and stores a new expense.
func (s *Service) CreateExpense(userID string, e *domain.Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}
	e.Sanitize()
	if err := s.store.CreateExpense(userID, e); err != nil {
		return err
	}
	s.invalidate(userID)
	return nil
}

// UpdateExpense validates, sanitizes and rewrites an expense.
func (s *Service) UpdateExpense(userID string, e *domain.Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}
	e.Sanitize()
	if err := s.store.UpdateExpense(userID, e); err != nil {
		return err
	}
	s.invalidate(userID)
	return nil
}

// DeleteExpense removes an expense.
func (s *Service) DeleteExpense(userID, id string) error {
	if err := s.store.DeleteExpense(userID, id); err != nil {
		return err
	}
	s.invalidate(userID)
	return nil
}

// ListExpenses returns the user's expenses.
func (s *Service) ListExpenses(userID string) ([]domain.Expense, error) {
	return s.store.ListExpenses(userID)
}

// CreateAccount validates, sanitizes and stores a new account, enforcing
// the single-spending-account rule.
func (s *Service) CreateAccount(userID string, a *domain.Account) error {
	if err := a.Validate(); err != nil {
		return err
	}
	a.Sanitize()
	if a.IsSpendingAccount {
		if err := s.checkNoOtherSpending(userID, a.ID); err != nil {
			return err
		}
	}
	if err := s.store.CreateAccount(userID, a); err != nil {
		return err
	}
	s.invalidate(userID)
	return nil
}

// UpdateAccount validates, sanitizes and rewrites an account.
func (s *Service) UpdateAccount(userID string, a *domain.Account) error {
	if err := a.Validate(); err != nil {
		return err
	}
	a.Sanitize()
	if a.IsSpendingAccount {
		if err := s.checkNoOtherSpending(userID, a.ID); err != nil {
			return err
		}
	}
	if err := s.store.UpdateAccount(userID, a); err != nil {
		return err
	}
	s.invalidate(userID)
	return nil
}

// DeleteAccount removes an account. Its expenses become unallocated.
func (s *Service) DeleteAccount(userID, id string) error {
	if err := s.store.DeleteAccount(userID, id); err != nil {
		return err
	}
	s.invalidate(userID)
	return nil
}

// ListAccounts returns the user's accounts.
func (s *Service) ListAccounts(userID string) ([]domain.Account, error) {
	return s.store.ListAccounts(userID)
}

// SaveSettings validates and stores the user's budget settings.
func (s *Service) SaveSettings(userID string, st domain.Settings) error {
	if err := st.Validate(); err != nil {
		return err
	}
	if err := s.store.SaveSettings(userID, st); err != nil {
		return err
	}
	s.invalidate(userID)
	return nil
}

// GetSettings returns the user's budget settings.
func (s *Service) GetSettings(userID string) (domain.Settings, error) {
	return s.store.GetSettings(userID)
}

// Deductions computes the weekly deduction breakdown for the given
// settings without touching stored state.
func (s *Service) Deductions(st domain.Settings) (domain.DeductionResult, error) {
	if err := st.Validate(); err != nil {
		return domain.DeductionResult{}, err
	}
	return s.engine.WeeklyDeductions(st), nil
}

// Projection returns the budget summary for the user, computing and
// caching it on first use.
func (s *Service) Projection(userID string) (*domain.BudgetSummary, error) {
	s.mu.RLock()
	cached, ok := s.cache[userID]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}
	return s.compute(userID)
}

func (s *Service) compute(userID string) (*domain.BudgetSummary, error) {
	budget, err := s.store.LoadBudget(userID)
	if err != nil {
		return nil, err
	}
	if err := budget.Validate(); err != nil {
		return nil, fmt.Errorf("stored budget is invalid: %w", err)
	}

	start := time.Now()
	summary := s.engine.RunBudget(budget)
	s.log.WithFields(logrus.Fields{
		"user":     userID,
		"accounts": len(budget.Accounts),
		"expenses": len(budget.Expenses),
		"elapsed":  time.Since(start),
	}).Debug("Projection computed")

	s.mu.Lock()
	s.cache[userID] = summary
	s.mu.Unlock()
	return summary, nil
}

// invalidate drops the cached summary and schedules a debounced recompute.
// A fresh edit resets the timer, so a burst of edits costs one recompute.
func (s *Service) invalidate(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.cache, userID)
	if t, ok := s.pending[userID]; ok {
		t.Reset(recomputeDelay)
		return
	}
	s.pending[userID] = time.AfterFunc(recomputeDelay, func() {
		s.mu.Lock()
		delete(s.pending, userID)
		s.mu.Unlock()
		if _, err := s.compute(userID); err != nil {
			s.log.Warnf("Background recompute for %s failed: %v", userID, err)
		}
	})
}

// refreshAll recomputes every cached summary so date-dependent results do
// not go stale overnight.
func (s *Service) refreshAll() {
	s.mu.RLock()
	ids := make([]string, 0, len(s.cache))
	for id := range s.cache {
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	for _, id := range ids {
		if _, err := s.compute(id); err != nil {
			s.log.Warnf("Nightly refresh for %s failed: %v", id, err)
		}
	}
	s.log.Infof("Nightly projection refresh done for %d users", len(ids))
}

func (s *Service) checkNoOtherSpending(userID, selfID string) error {
	accounts, err := s.store.ListAccounts(userID)
	if err != nil {
		return err
	}
	for _, other := range accounts {
		if other.IsSpendingAccount && other.ID != selfID {
			return fmt.Errorf("account %s is already the spending account", other.Name)
		}
	}
	return nil
}

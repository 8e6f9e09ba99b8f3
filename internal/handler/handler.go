// Package handler exposes the HTTP API: registration and login, budget
// CRUD, and the projection and deduction endpoints.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/nzbudget/budget-server/internal/domain"
	"github.com/nzbudget/budget-server/internal/service"
	"github.com/nzbudget/budget-server/internal/store"
)

// Handler holds the HTTP endpoints.
type Handler struct {
	svc    *service.Service
	log    *logrus.Logger
	secret []byte
}

// NewHandler initializes the handler.
func NewHandler(svc *service.Service, log *logrus.Logger, jwtSecret string) *Handler {
	return &Handler{svc: svc, log: log, secret: []byte(jwtSecret)}
}

// Router builds the full route table.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(h.logRequests)

	r.HandleFunc("/api/register", h.Register).Methods("POST")
	r.HandleFunc("/api/login", h.Login).Methods("POST")

	auth := r.PathPrefix("/api").Subrouter()
	auth.Use(h.requireAuth)

	auth.HandleFunc("/expenses", h.ListExpenses).Methods("GET")
	auth.HandleFunc("/expenses", h.CreateExpense).Methods("POST")
	auth.HandleFunc("/expenses/{id}", h.UpdateExpense).Methods("PUT")
	auth.HandleFunc("/expenses/{id}", h.DeleteExpense).Methods("DELETE")

	auth.HandleFunc("/accounts", h.ListAccounts).Methods("GET")
	auth.HandleFunc("/accounts", h.CreateAccount).Methods("POST")
	auth.HandleFunc("/accounts/{id}", h.UpdateAccount).Methods("PUT")
	auth.HandleFunc("/accounts/{id}", h.DeleteAccount).Methods("DELETE")

	auth.HandleFunc("/settings", h.GetSettings).Methods("GET")
	auth.HandleFunc("/settings", h.SaveSettings).Methods("PUT")

	auth.HandleFunc("/projection", h.Projection).Methods("GET")
	auth.HandleFunc("/deductions", h.Deductions).Methods("GET")

	return r
}

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles user registration.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	u, err := h.svc.Register(req.Email, req.Username, req.Password)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, u)
}

// Login handles user authentication and issues a JWT.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	token, err := h.svc.Login(req.Email, req.Password)
	if errors.Is(err, store.ErrInvalidCredentials) {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "login failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}

// CreateExpense stores a new expense for the authenticated user.
func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var e domain.Expense
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.svc.CreateExpense(userID(r), &e); err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, e)
}

// UpdateExpense rewrites an expense for the authenticated user.
func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	var e domain.Expense
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	e.ID = mux.Vars(r)["id"]
	if err := h.svc.UpdateExpense(userID(r), &e); err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, e)
}

// DeleteExpense removes an expense for the authenticated user.
func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteExpense(userID(r), mux.Vars(r)["id"]); err != nil {
		h.respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListExpenses returns the authenticated user's expenses.
func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.svc.ListExpenses(userID(r))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	if expenses == nil {
		expenses = []domain.Expense{}
	}
	respondJSON(w, http.StatusOK, expenses)
}

// CreateAccount stores a new account for the authenticated user.
func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var a domain.Account
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.svc.CreateAccount(userID(r), &a); err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, a)
}

// UpdateAccount rewrites an account for the authenticated user.
func (h *Handler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	var a domain.Account
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	a.ID = mux.Vars(r)["id"]
	if err := h.svc.UpdateAccount(userID(r), &a); err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, a)
}

// DeleteAccount removes an account for the authenticated user.
func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteAccount(userID(r), mux.Vars(r)["id"]); err != nil {
		h.respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListAccounts returns the authenticated user's accounts.
func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.svc.ListAccounts(userID(r))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	respondJSON(w, http.StatusOK, accounts)
}

// GetSettings returns the authenticated user's budget settings.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.GetSettings(userID(r))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, st)
}

// SaveSettings replaces the authenticated user's budget settings.
func (h *Handler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	var st domain.Settings
	if err := json.NewDecoder(r.Body).Decode(&st); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.svc.SaveSettings(userID(r), st); err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, st)
}

// Projection returns the full budget summary for the authenticated user.
func (h *Handler) Projection(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Projection(userID(r))
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "budget settings not configured")
		return
	}
	if err != nil {
		h.log.Errorf("Projection failed: %v", err)
		respondError(w, http.StatusInternalServerError, "projection failed")
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// Deductions computes a one-off deduction breakdown from query parameters.
// Exactly one of gross= or net= (weekly dollars) is required.
func (h *Handler) Deductions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	gross, net := q.Get("gross"), q.Get("net")
	if (gross == "") == (net == "") {
		respondError(w, http.StatusBadRequest, "exactly one of gross= or net= is required")
		return
	}

	st := domain.Settings{
		PayType:      domain.PayGross,
		HorizonWeeks: 1,
		KiwiSaver:    q.Get("kiwisaver") == "true",
		StudentLoan:  q.Get("student_loan") == "true",
		IETC:         q.Get("ietc") == "true",
	}
	raw := gross
	if net != "" {
		raw = net
		st.PayType = domain.PayNet
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil || amount.IsNegative() {
		respondError(w, http.StatusBadRequest, "pay amount must be a non-negative number")
		return
	}
	st.PayAmount = amount

	if st.KiwiSaver {
		rate := q.Get("kiwisaver_rate")
		if rate == "" {
			rate = "0.03"
		}
		if st.KiwiSaverRate, err = decimal.NewFromString(rate); err != nil {
			respondError(w, http.StatusBadRequest, "invalid kiwisaver rate")
			return
		}
	}

	result, err := h.svc.Deductions(st)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// respondServiceError maps service errors to HTTP statuses: missing rows
// to 404, everything else to 400 (CRUD inputs are the only other source).
func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "not found")
		return
	}
	respondError(w, http.StatusBadRequest, err.Error())
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

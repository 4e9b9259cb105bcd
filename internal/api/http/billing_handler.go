package http

import (
	"net/http"

	"roomledger-backend/internal/domain"
	"roomledger-backend/internal/service"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type BillingHandler struct {
	billingSvc service.BillingService
}

func NewBillingHandler(billingSvc service.BillingService) *BillingHandler {
	return &BillingHandler{billingSvc: billingSvc}
}

type createPaymentRequest struct {
	LeaseID   string               `json:"lease_id"`
	MonthYear string               `json:"month_year"`
	Type      domain.PaymentType   `json:"type"`
	Amount    decimal.Decimal      `json:"amount"`
	Method    domain.PaymentMethod `json:"method"`
	Notes     string               `json:"notes"`
}

type updatePaymentRequest struct {
	Method      *domain.PaymentMethod `json:"method"`
	PaymentDate *string               `json:"payment_date"` // YYYY-MM-DD
	Notes       *string               `json:"notes"`
}

func (h *BillingHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req createPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	p := &domain.Payment{
		MonthYear: req.MonthYear,
		Type:      req.Type,
		Amount:    req.Amount,
		Method:    req.Method,
		Notes:     req.Notes,
	}
	if req.LeaseID != "" {
		p.LeaseID = &req.LeaseID
	}
	if err := h.billingSvc.CreatePayment(r.Context(), actorFrom(r), p); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *BillingHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	p, err := h.billingSvc.GetPayment(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *BillingHandler) GetEnrichedPayment(w http.ResponseWriter, r *http.Request) {
	e, err := h.billingSvc.GetEnrichedPayment(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func paymentFilterFrom(r *http.Request) domain.PaymentFilter {
	q := r.URL.Query()
	return domain.PaymentFilter{
		LeaseID:    q.Get("lease_id"),
		Type:       domain.PaymentType(q.Get("type")),
		Status:     domain.PaymentStatus(q.Get("status")),
		MonthYear:  q.Get("month_year"),
		BuildingID: q.Get("building_id"),
		RoomID:     q.Get("room_id"),
		TenantID:   q.Get("tenant_id"),
	}
}

func (h *BillingHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.billingSvc.ListPayments(r.Context(), paymentFilterFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

func (h *BillingHandler) ListEnrichedPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.billingSvc.ListEnrichedPayments(r.Context(), paymentFilterFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

func (h *BillingHandler) PendingByMonth(w http.ResponseWriter, r *http.Request) {
	payments, err := h.billingSvc.PendingByMonth(r.Context(), mux.Vars(r)["month"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

func (h *BillingHandler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	var req updatePaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	upd := service.PaymentUpdate{
		Method: req.Method,
		Notes:  req.Notes,
	}
	if req.PaymentDate != nil {
		d, err := parseDate("payment_date", *req.PaymentDate)
		if err != nil {
			writeError(w, err)
			return
		}
		upd.PaymentDate = &d
	}
	p, err := h.billingSvc.UpdatePayment(r.Context(), actorFrom(r), mux.Vars(r)["id"], upd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *BillingHandler) ApprovePayment(w http.ResponseWriter, r *http.Request) {
	p, err := h.billingSvc.ApprovePayment(r.Context(), actorFrom(r), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *BillingHandler) RejectPayment(w http.ResponseWriter, r *http.Request) {
	p, err := h.billingSvc.RejectPayment(r.Context(), actorFrom(r), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *BillingHandler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	if err := h.billingSvc.DeletePayment(r.Context(), actorFrom(r), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type expenseRequest struct {
	LeaseID           string          `json:"lease_id"`
	Date              string          `json:"date"` // YYYY-MM-DD
	Concept           string          `json:"concept"`
	Amount            decimal.Decimal `json:"amount"`
	DeductFromDeposit bool            `json:"deduct_from_deposit"`
}

type updateExpenseRequest struct {
	Date              *string          `json:"date"`
	Concept           *string          `json:"concept"`
	Amount            *decimal.Decimal `json:"amount"`
	DeductFromDeposit *bool            `json:"deduct_from_deposit"`
}

func (h *BillingHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	date, err := parseDate("date", req.Date)
	if err != nil {
		writeError(w, err)
		return
	}
	e := &domain.Expense{
		LeaseID:           req.LeaseID,
		Date:              date,
		Concept:           req.Concept,
		Amount:            req.Amount,
		DeductFromDeposit: req.DeductFromDeposit,
	}
	if err := h.billingSvc.CreateExpense(r.Context(), actorFrom(r), e); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (h *BillingHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.billingSvc.ListExpenses(r.Context(), r.URL.Query().Get("lease_id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, expenses)
}

func (h *BillingHandler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	var req updateExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	upd := service.ExpenseUpdate{
		Concept:           req.Concept,
		Amount:            req.Amount,
		DeductFromDeposit: req.DeductFromDeposit,
	}
	if req.Date != nil {
		d, err := parseDate("date", *req.Date)
		if err != nil {
			writeError(w, err)
			return
		}
		upd.Date = &d
	}
	e, err := h.billingSvc.UpdateExpense(r.Context(), actorFrom(r), mux.Vars(r)["id"], upd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *BillingHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := h.billingSvc.DeleteExpense(r.Context(), actorFrom(r), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *BillingHandler) DepositBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.billingSvc.DepositBalance(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]decimal.Decimal{"deposit_balance": balance})
}

package http

import (
	"net/http"
	"time"

	"roomledger-backend/internal/domain"
	"roomledger-backend/internal/service"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type LeaseHandler struct {
	leaseSvc service.LeaseService
}

func NewLeaseHandler(leaseSvc service.LeaseService) *LeaseHandler {
	return &LeaseHandler{leaseSvc: leaseSvc}
}

type createLeaseRequest struct {
	RoomID           string          `json:"room_id"`
	TenantID         string          `json:"tenant_id"`
	StartDate        string          `json:"start_date"` // YYYY-MM-DD
	EndDate          string          `json:"end_date"`
	MonthlyRent      decimal.Decimal `json:"monthly_rent"`
	Deposit          decimal.Decimal `json:"deposit"`
	ExpenseTariff    decimal.Decimal `json:"expense_tariff"`
	CleaningIncluded bool            `json:"cleaning_included"`
}

type updateLeaseRequest struct {
	EndDate     *string          `json:"end_date"`
	MonthlyRent *decimal.Decimal `json:"monthly_rent"`
	Archived    *bool            `json:"archived"`
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, domain.NewInvalidInput("invalid %s %q, want YYYY-MM-DD", field, value)
	}
	return t.UTC(), nil
}

func (h *LeaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createLeaseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	start, err := parseDate("start_date", req.StartDate)
	if err != nil {
		writeError(w, err)
		return
	}
	end, err := parseDate("end_date", req.EndDate)
	if err != nil {
		writeError(w, err)
		return
	}
	l := &domain.Lease{
		RoomID:           req.RoomID,
		TenantID:         req.TenantID,
		StartDate:        start,
		EndDate:          end,
		MonthlyRent:      req.MonthlyRent,
		Deposit:          req.Deposit,
		ExpenseTariff:    req.ExpenseTariff,
		CleaningIncluded: req.CleaningIncluded,
	}
	if err := h.leaseSvc.CreateLease(r.Context(), actorFrom(r), l); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

func (h *LeaseHandler) Get(w http.ResponseWriter, r *http.Request) {
	l, err := h.leaseSvc.GetLease(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (h *LeaseHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.LeaseFilter{
		Status:     domain.LeaseStatus(q.Get("status")),
		RoomID:     q.Get("room_id"),
		TenantID:   q.Get("tenant_id"),
		BuildingID: q.Get("building_id"),
	}
	leases, err := h.leaseSvc.ListLeases(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, leases)
}

func (h *LeaseHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateLeaseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	upd := service.LeaseUpdate{
		MonthlyRent: req.MonthlyRent,
		Archived:    req.Archived,
	}
	if req.EndDate != nil {
		end, err := parseDate("end_date", *req.EndDate)
		if err != nil {
			writeError(w, err)
			return
		}
		upd.EndDate = &end
	}
	l, err := h.leaseSvc.UpdateLease(r.Context(), actorFrom(r), mux.Vars(r)["id"], upd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (h *LeaseHandler) Finish(w http.ResponseWriter, r *http.Request) {
	l, err := h.leaseSvc.FinishLease(r.Context(), actorFrom(r), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

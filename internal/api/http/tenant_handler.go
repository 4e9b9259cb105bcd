package http

import (
	"net/http"

	"roomledger-backend/internal/domain"
	"roomledger-backend/internal/service"

	"github.com/gorilla/mux"
)

type TenantHandler struct {
	tenantSvc service.TenantService
}

func NewTenantHandler(tenantSvc service.TenantService) *TenantHandler {
	return &TenantHandler{tenantSvc: tenantSvc}
}

type tenantRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	NationalID string `json:"national_id"`
	Active     *bool  `json:"active"`
}

func (h *TenantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req tenantRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	t := &domain.Tenant{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		NationalID: req.NationalID,
	}
	if err := h.tenantSvc.CreateTenant(r.Context(), actorFrom(r), t); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (h *TenantHandler) GetDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := h.tenantSvc.GetTenantDetail(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *TenantHandler) List(w http.ResponseWriter, r *http.Request) {
	var active *bool
	switch r.URL.Query().Get("active") {
	case "true":
		v := true
		active = &v
	case "false":
		v := false
		active = &v
	}
	tenants, err := h.tenantSvc.ListTenants(r.Context(), r.URL.Query().Get("search"), active)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tenants)
}

func (h *TenantHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req tenantRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	t := &domain.Tenant{
		ID:         mux.Vars(r)["id"],
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		NationalID: req.NationalID,
		Active:     true,
	}
	if req.Active != nil {
		t.Active = *req.Active
	}
	if err := h.tenantSvc.UpdateTenant(r.Context(), actorFrom(r), t); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

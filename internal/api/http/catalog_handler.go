package http

import (
	"net/http"

	"roomledger-backend/internal/domain"
	"roomledger-backend/internal/service"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type CatalogHandler struct {
	catalogSvc service.CatalogService
	leaseSvc   service.LeaseService
}

func NewCatalogHandler(catalogSvc service.CatalogService, leaseSvc service.LeaseService) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc, leaseSvc: leaseSvc}
}

type buildingRequest struct {
	Name               string           `json:"name"`
	Address            string           `json:"address"`
	Notes              string           `json:"notes"`
	HasCleaningService bool             `json:"has_cleaning_service"`
	MonthlyCleaningFee *decimal.Decimal `json:"monthly_cleaning_fee"`
}

func (h *CatalogHandler) CreateBuilding(w http.ResponseWriter, r *http.Request) {
	var req buildingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	b := &domain.Building{
		Name:               req.Name,
		Address:            req.Address,
		Notes:              req.Notes,
		HasCleaningService: req.HasCleaningService,
		MonthlyCleaningFee: req.MonthlyCleaningFee,
	}
	if err := h.catalogSvc.CreateBuilding(r.Context(), actorFrom(r), b); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (h *CatalogHandler) GetBuilding(w http.ResponseWriter, r *http.Request) {
	b, err := h.catalogSvc.GetBuilding(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *CatalogHandler) ListBuildings(w http.ResponseWriter, r *http.Request) {
	buildings, err := h.catalogSvc.ListBuildings(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, buildings)
}

func (h *CatalogHandler) UpdateBuilding(w http.ResponseWriter, r *http.Request) {
	var req buildingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	b := &domain.Building{
		ID:                 mux.Vars(r)["id"],
		Name:               req.Name,
		Address:            req.Address,
		Notes:              req.Notes,
		HasCleaningService: req.HasCleaningService,
		MonthlyCleaningFee: req.MonthlyCleaningFee,
	}
	if err := h.catalogSvc.UpdateBuilding(r.Context(), actorFrom(r), b); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *CatalogHandler) DeleteBuilding(w http.ResponseWriter, r *http.Request) {
	if err := h.catalogSvc.DeleteBuilding(r.Context(), actorFrom(r), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type roomRequest struct {
	BuildingID   string          `json:"building_id,omitempty"`
	Name         string          `json:"name"`
	SquareMeters float64         `json:"square_meters"`
	BasePrice    decimal.Decimal `json:"base_price"`
}

func (h *CatalogHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req roomRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	room := &domain.Room{
		BuildingID:   req.BuildingID,
		Name:         req.Name,
		SquareMeters: req.SquareMeters,
		BasePrice:    req.BasePrice,
	}
	if err := h.catalogSvc.CreateRoom(r.Context(), actorFrom(r), room); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, room)
}

func (h *CatalogHandler) GetRoomDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := h.catalogSvc.GetRoomDetail(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *CatalogHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.catalogSvc.ListRooms(r.Context(), r.URL.Query().Get("building_id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rooms)
}

// UpdateRoom ignores any building reference in the payload; the room's
// building is fixed at creation.
func (h *CatalogHandler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	var req roomRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	room := &domain.Room{
		ID:           mux.Vars(r)["id"],
		Name:         req.Name,
		SquareMeters: req.SquareMeters,
		BasePrice:    req.BasePrice,
	}
	if err := h.catalogSvc.UpdateRoom(r.Context(), actorFrom(r), room); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, room)
}

func (h *CatalogHandler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	if err := h.catalogSvc.DeleteRoom(r.Context(), actorFrom(r), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *CatalogHandler) RoomOccupancy(w http.ResponseWriter, r *http.Request) {
	occ, err := h.leaseSvc.Occupancy(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, occ)
}

package http

import (
	"net/http"

	"roomledger-backend/internal/domain"
	"roomledger-backend/internal/service"
)

type SettingsHandler struct {
	settingsSvc service.SettingsService
}

func NewSettingsHandler(settingsSvc service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsSvc: settingsSvc}
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.settingsSvc.GetSettings(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	// The SMTP password is accepted on update but never echoed back.
	s.Mail.Password = ""
	writeJSON(w, http.StatusOK, s)
}

func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var s domain.Settings
	if err := decodeJSON(r, &s); err != nil {
		writeError(w, err)
		return
	}
	if err := h.settingsSvc.UpdateSettings(r.Context(), actorFrom(r), &s); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

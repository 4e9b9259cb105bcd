package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"roomledger-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"InvalidInput", domain.NewInvalidInput("bad month"), http.StatusBadRequest, "bad month"},
		{"NotFound", domain.NewNotFound("lease x not found"), http.StatusNotFound, "lease x not found"},
		{"Conflict", domain.NewConflict("room taken"), http.StatusConflict, "room taken"},
		{"Forbidden", domain.NewForbidden("role may not do this"), http.StatusForbidden, "role may not do this"},
		{"Unauthorized", domain.NewUnauthorized("invalid email or password"), http.StatusUnauthorized, "invalid email or password"},
		{"InternalNotLeaked", errors.New("pq: connection refused"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body errorResponse
			assert.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantBody, body.Error)
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	t.Run("Success", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"1A"}`))
		var p payload
		assert.NoError(t, decodeJSON(req, &p))
		assert.Equal(t, "1A", p.Name)
	})

	t.Run("UnknownFieldRejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"1A","building_id":"b-1"}`))
		var p payload
		err := decodeJSON(req, &p)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
		var p payload
		err := decodeJSON(req, &p)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

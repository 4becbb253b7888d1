package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/karimdoss-design/campustad/services"
)

func TestMapServiceErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"match not found", services.ErrMatchNotFound, http.StatusNotFound},
		{"team name conflict", services.ErrTeamNameConflict, http.StatusConflict},
		{"team in use", services.ErrTeamInUse, http.StatusConflict},
		{"same team", services.ErrMatchSameTeam, http.StatusBadRequest},
		{"prediction closed", services.ErrPredictionMatchClosed, http.StatusBadRequest},
		{"bad credentials", services.ErrAuthInvalidCredentials, http.StatusUnauthorized},
		{"admin required", services.ErrAdminRequired, http.StatusForbidden},
		{"unknown error", errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			mapServiceErrorToHTTP(rec, req, tt.err)
			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}

			var body map[string]interface{}
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("error response is not JSON: %v", err)
			}
			if _, ok := body["error"]; !ok {
				t.Error("error response missing error key")
			}
		})
	}
}

func TestReadJSONRejectsMalformedBodies(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty body", "", "body must not be empty"},
		{"bad syntax", `{"name":`, "badly-formed JSON"},
		{"unknown field", `{"bogus": 1}`, "unknown key"},
		{"trailing value", `{"name":"a"}{"name":"b"}`, "single JSON value"},
		{"wrong type", `{"name": 42}`, "incorrect JSON type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(tt.body))
			var dst struct {
				Name string `json:"name"`
			}
			err := readJSON(rec, req, &dst)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %q", tt.want, err.Error())
			}
		})
	}
}

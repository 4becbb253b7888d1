package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/karimdoss-design/campustad/models"
	"github.com/karimdoss-design/campustad/repositories"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, userID int, role models.ProfileRole) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    string(role),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(testSecret)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

// stubProfileRepository serves profiles from a map, standing in for postgres.
type stubProfileRepository struct {
	profiles map[int]*models.Profile
}

func (s *stubProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	return nil
}

func (s *stubProfileRepository) GetByID(ctx context.Context, id int) (*models.Profile, error) {
	profile, ok := s.profiles[id]
	if !ok {
		return nil, repositories.ErrProfileNotFound
	}
	return profile, nil
}

func (s *stubProfileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	return nil, repositories.ErrProfileNotFound
}

func (s *stubProfileRepository) List(ctx context.Context, filter models.ProfileFilter) ([]*models.Profile, error) {
	return nil, nil
}

func (s *stubProfileRepository) UpdateStatus(ctx context.Context, id int, role models.ProfileRole, status models.ProfileStatus) error {
	return nil
}

func (s *stubProfileRepository) SetNewsSeenAt(ctx context.Context, id int, seenAt time.Time) error {
	return nil
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.token", http.StatusUnauthorized},
		{"valid token", "", http.StatusOK},
	}

	handler := Authenticate(testSecret)(okHandler())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := tt.authHeader
			if tt.name == "valid token" {
				header = "Bearer " + signToken(t, 1, models.RoleFan)
			}
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}

func TestAuthenticateRejectsWrongSecret(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 1,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("some-other-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	handler := Authenticate(testSecret)(okHandler())
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestGuardRoles(t *testing.T) {
	repo := &stubProfileRepository{profiles: map[int]*models.Profile{
		1: {ID: 1, Role: models.RoleAdmin, Status: models.StatusActive},
		2: {ID: 2, Role: models.RoleFan, Status: models.StatusActive},
		3: {ID: 3, Role: models.RoleFan, Status: models.StatusPending},
		4: {ID: 4, Role: models.RoleFan, Status: models.StatusDisabled},
	}}
	guard := NewGuard(repo)

	tests := []struct {
		name       string
		userID     int
		middleware func(http.Handler) http.Handler
		wantStatus int
	}{
		{"admin passes admin gate", 1, guard.RequireAdmin(), http.StatusOK},
		{"fan blocked from admin gate", 2, guard.RequireAdmin(), http.StatusForbidden},
		{"active fan passes fan gate", 2, guard.RequireFan(), http.StatusOK},
		{"pending fan blocked from fan gate", 3, guard.RequireFan(), http.StatusForbidden},
		{"pending fan passes known gate", 3, guard.RequireKnown(), http.StatusOK},
		{"disabled blocked everywhere", 4, guard.RequireKnown(), http.StatusForbidden},
		{"unknown profile rejected", 99, guard.RequireKnown(), http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := Authenticate(testSecret)(tt.middleware(okHandler()))
			req := httptest.NewRequest(http.MethodGet, "/privileged", nil)
			req.Header.Set("Authorization", "Bearer "+signToken(t, tt.userID, models.RoleFan))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}

func TestGuardStoresProfileInContext(t *testing.T) {
	repo := &stubProfileRepository{profiles: map[int]*models.Profile{
		7: {ID: 7, Role: models.RoleFan, Status: models.StatusActive},
	}}
	guard := NewGuard(repo)

	var seen *models.Profile
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = GetProfileFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	handler := Authenticate(testSecret)(guard.RequireKnown()(inner))
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, 7, models.RoleFan))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if seen == nil || seen.ID != 7 {
		t.Errorf("expected profile 7 in context, got %+v", seen)
	}
}

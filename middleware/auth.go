package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/karimdoss-design/campustad/models"
	"github.com/karimdoss-design/campustad/repositories"
)

type contextKey string

const (
	claimsContextKey  contextKey = "claims"
	profileContextKey contextKey = "profile"
)

// JWT claim names issued by the auth handler.
const (
	jwtClaimUserID = "user_id"
	jwtClaimRole   = "role"
)

// Authenticate verifies the bearer token and stores its claims in the
// request context. It does not touch the database; role guards do.
func Authenticate(jwtSecret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			tokenString := strings.TrimPrefix(header, "Bearer ")

			token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errors.New("unexpected signing method")
				}
				return jwtSecret, nil
			})
			if err != nil || !token.Valid {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUserIDFromContext(ctx context.Context) (int, error) {
	claims, ok := ctx.Value(claimsContextKey).(jwt.MapClaims)
	if !ok {
		return 0, errors.New("user claims not found in context")
	}

	idClaim, ok := claims[jwtClaimUserID]
	if !ok {
		return 0, errors.New("missing user_id claim in token")
	}
	idFloat, ok := idClaim.(float64)
	if !ok || idFloat != float64(int(idFloat)) || int(idFloat) <= 0 {
		return 0, errors.New("invalid user_id claim in token")
	}
	return int(idFloat), nil
}

// GetProfileFromContext returns the profile loaded by a Guard, if any.
func GetProfileFromContext(ctx context.Context) (*models.Profile, bool) {
	profile, ok := ctx.Value(profileContextKey).(*models.Profile)
	return profile, ok
}

// Guard is the single capability check behind every privileged route. It
// resolves the caller's profile once per request and applies a role/status
// predicate, replacing ad hoc per-page re-checks.
type Guard struct {
	profileRepo repositories.ProfileRepository
}

func NewGuard(profileRepo repositories.ProfileRepository) *Guard {
	return &Guard{profileRepo: profileRepo}
}

func (g *Guard) require(allowed func(*models.Profile) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := GetUserIDFromContext(r.Context())
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			profile, err := g.profileRepo.GetByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, repositories.ErrProfileNotFound) {
					http.Error(w, "Unauthorized", http.StatusUnauthorized)
					return
				}
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}

			if !allowed(profile) {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), profileContextKey, profile)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin allows only role=admin with status=active.
func (g *Guard) RequireAdmin() func(http.Handler) http.Handler {
	return g.require(func(p *models.Profile) bool { return p.IsActiveAdmin() })
}

// RequireFan allows only role=fan with status=active (prediction submission).
func (g *Guard) RequireFan() func(http.Handler) http.Handler {
	return g.require(func(p *models.Profile) bool { return p.IsActiveFan() })
}

// RequireKnown allows any authenticated profile that is not disabled.
func (g *Guard) RequireKnown() func(http.Handler) http.Handler {
	return g.require(func(p *models.Profile) bool { return p.Status != models.StatusDisabled })
}

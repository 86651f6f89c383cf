package middleware

import (
	"context"
	"denuncias/models"
	"denuncias/utils"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

type contextKey string

const actorKey contextKey = "actor"

// AuthMiddleware validates bearer tokens and stores the caller in the request context
type AuthMiddleware struct {
	jwtSecret []byte
	log       *slog.Logger
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(jwtSecret string, log *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtSecret: []byte(jwtSecret),
		log:       log.With("component", "auth"),
	}
}

// RequireAuth rejects requests without a valid token.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			respondWithError(w, http.StatusUnauthorized, "Unauthorized", "Authorization header required")
			return
		}
		actor, ok := m.authenticate(w, r, header)
		if !ok {
			return
		}
		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

// OptionalAuth lets anonymous requests through. A token that is present must still be valid.
func (m *AuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}
		actor, ok := m.authenticate(w, r, header)
		if !ok {
			return
		}
		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

func (m *AuthMiddleware) authenticate(w http.ResponseWriter, r *http.Request, header string) (*models.Actor, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized", "Invalid authorization format. Expected: Bearer <token>")
		return nil, false
	}

	claims, err := utils.ParseJWT(strings.TrimSpace(parts[1]), m.jwtSecret)
	if err != nil {
		m.log.Debug("token rejected", "path", r.URL.Path, "error", err)
		respondWithError(w, http.StatusUnauthorized, "Unauthorized", "Invalid or expired token")
		return nil, false
	}
	if !models.IsStaffRole(claims.Role) && claims.Role != models.RoleCitizen {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized", "Invalid token role")
		return nil, false
	}
	return &models.Actor{ID: claims.ID, Email: claims.Email, Role: claims.Role}, true
}

// WithActor returns a copy of ctx carrying actor.
func WithActor(ctx context.Context, actor *models.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFromContext returns the authenticated caller, or nil.
func ActorFromContext(ctx context.Context) *models.Actor {
	actor, _ := ctx.Value(actorKey).(*models.Actor)
	return actor
}

func respondWithError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(models.ErrorResponse{Error: errorType, Message: message, Code: statusCode})
}

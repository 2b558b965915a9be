package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/Ms-You/emmerce-api-sub000/api/responses"
	pkgauth "github.com/Ms-You/emmerce-api-sub000/pkg/auth"
	"github.com/Ms-You/emmerce-api-sub000/pkg/config"
	pkgerrors "github.com/Ms-You/emmerce-api-sub000/pkg/errors"
	"github.com/Ms-You/emmerce-api-sub000/pkg/logger"
)

// Auth validates the bearer token and seeds the request context with the
// member id.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgauth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}
			if claims.MemberID == uuid.Nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing member id"))
				return
			}

			ctx := context.WithValue(r.Context(), ctxMemberID, claims.MemberID.String())
			if logg != nil {
				ctx = logg.WithMemberID(ctx, claims.MemberID.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// MemberID extracts the authenticated member id, failing with
// UNAUTHORIZED when the context carries none.
func MemberID(ctx context.Context) (uuid.UUID, error) {
	raw := MemberIDFromContext(ctx)
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid member id")
	}
	return id, nil
}

package middleware

import (
	"net/http"

	"dikra-store/internal/auth"
	"dikra-store/internal/logger"
	"dikra-store/internal/transport"
	"dikra-store/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionMiddleware resolves the shopper's session id from the session token,
// starting a new session when the token is missing or invalid. The token is
// re-issued on every request so the expiry slides with activity.
func SessionMiddleware(issuer *auth.SessionIssuer, secureCookie bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sessionID string

			if token := auth.ExtractSessionToken(r); token != "" {
				id, err := issuer.Parse(token)
				if err != nil {
					logger.FromCtx(r.Context()).Debug("discarding session token", zap.Error(err))
				} else {
					sessionID = id
				}
			}
			if sessionID == "" {
				sessionID = uuid.NewString()
			}

			token, err := issuer.Issue(sessionID)
			if err != nil {
				logger.FromCtx(r.Context()).Error("failed to issue session token", zap.Error(err))
				utils.WriteJSONError(w, "session unavailable", http.StatusInternalServerError)
				return
			}

			http.SetCookie(w, &http.Cookie{
				Name:     auth.SessionCookie,
				Value:    token,
				Path:     "/",
				MaxAge:   int(issuer.TTL().Seconds()),
				HttpOnly: true,
				Secure:   secureCookie,
				SameSite: http.SameSiteLaxMode,
			})
			w.Header().Set(auth.SessionHeader, token)

			ctx := transport.WithSessionID(r.Context(), sessionID)
			ctx = transport.WithClientIP(ctx, r)
			ctx = logger.WithSessionID(ctx, sessionID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

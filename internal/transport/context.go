package transport

import (
	"context"
	"net"
	"net/http"
)

type ctxKey string

const (
	sessionIDKey ctxKey = "sessionID"
	clientIPKey  ctxKey = "clientIP"
)

func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey, id)
}

// SessionIDFrom returns the session id set by the session middleware.
func SessionIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDKey).(string)
	return id, ok && id != ""
}

func WithClientIP(ctx context.Context, r *http.Request) context.Context {
	return context.WithValue(ctx, clientIPKey, RemoteIP(r))
}

func ClientIPFrom(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey).(string)
	return ip
}

// RemoteIP strips the port from r.RemoteAddr.
func RemoteIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

package middleware

import (
	"context"
	"net"
	"net/http"

	"github.com/pkordes/drivelog/internal/auth"
)

type userSinkKey struct{}

func withUserSink(ctx context.Context, sink *string) context.Context {
	return context.WithValue(ctx, userSinkKey{}, sink)
}

// clientKey identifies the caller for per-client accounting: the
// authenticated user id when present, otherwise the remote IP.
func clientKey(r *http.Request) string {
	if id, ok := auth.UserID(r.Context()); ok {
		return "user:" + id.String()
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}

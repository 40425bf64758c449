package contexthelpers

import (
	"context"
	"net/http"
)

func SetPlayerID(r *http.Request, playerID string) *http.Request {
	ctx := context.WithValue(r.Context(), playerIDContextKey, playerID)
	return r.WithContext(ctx)
}

func SetCurrentPath(r *http.Request, currentPath string) *http.Request {
	ctx := context.WithValue(r.Context(), currentPathContextKey, currentPath)
	return r.WithContext(ctx)
}

func SetCSRFToken(r *http.Request, csrfToken string) *http.Request {
	ctx := context.WithValue(r.Context(), csrfTokenContextKey, csrfToken)
	return r.WithContext(ctx)
}

func SetCSPNonce(r *http.Request, cspNonce string) *http.Request {
	ctx := context.WithValue(r.Context(), cspNonceContextKey, cspNonce)
	return r.WithContext(ctx)
}

func SetGameDate(r *http.Request, date string) *http.Request {
	ctx := context.WithValue(r.Context(), gameDateContextKey, date)
	return r.WithContext(ctx)
}

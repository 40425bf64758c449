package contexthelpers

type contextKey string

const (
	playerIDContextKey    = contextKey("playerID")
	currentPathContextKey = contextKey("currentPath")
	csrfTokenContextKey   = contextKey("csrfToken")
	cspNonceContextKey    = contextKey("cspNonce")
	gameDateContextKey    = contextKey("gameDate")
)

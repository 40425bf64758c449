package contexthelpers

import (
	"context"
)

// PlayerID returns the anonymous id of the player making the request, or an empty string before one is assigned.
func PlayerID(ctx context.Context) string {
	playerID, ok := ctx.Value(playerIDContextKey).(string)
	if !ok {
		return ""
	}

	return playerID
}

func CurrentPath(ctx context.Context) string {
	currentPath, ok := ctx.Value(currentPathContextKey).(string)
	if !ok {
		return ""
	}

	return currentPath
}

func CSRFToken(ctx context.Context) string {
	csrfToken, ok := ctx.Value(csrfTokenContextKey).(string)
	if !ok {
		return ""
	}

	return csrfToken
}

func CSPNonce(ctx context.Context) string {
	cspNonce, ok := ctx.Value(cspNonceContextKey).(string)
	if !ok {
		return ""
	}

	return cspNonce
}

// GameDate returns the YYYY-MM-DD date of the game served to the request.
func GameDate(ctx context.Context) string {
	date, ok := ctx.Value(gameDateContextKey).(string)
	if !ok {
		return ""
	}

	return date
}

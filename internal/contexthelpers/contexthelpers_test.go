package contexthelpers_test

import (
	"github.com/myrjola/dailytake/internal/contexthelpers"
	"github.com/stretchr/testify/require"
	"net/http/httptest"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	r := httptest.NewRequest("GET", "/play", nil)
	require.Empty(t, contexthelpers.PlayerID(r.Context()))
	require.Empty(t, contexthelpers.GameDate(r.Context()))

	r = contexthelpers.SetPlayerID(r, "player")
	r = contexthelpers.SetCurrentPath(r, "/play")
	r = contexthelpers.SetCSRFToken(r, "token")
	r = contexthelpers.SetCSPNonce(r, "nonce")
	r = contexthelpers.SetGameDate(r, "2025-01-09")

	ctx := r.Context()
	require.Equal(t, "player", contexthelpers.PlayerID(ctx))
	require.Equal(t, "/play", contexthelpers.CurrentPath(ctx))
	require.Equal(t, "token", contexthelpers.CSRFToken(ctx))
	require.Equal(t, "nonce", contexthelpers.CSPNonce(ctx))
	require.Equal(t, "2025-01-09", contexthelpers.GameDate(ctx))
}

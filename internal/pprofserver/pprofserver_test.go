package pprofserver_test

import (
	"context"
	"github.com/myrjola/dailytake/internal/pprofserver"
	"github.com/myrjola/dailytake/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"testing"
)

func TestLaunch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var logs testhelpers.LogBuffer
	addr, err := pprofserver.Launch(ctx, "localhost:0", testhelpers.NewLogger(&logs))
	require.NoError(t, err)

	resp, err := http.Get("http://" + addr + "/debug/pprof/cmdline")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, logs.String(), "pprof_addr="+addr)
}

func TestLaunch_addressInUse(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var logs testhelpers.LogBuffer
	addr, err := pprofserver.Launch(ctx, "localhost:0", testhelpers.NewLogger(&logs))
	require.NoError(t, err)

	_, err = pprofserver.Launch(ctx, addr, testhelpers.NewLogger(&logs))
	require.Error(t, err)
}

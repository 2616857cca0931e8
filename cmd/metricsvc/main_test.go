package main

import (
	"context"
	"errors"
	"net"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const runMainEnv = "METRICSVC_RUN_MAIN"

func TestMain(m *testing.M) {
	if os.Getenv(runMainEnv) == "1" {
		main()
		return
	}
	os.Exit(m.Run())
}

func TestMainExitsWhenAddressInUse(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer taken.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, os.Args[0])
	cmd.Env = append(os.Environ(),
		runMainEnv+"=1",
		"METRICSVC_BIND_ADDR="+taken.Addr().String(),
		"METRICSVC_LOG_FORMAT=json",
	)
	output, err := cmd.CombinedOutput()
	require.NoError(t, ctx.Err(), "process kept running: %s", output)

	var exitErr *exec.ExitError
	require.True(t, errors.As(err, &exitErr), "expected exit error, got %v", err)
	assert.Equal(t, 1, exitErr.ExitCode())
	assert.Contains(t, string(output), "failed to start HTTP server")
	assert.NotContains(t, string(output), "listening on")
	assert.NotContains(t, string(output), "metricsvc started")
}

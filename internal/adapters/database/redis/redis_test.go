package redis

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	server := miniredis.RunT(t)
	port, err := strconv.Atoi(server.Port())
	require.NoError(t, err)
	ctx := context.Background()

	client, err := New(ctx, Options{Host: server.Host(), Port: port})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.Sessions.Set(ctx, "tok", 3, time.Minute))
	assert.True(t, server.Exists("session:tok"))
}

func TestNew_Unreachable(t *testing.T) {
	server := miniredis.RunT(t)
	port, err := strconv.Atoi(server.Port())
	require.NoError(t, err)
	server.Close()

	_, err = New(context.Background(), Options{Host: server.Host(), Port: port})
	assert.ErrorContains(t, err, "failed to ping session storage")
}

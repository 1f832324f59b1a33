//go:build integration

package behavior_test

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/advisorhub/mira/pkg/behavior"
	"github.com/advisorhub/mira/pkg/models"
)

func setupTestRedis(t *testing.T) (string, func()) {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	redisURL := fmt.Sprintf("redis://%s:%s/0", host, port.Port())

	cleanup := func() {
		_ = container.Terminate(ctx)
	}

	return redisURL, cleanup
}

func TestRecorderRoundTrip(t *testing.T) {
	redisURL, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	recorder, err := behavior.NewRecorder(ctx, logger, redisURL, time.Hour)
	require.NoError(t, err)
	defer recorder.Close()

	sessionID := "sess-1"
	require.NoError(t, recorder.StartSession(ctx, sessionID))

	require.NoError(t, recorder.RecordNavigation(ctx, sessionID, models.NavigationEvent{
		FromPage: "/dashboard",
		ToPage:   "/customer",
		Module:   "customer",
		Trigger:  "click",
	}))
	require.NoError(t, recorder.RecordNavigation(ctx, sessionID, models.NavigationEvent{
		FromPage:  "/customer",
		ToPage:    "/customer/detail/C-2001",
		Module:    "customer",
		Trigger:   "click",
		TimeSpent: 45 * time.Second,
	}))
	require.NoError(t, recorder.SetPageData(ctx, sessionID, map[string]any{"customerId": "C-2001"}))

	bctx, err := recorder.Snapshot(ctx, sessionID)
	require.NoError(t, err)

	assert.Equal(t, sessionID, bctx.SessionID)
	assert.Equal(t, "/customer/detail/C-2001", bctx.CurrentPage)
	assert.Equal(t, "customer", bctx.CurrentModule)
	assert.Equal(t, map[string]any{"customerId": "C-2001"}, bctx.PageData)
	assert.False(t, bctx.SessionStartTime.IsZero())

	require.Len(t, bctx.NavigationHistory, 2)
	assert.Equal(t, "/dashboard", bctx.NavigationHistory[0].FromPage)
	assert.Equal(t, "/customer/detail/C-2001", bctx.NavigationHistory[1].ToPage)
	assert.Equal(t, 45*time.Second, bctx.NavigationHistory[1].TimeSpent)
}

func TestRecorderEndSessionClearsState(t *testing.T) {
	redisURL, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	recorder, err := behavior.NewRecorder(ctx, logger, redisURL, time.Hour)
	require.NoError(t, err)
	defer recorder.Close()

	sessionID := "sess-2"
	require.NoError(t, recorder.StartSession(ctx, sessionID))
	require.NoError(t, recorder.RecordNavigation(ctx, sessionID, models.NavigationEvent{
		FromPage: "/dashboard",
		ToPage:   "/todo",
		Module:   "todo",
	}))

	require.NoError(t, recorder.EndSession(ctx, sessionID))

	bctx, err := recorder.Snapshot(ctx, sessionID)
	require.NoError(t, err)
	assert.Empty(t, bctx.CurrentPage)
	assert.Empty(t, bctx.NavigationHistory)
}

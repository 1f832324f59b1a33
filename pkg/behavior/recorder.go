// Package behavior persists per-session navigation telemetry in Redis
// and rebuilds the behavioral context suggestion ranking works from.
package behavior

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/advisorhub/mira/pkg/models"
)

const (
	navStreamPrefix = "mira:nav:"
	sessionPrefix   = "mira:session:"

	// Navigation streams keep the most recent transitions only.
	navHistoryLimit = 50
)

// Recorder tracks page transitions and session state per advisor
// session.
type Recorder struct {
	client     *redis.Client
	logger     *slog.Logger
	sessionTTL time.Duration
	now        func() time.Time
}

// NewRecorder connects to Redis using a redis:// URL and verifies the
// connection before returning.
func NewRecorder(ctx context.Context, logger *slog.Logger, redisURL string, sessionTTL time.Duration) (*Recorder, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}

	return &Recorder{
		client:     client,
		logger:     logger.With("module", "behavior"),
		sessionTTL: sessionTTL,
		now:        time.Now,
	}, nil
}

// NewRecorderWithClient wraps an existing client, used by tests running
// against a container-backed Redis.
func NewRecorderWithClient(logger *slog.Logger, client *redis.Client, sessionTTL time.Duration) *Recorder {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}

	return &Recorder{
		client:     client,
		logger:     logger.With("module", "behavior"),
		sessionTTL: sessionTTL,
		now:        time.Now,
	}
}

// StartSession initializes session state. Calling it again for the same
// session resets the clock but keeps navigation history.
func (r *Recorder) StartSession(ctx context.Context, sessionID string) error {
	key := sessionPrefix + sessionID
	now := r.now().UTC().Format(time.RFC3339Nano)

	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, key, "sessionStart", now, "pageStart", now)
	pipe.Expire(ctx, key, r.sessionTTL)

	_, err := pipe.Exec(ctx)

	return err
}

// RecordNavigation appends a page transition to the session's stream and
// moves the current-page state forward.
func (r *Recorder) RecordNavigation(ctx context.Context, sessionID string, event models.NavigationEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = r.now().UTC()
	}

	streamKey := navStreamPrefix + sessionID
	sessionKey := sessionPrefix + sessionID

	pipe := r.client.TxPipeline()
	pipe.XAdd(ctx, &redis.XAddArgs{
		Stream: streamKey,
		MaxLen: navHistoryLimit,
		Approx: true,
		Values: map[string]any{
			"fromPage":  event.FromPage,
			"toPage":    event.ToPage,
			"module":    event.Module,
			"trigger":   event.Trigger,
			"timeSpent": event.TimeSpent.Milliseconds(),
			"timestamp": event.Timestamp.Format(time.RFC3339Nano),
		},
	})
	pipe.HSet(ctx, sessionKey,
		"currentPage", event.ToPage,
		"currentModule", event.Module,
		"pageStart", event.Timestamp.Format(time.RFC3339Nano),
	)
	pipe.Expire(ctx, streamKey, r.sessionTTL)
	pipe.Expire(ctx, sessionKey, r.sessionTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record navigation: %w", err)
	}

	r.logger.Debug("Recorded navigation",
		"session_id", sessionID, "from", event.FromPage, "to", event.ToPage)

	return nil
}

// SetPageData replaces the structured page payload for the session.
func (r *Recorder) SetPageData(ctx context.Context, sessionID string, pageData map[string]any) error {
	payload, err := json.Marshal(pageData)
	if err != nil {
		return fmt.Errorf("marshal page data: %w", err)
	}

	key := sessionPrefix + sessionID

	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, key, "pageData", string(payload))
	pipe.Expire(ctx, key, r.sessionTTL)

	_, err = pipe.Exec(ctx)

	return err
}

// Snapshot rebuilds the behavioral context from session state plus the
// navigation stream, oldest transition first.
func (r *Recorder) Snapshot(ctx context.Context, sessionID string) (models.BehavioralContext, error) {
	bctx := models.BehavioralContext{SessionID: sessionID}

	state, err := r.client.HGetAll(ctx, sessionPrefix+sessionID).Result()
	if err != nil {
		return bctx, fmt.Errorf("load session state: %w", err)
	}

	bctx.CurrentPage = state["currentPage"]
	bctx.CurrentModule = state["currentModule"]

	if raw := state["pageData"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &bctx.PageData); err != nil {
			r.logger.Warn("Discarding unreadable page data", "session_id", sessionID, "error", err)
		}
	}
	if raw := state["sessionStart"]; raw != "" {
		if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			bctx.SessionStartTime = t
		}
	}
	if raw := state["pageStart"]; raw != "" {
		if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			bctx.CurrentPageStartTime = t
		}
	}

	entries, err := r.client.XRange(ctx, navStreamPrefix+sessionID, "-", "+").Result()
	if err != nil {
		return bctx, fmt.Errorf("load navigation history: %w", err)
	}

	for _, entry := range entries {
		bctx.NavigationHistory = append(bctx.NavigationHistory, navigationEvent(entry.Values))
	}

	return bctx, nil
}

// EndSession drops all state for a session.
func (r *Recorder) EndSession(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, sessionPrefix+sessionID, navStreamPrefix+sessionID).Err()
}

// Close releases the underlying connection pool.
func (r *Recorder) Close() error {
	return r.client.Close()
}

func navigationEvent(values map[string]any) models.NavigationEvent {
	event := models.NavigationEvent{
		FromPage: stringValue(values["fromPage"]),
		ToPage:   stringValue(values["toPage"]),
		Module:   stringValue(values["module"]),
		Trigger:  stringValue(values["trigger"]),
	}

	if raw := stringValue(values["timestamp"]); raw != "" {
		if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			event.Timestamp = t
		}
	}
	if raw := stringValue(values["timeSpent"]); raw != "" {
		var ms int64
		if _, err := fmt.Sscanf(raw, "%d", &ms); err == nil {
			event.TimeSpent = time.Duration(ms) * time.Millisecond
		}
	}

	return event
}

func stringValue(v any) string {
	s, _ := v.(string)

	return s
}

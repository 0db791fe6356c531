package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"submitapi/internal/storage"
)

// URLIssuer wraps the content store's presign capability. Issuance can
// never fail a batch or a listing: every error is logged and masked to
// nil. URLs are not persisted; each read issues a fresh one.
type URLIssuer struct {
	store storage.Storage
	ttl   time.Duration
}

// NewURLIssuer constructs a URLIssuer with a fixed expiry window.
func NewURLIssuer(store storage.Storage, ttl time.Duration) *URLIssuer {
	return &URLIssuer{store: store, ttl: ttl}
}

// Issue returns a time-limited download URL for the stored path, or nil
// when the underlying store refuses or errors.
func (i *URLIssuer) Issue(ctx context.Context, key string) *string {
	u, err := i.store.PresignGet(ctx, key, i.ttl)
	if err != nil {
		logWarn("signed_url_failed", map[string]any{"storage_path": key, "error": err.Error()})
		return nil
	}
	return &u
}

// logWarn emits one JSON log line, matching the migration logger format.
func logWarn(event string, fields map[string]any) {
	entry := map[string]any{
		"ts":        time.Now().UTC().Format(time.RFC3339Nano),
		"level":     "warn",
		"component": "service",
		"event":     event,
	}
	for k, v := range fields {
		entry[k] = v
	}
	if b, err := json.Marshal(entry); err == nil {
		log.SetFlags(0)
		log.Println(string(b))
	}
}

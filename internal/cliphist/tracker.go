package cliphist

import (
	"context"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/rs/zerolog"
)

// privacyPrefix marks clipboard content that must never be recorded
// (password managers prepend it by convention).
const privacyPrefix = "*****"

// Tracker polls the system clipboard and persists new content to a Store.
type Tracker struct {
	store    *Store
	interval time.Duration
	log      zerolog.Logger

	// read is swappable for tests.
	read func() (string, error)
}

func NewTracker(store *Store, interval time.Duration, log zerolog.Logger) *Tracker {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	return &Tracker{store: store, interval: interval, log: log, read: clipboard.ReadAll}
}

// Run polls until ctx is cancelled. Read errors back off to one-second
// polling; they are expected on headless systems.
func (t *Tracker) Run(ctx context.Context) error {
	t.log.Info().Dur("interval", t.interval).Msg("clipboard tracker started")
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	last := ""
	for {
		select {
		case <-ctx.Done():
			t.log.Info().Msg("clipboard tracker stopped")
			return ctx.Err()
		case <-ticker.C:
		}

		clip, err := t.read()
		if err != nil {
			t.log.Debug().Err(err).Msg("clipboard read failed")
			time.Sleep(time.Second)
			continue
		}
		if clip == "" || clip == last || strings.HasPrefix(clip, privacyPrefix) {
			continue
		}
		last = clip
		inserted, err := t.store.Insert(clip, time.Now())
		if err != nil {
			t.log.Error().Err(err).Msg("failed to store clipboard entry")
			continue
		}
		if inserted {
			t.log.Info().Str("preview", preview(clip)).Msg("new clipboard entry saved")
		}
	}
}

func preview(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) > 50 {
		return s[:50] + "…"
	}
	return s
}

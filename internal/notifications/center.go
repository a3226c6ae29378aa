// Package notifications keeps the founder's local notification log. Nothing
// here is stored on the server; an optional cache.Store keeps it across runs.
package notifications

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yash200611/launchmate/internal/cache"
	"github.com/yash200611/launchmate/internal/logging"
)

type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	Timestamp time.Time `json:"timestamp"`
}

type snapshot struct {
	Notifications []Notification `json:"notifications"`
	Enabled       bool           `json:"enabled"`
}

// Center is the notification aggregate. The unread count is always derived
// from the log so it can never drift or go negative.
type Center struct {
	store cache.Store
	key   string
	log   zerolog.Logger
	now   func() time.Time

	mu      sync.Mutex
	items   []Notification
	enabled bool
}

// NewCenter returns an empty, enabled center. store may be nil; key scopes
// the snapshot, typically to the signed-in user.
func NewCenter(store cache.Store, key string) *Center {
	return &Center{
		store:   store,
		key:     "notifications:" + key,
		log:     logging.WithComponent("notifications"),
		now:     func() time.Time { return time.Now().UTC() },
		items:   []Notification{},
		enabled: true,
	}
}

// Load restores the last snapshot, if any.
func (c *Center) Load(ctx context.Context) error {
	if c.store == nil {
		return nil
	}
	var snap snapshot
	ok, err := c.store.Load(ctx, c.key, &snap)
	if err != nil || !ok {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append([]Notification{}, snap.Notifications...)
	c.enabled = snap.Enabled
	return nil
}

// Add records an unread notification at the head of the log. Entries are
// recorded even while notifications are disabled.
func (c *Center) Add(ctx context.Context, title, message string) Notification {
	n := Notification{
		ID:        uuid.NewString(),
		Title:     title,
		Message:   message,
		Timestamp: c.now(),
	}

	c.mu.Lock()
	c.items = append([]Notification{n}, c.items...)
	c.mu.Unlock()

	c.persist(ctx)
	return n
}

// MarkAsRead is idempotent; an unknown id is ignored.
func (c *Center) MarkAsRead(ctx context.Context, id string) {
	c.mu.Lock()
	changed := false
	for i := range c.items {
		if c.items[i].ID == id && !c.items[i].Read {
			c.items[i].Read = true
			changed = true
			break
		}
	}
	c.mu.Unlock()

	if changed {
		c.persist(ctx)
	}
}

func (c *Center) MarkAllAsRead(ctx context.Context) {
	c.mu.Lock()
	for i := range c.items {
		c.items[i].Read = true
	}
	c.mu.Unlock()
	c.persist(ctx)
}

// ToggleEnabled flips the preference and returns the new value.
func (c *Center) ToggleEnabled(ctx context.Context) bool {
	c.mu.Lock()
	c.enabled = !c.enabled
	enabled := c.enabled
	c.mu.Unlock()

	c.persist(ctx)
	return enabled
}

func (c *Center) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

func (c *Center) UnreadCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, item := range c.items {
		if !item.Read {
			n++
		}
	}
	return n
}

// List returns the log newest first.
func (c *Center) List() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Notification{}, c.items...)
}

func (c *Center) persist(ctx context.Context) {
	if c.store == nil {
		return
	}
	c.mu.Lock()
	snap := snapshot{Notifications: append([]Notification{}, c.items...), Enabled: c.enabled}
	c.mu.Unlock()

	if err := c.store.Save(ctx, c.key, snap); err != nil {
		c.log.Warn().Err(err).Msg("notification snapshot not saved")
	}
}

// Package spotlight holds the currently celebrated donation. A value reverts
// to empty on its own once the configured duration has passed without a new
// assignment.
package spotlight

import (
	"donosync/internal/models"
	"donosync/internal/observer"
	"donosync/internal/providers"
	"donosync/internal/structures"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jonboulle/clockwork"
)

type Cell struct {
	clock   clockwork.Clock
	ttl     time.Duration
	logger  providers.Logger
	metrics providers.MetricsProviderInterface

	mu        sync.Mutex
	value     *models.Celebration
	expiresAt time.Time
	timer     clockwork.Timer
	// generation changes on every assignment; an expiry only applies to the
	// generation it was armed for.
	generation uint64
	closed     bool

	pending   []models.SpotlightState
	flushing  bool
	observers observer.List[models.SpotlightState]
}

func NewCell(conf *structures.Config, clock clockwork.Clock, logger providers.Logger, metrics providers.MetricsProviderInterface) *Cell {
	return &Cell{
		clock:   clock,
		ttl:     conf.Spotlight.Duration,
		logger:  logger,
		metrics: metrics,
	}
}

// Set replaces the spotlight value. A non-nil celebration is held for the
// configured duration, counted from this call; nil clears the cell at once.
// Any previously armed expiry is cancelled. Calls after Close are ignored.
func (c *Cell) Set(celebration *models.Celebration) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	expired := c.expireDueLocked()
	c.stopTimerLocked()
	c.generation++
	wasActive := c.value != nil

	if celebration == nil {
		c.value = nil
		c.expiresAt = time.Time{}
		if wasActive {
			c.pending = append(c.pending, models.SpotlightState{})
		}
		c.mu.Unlock()
		c.noteExpired(expired)
		if wasActive {
			c.logger.Debugf(providers.TypeSpotlight, "Spotlight cleared")
		}
		c.flush()
		return
	}

	c.value = cloneCelebration(celebration)
	c.expiresAt = c.clock.Now().Add(c.ttl)
	generation := c.generation
	c.timer = c.clock.AfterFunc(c.ttl, func() { c.expire(generation) })
	c.pending = append(c.pending, c.stateLocked())
	c.mu.Unlock()

	c.noteExpired(expired)
	c.metrics.IncCelebrations()
	c.logger.Infof(providers.TypeSpotlight, "Celebrating donation %d by %s (%s) for %s",
		celebration.Donation.ID, celebration.Donation.Donor, humanize.Commaf(celebration.Donation.Amount), c.ttl)
	c.flush()
}

// Get returns the held celebration, or nil once its deadline has passed even
// if the expiry timer has not run yet.
func (c *Cell) Get() *models.Celebration {
	c.mu.Lock()
	expired := c.expireDueLocked()
	value := cloneCelebration(c.value)
	c.mu.Unlock()

	c.afterExpiry(expired)
	return value
}

func (c *Cell) State() models.SpotlightState {
	c.mu.Lock()
	expired := c.expireDueLocked()
	state := c.stateLocked()
	c.mu.Unlock()

	c.afterExpiry(expired)
	return state
}

// Subscribe registers fn for every value transition: set, replace, clear and
// expiry. Notifications are delivered in transition order.
func (c *Cell) Subscribe(fn func(models.SpotlightState)) (unsubscribe func()) {
	return c.observers.Subscribe(fn)
}

// Close cancels the pending expiry and silences observers. Later Set calls
// are ignored; the held value still reads as empty past its deadline.
func (c *Cell) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.generation++
	c.stopTimerLocked()
}

func (c *Cell) expire(generation uint64) {
	c.mu.Lock()
	if c.closed || generation != c.generation || c.value == nil {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	expired := c.clearLocked()
	c.mu.Unlock()

	c.afterExpiry(expired)
}

// expireDueLocked clears a value whose deadline has passed before its timer
// fired. The returned celebration is nil when nothing was due.
func (c *Cell) expireDueLocked() *models.Celebration {
	if c.value == nil || c.clock.Now().Before(c.expiresAt) {
		return nil
	}
	c.generation++
	c.stopTimerLocked()
	if c.closed {
		c.value = nil
		c.expiresAt = time.Time{}
		return nil
	}
	return c.clearLocked()
}

func (c *Cell) clearLocked() *models.Celebration {
	expired := c.value
	c.value = nil
	c.expiresAt = time.Time{}
	c.pending = append(c.pending, models.SpotlightState{})
	return expired
}

func (c *Cell) noteExpired(expired *models.Celebration) {
	if expired == nil {
		return
	}
	c.metrics.IncSpotlightExpirations()
	c.logger.Debugf(providers.TypeSpotlight, "Spotlight on donation %d expired", expired.Donation.ID)
}

func (c *Cell) afterExpiry(expired *models.Celebration) {
	if expired == nil {
		return
	}
	c.noteExpired(expired)
	c.flush()
}

// flush delivers queued states. Only one goroutine drains at a time, which
// keeps delivery in the order the transitions happened.
func (c *Cell) flush() {
	c.mu.Lock()
	if c.flushing {
		c.mu.Unlock()
		return
	}
	c.flushing = true
	for len(c.pending) > 0 {
		state := c.pending[0]
		c.pending = c.pending[1:]
		c.mu.Unlock()
		c.observers.Notify(state)
		c.mu.Lock()
	}
	c.flushing = false
	c.mu.Unlock()
}

func (c *Cell) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Cell) stateLocked() models.SpotlightState {
	if c.value == nil {
		return models.SpotlightState{}
	}
	expiresAt := c.expiresAt
	return models.SpotlightState{
		Value:     cloneCelebration(c.value),
		ExpiresAt: &expiresAt,
	}
}

func cloneCelebration(in *models.Celebration) *models.Celebration {
	if in == nil {
		return nil
	}
	out := *in
	if in.DonorTotal != nil {
		total := *in.DonorTotal
		out.DonorTotal = &total
	}
	return &out
}

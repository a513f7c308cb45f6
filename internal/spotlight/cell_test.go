package spotlight

import (
	"donosync/internal/models"
	"donosync/internal/structures"
	"donosync/internal/testutil"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTTL = 7 * time.Second

type recorder struct {
	mu     sync.Mutex
	states []models.SpotlightState
}

func (r *recorder) record(s models.SpotlightState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
}

func (r *recorder) all() []models.SpotlightState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.SpotlightState(nil), r.states...)
}

func newTestCell(t *testing.T) (*Cell, *clockwork.FakeClock, *testutil.MockMetrics) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	metrics := &testutil.MockMetrics{}
	conf := &structures.Config{Spotlight: structures.SpotlightConfig{Duration: testTTL}}
	cell := NewCell(conf, clock, &testutil.MockLogger{}, metrics)
	t.Cleanup(cell.Close)
	return cell, clock, metrics
}

func celebration(id int64, donor string, amount float64) *models.Celebration {
	return &models.Celebration{Donation: models.Donation{ID: id, Donor: donor, Amount: amount}}
}

func TestCell_EmptyByDefault(t *testing.T) {
	cell, _, _ := newTestCell(t)

	assert.Nil(t, cell.Get())
	assert.False(t, cell.State().Active())
	assert.Nil(t, cell.State().ExpiresAt)
}

func TestCell_HoldsValueForWindowThenExpires(t *testing.T) {
	cell, clock, metrics := newTestCell(t)
	rec := &recorder{}
	cell.Subscribe(rec.record)

	t0 := clock.Now()
	cell.Set(celebration(7, "A", 10))

	state := cell.State()
	require.NotNil(t, state.ExpiresAt)
	assert.Equal(t, t0.Add(testTTL), *state.ExpiresAt)

	clock.Advance(testTTL - time.Millisecond)
	assert.Equal(t, celebration(7, "A", 10), cell.Get())

	clock.Advance(time.Millisecond)
	assert.Nil(t, cell.Get())
	assert.False(t, cell.State().Active())
	assert.Eventually(t, func() bool { return len(rec.all()) == 2 }, time.Second, time.Millisecond)

	states := rec.all()
	assert.True(t, states[0].Active())
	assert.False(t, states[1].Active())
	assert.Equal(t, 1, metrics.Snapshot().SpotlightExpirations)
	assert.Equal(t, 1, metrics.Snapshot().Celebrations)
}

func TestCell_EmptyAtDeadlineBeforeTimerRuns(t *testing.T) {
	cell, clock, metrics := newTestCell(t)
	rec := &recorder{}
	cell.Subscribe(rec.record)

	cell.Set(celebration(7, "A", 10))
	clock.Advance(testTTL)

	assert.Nil(t, cell.Get())
	state := cell.State()
	assert.False(t, state.Active())
	assert.Nil(t, state.ExpiresAt)

	// the timer goroutine may still run; it must not notify a second time
	time.Sleep(10 * time.Millisecond)
	states := rec.all()
	require.Len(t, states, 2)
	assert.False(t, states[1].Active())
	assert.Equal(t, 1, metrics.Snapshot().SpotlightExpirations)
}

func TestCell_SetAfterDeadlineReportsExpiryFirst(t *testing.T) {
	cell, clock, metrics := newTestCell(t)
	rec := &recorder{}

	cell.Set(celebration(1, "A", 5))
	cell.Subscribe(rec.record)
	clock.Advance(testTTL)
	cell.Set(celebration(2, "B", 6))

	states := rec.all()
	require.GreaterOrEqual(t, len(states), 2)
	last := states[len(states)-1]
	require.True(t, last.Active())
	assert.Equal(t, int64(2), last.Value.Donation.ID)
	assert.False(t, states[len(states)-2].Active())
	assert.Equal(t, 1, metrics.Snapshot().SpotlightExpirations)
}

func TestCell_ResetRearmsFromLatestSet(t *testing.T) {
	cell, clock, _ := newTestCell(t)

	cell.Set(celebration(1, "A", 5))
	clock.Advance(4 * time.Second)

	t1 := clock.Now()
	cell.Set(celebration(2, "B", 6))
	require.NotNil(t, cell.State().ExpiresAt)
	assert.Equal(t, t1.Add(testTTL), *cell.State().ExpiresAt)

	// past the first deadline: the first timer must not clear the second value
	clock.Advance(4 * time.Second)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, celebration(2, "B", 6), cell.Get())

	clock.Advance(3 * time.Second)
	assert.Eventually(t, func() bool { return cell.Get() == nil }, time.Second, time.Millisecond)
}

func TestCell_SameValueRestartsWindow(t *testing.T) {
	cell, clock, _ := newTestCell(t)

	cell.Set(celebration(1, "A", 5))
	clock.Advance(5 * time.Second)
	cell.Set(celebration(1, "A", 5))

	clock.Advance(5 * time.Second)
	time.Sleep(10 * time.Millisecond)
	assert.NotNil(t, cell.Get())

	clock.Advance(2 * time.Second)
	assert.Eventually(t, func() bool { return cell.Get() == nil }, time.Second, time.Millisecond)
}

func TestCell_SetNilClearsImmediatelyWithoutTimer(t *testing.T) {
	cell, clock, metrics := newTestCell(t)
	rec := &recorder{}
	cell.Subscribe(rec.record)

	cell.Set(celebration(1, "A", 5))
	cell.Set(nil)

	assert.Nil(t, cell.Get())
	assert.Nil(t, cell.State().ExpiresAt)

	clock.Advance(2 * testTTL)
	time.Sleep(10 * time.Millisecond)

	states := rec.all()
	require.Len(t, states, 2)
	assert.False(t, states[1].Active())
	assert.Equal(t, 0, metrics.Snapshot().SpotlightExpirations)
}

func TestCell_SetNilOnEmptyDoesNotNotify(t *testing.T) {
	cell, _, _ := newTestCell(t)
	rec := &recorder{}
	cell.Subscribe(rec.record)

	cell.Set(nil)
	assert.Empty(t, rec.all())
}

func TestCell_NotifiesOnEveryAssignment(t *testing.T) {
	cell, _, _ := newTestCell(t)
	rec := &recorder{}
	cell.Subscribe(rec.record)

	cell.Set(celebration(1, "A", 5))
	cell.Set(celebration(2, "B", 6))
	cell.Set(celebration(2, "B", 6))

	states := rec.all()
	require.Len(t, states, 3)
	assert.Equal(t, int64(1), states[0].Value.Donation.ID)
	assert.Equal(t, int64(2), states[2].Value.Donation.ID)
}

func TestCell_StoresCopy(t *testing.T) {
	cell, _, _ := newTestCell(t)

	total := 99.0
	in := &models.Celebration{Donation: models.Donation{ID: 7, Donor: "A", Amount: 10}, DonorTotal: &total}
	cell.Set(in)
	in.Donation.Donor = "mutated"
	total = 1

	got := cell.Get()
	assert.Equal(t, "A", got.Donation.Donor)
	assert.Equal(t, 99.0, *got.DonorTotal)
}

func TestCell_CloseCancelsPendingExpiry(t *testing.T) {
	cell, clock, metrics := newTestCell(t)
	rec := &recorder{}

	cell.Set(celebration(1, "A", 5))
	cell.Subscribe(rec.record)
	cell.Close()

	clock.Advance(2 * testTTL)
	time.Sleep(10 * time.Millisecond)

	assert.Empty(t, rec.all())
	assert.Equal(t, 0, metrics.Snapshot().SpotlightExpirations)

	cell.Set(celebration(2, "B", 1))
	assert.Nil(t, cell.Get())
	assert.Empty(t, rec.all())
}

func TestCell_CloseKeepsValueUntilDeadline(t *testing.T) {
	cell, clock, _ := newTestCell(t)

	cell.Set(celebration(1, "A", 5))
	cell.Close()
	cell.Set(celebration(2, "B", 1))

	clock.Advance(testTTL - time.Millisecond)
	require.NotNil(t, cell.Get())
	assert.Equal(t, int64(1), cell.Get().Donation.ID)

	clock.Advance(time.Millisecond)
	assert.Nil(t, cell.Get())
}

func TestCell_ObserverMaySetFromCallback(t *testing.T) {
	cell, _, _ := newTestCell(t)
	rec := &recorder{}

	cell.Subscribe(func(s models.SpotlightState) {
		if s.Active() && s.Value.Donation.ID == 1 {
			cell.Set(celebration(2, "B", 1))
		}
	})
	cell.Subscribe(rec.record)

	cell.Set(celebration(1, "A", 5))

	states := rec.all()
	require.Len(t, states, 2)
	assert.Equal(t, int64(1), states[0].Value.Donation.ID)
	assert.Equal(t, int64(2), states[1].Value.Donation.ID)
}

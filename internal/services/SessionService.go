package services

import (
	"donosync/internal/models"
	"donosync/internal/observer"
	"donosync/internal/providers"
	"sync"

	"github.com/dustin/go-humanize"
	"go.uber.org/atomic"
)

type FrameDecoderInterface interface {
	DecodeFrame(messageType int, payload []byte) (*models.Snapshot, error)
}

type SpotlightInterface interface {
	Set(celebration *models.Celebration)
	State() models.SpotlightState
	Subscribe(fn func(models.SpotlightState)) (unsubscribe func())
}

type SessionServiceInterface interface {
	HandleFrame(messageType int, payload []byte) error
	Message() *models.Snapshot
	Spotlight() models.SpotlightState
	Version() uint64
	SubscribeMessage(fn func(*models.Snapshot)) (unsubscribe func())
}

// SessionService is the process wide view of the donation feed. It owns the
// latest snapshot and feeds resolved celebrations into the spotlight.
type SessionService struct {
	decoder   FrameDecoderInterface
	spotlight SpotlightInterface
	logger    providers.Logger
	metrics   providers.MetricsProviderInterface

	mu      sync.RWMutex
	message *models.Snapshot

	// version changes whenever anything an observer can read changes
	version   atomic.Uint64
	observers observer.List[*models.Snapshot]
}

func NewSessionService(decoder FrameDecoderInterface, spotlight SpotlightInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) SessionServiceInterface {
	s := &SessionService{
		decoder:   decoder,
		spotlight: spotlight,
		logger:    logger,
		metrics:   metrics,
	}
	spotlight.Subscribe(func(models.SpotlightState) {
		s.version.Inc()
	})
	return s
}

// HandleFrame decodes a frame and applies it. A frame that fails to decode is
// dropped and leaves all state as it was.
func (s *SessionService) HandleFrame(messageType int, payload []byte) error {
	snapshot, err := s.decoder.DecodeFrame(messageType, payload)
	if err != nil {
		s.metrics.IncDecodeErrors()
		s.logger.Warnf(providers.TypeFrame, "Dropping frame (%s): %s", humanize.Bytes(uint64(len(payload))), err)
		return err
	}
	s.metrics.IncFramesTotal("snapshot")

	s.mu.Lock()
	s.message = snapshot
	s.mu.Unlock()
	s.version.Inc()

	s.logger.Debugf(providers.TypeFrame, "Snapshot with %d individual and %d aggregate donations, pricepool %s",
		len(snapshot.IndividualDonations), len(snapshot.AggregateDonations), humanize.Commaf(snapshot.Pricepool))
	s.observers.Notify(snapshot)

	// Without a celebration id the current spotlight stays as it is.
	if !snapshot.HasCelebration() {
		return nil
	}
	celebration := ResolveCelebration(snapshot)
	if celebration == nil {
		s.logger.Infof(providers.TypeFrame, "Celebration id %d not found among individual donations", *snapshot.CelebrationID)
	}
	s.spotlight.Set(celebration)
	return nil
}

// Message returns the latest snapshot, or nil before the first one arrived.
// The snapshot is shared and must not be modified.
func (s *SessionService) Message() *models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.message
}

func (s *SessionService) Spotlight() models.SpotlightState {
	return s.spotlight.State()
}

func (s *SessionService) Version() uint64 {
	return s.version.Load()
}

func (s *SessionService) SubscribeMessage(fn func(*models.Snapshot)) (unsubscribe func()) {
	return s.observers.Subscribe(fn)
}

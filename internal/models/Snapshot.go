package models

// Snapshot is one decoded stream message. Each snapshot fully replaces the
// previous one.
type Snapshot struct {
	IndividualDonations []Donation `json:"individual_donations"`
	AggregateDonations  []Donation `json:"aggregate_donations"`
	CelebrationID       *int64     `json:"celebration_id,omitempty"`
	Pricepool           float64    `json:"pricepool"`
}

func (s *Snapshot) HasCelebration() bool {
	return s != nil && s.CelebrationID != nil
}

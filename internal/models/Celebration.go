package models

import "time"

type Celebration struct {
	Donation   Donation `json:"donation"`
	DonorTotal *float64 `json:"donor_total,omitempty"`
}

// SpotlightState is the value held by the spotlight together with the moment
// it reverts to empty. Both fields are nil when the spotlight is empty.
type SpotlightState struct {
	Value     *Celebration `json:"celebration"`
	ExpiresAt *time.Time   `json:"expires_at,omitempty"`
}

func (s SpotlightState) Active() bool {
	return s.Value != nil
}

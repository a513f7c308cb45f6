package models

import "time"

// Donation is a single donation record. Individual records are identified by
// ID, aggregate records by Donor.
type Donation struct {
	ID        int64      `json:"id"`
	Donor     string     `json:"donor"`
	Amount    float64    `json:"amount"`
	DonatedAt *time.Time `json:"donated_at,omitempty"`
}

// Package decoder turns raw stream frames into snapshots.
package decoder

import (
	"donosync/internal/models"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
)

type wireDonation struct {
	ID        *int64     `json:"id"`
	Donor     *string    `json:"donor"`
	Amount    *float64   `json:"amount"`
	DonatedAt *time.Time `json:"donated_at"`
}

type wireSnapshot struct {
	IndividualDonations *[]wireDonation `json:"individual_donations"`
	AggregateDonations  *[]wireDonation `json:"aggregate_donations"`
	CelebrationID       *int64          `json:"celebration_id"`
	// IDOfCelebrated is the field name used by older feed servers.
	IDOfCelebrated *int64   `json:"id_of_celebrated"`
	Pricepool      *float64 `json:"pricepool"`
}

// Decode parses a single text frame into a Snapshot. It has no side effects;
// every failure is returned as a *DecodeError.
func Decode(raw []byte) (*models.Snapshot, error) {
	var wire wireSnapshot
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, &DecodeError{Err: err}
	}

	if wire.IndividualDonations == nil {
		return nil, missing("individual_donations")
	}
	if wire.AggregateDonations == nil {
		return nil, missing("aggregate_donations")
	}
	if wire.Pricepool == nil {
		return nil, missing("pricepool")
	}

	individual, err := convertDonations("individual_donations", *wire.IndividualDonations, true)
	if err != nil {
		return nil, err
	}
	aggregate, err := convertDonations("aggregate_donations", *wire.AggregateDonations, false)
	if err != nil {
		return nil, err
	}

	celebrationID := wire.CelebrationID
	if celebrationID == nil {
		celebrationID = wire.IDOfCelebrated
	}

	return &models.Snapshot{
		IndividualDonations: individual,
		AggregateDonations:  aggregate,
		CelebrationID:       celebrationID,
		Pricepool:           *wire.Pricepool,
	}, nil
}

// convertDonations validates wire records. Aggregate records are keyed by
// donor, so their id is optional.
func convertDonations(field string, in []wireDonation, requireID bool) ([]models.Donation, error) {
	out := make([]models.Donation, 0, len(in))
	for i, d := range in {
		path := fmt.Sprintf("%s[%d]", field, i)
		if requireID && d.ID == nil {
			return nil, missing(path + ".id")
		}
		if d.Donor == nil {
			return nil, missing(path + ".donor")
		}
		if d.Amount == nil {
			return nil, missing(path + ".amount")
		}

		donation := models.Donation{
			Donor:     *d.Donor,
			Amount:    *d.Amount,
			DonatedAt: d.DonatedAt,
		}
		if d.ID != nil {
			donation.ID = *d.ID
		}
		out = append(out, donation)
	}
	return out, nil
}

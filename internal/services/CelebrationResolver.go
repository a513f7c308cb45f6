package services

import "donosync/internal/models"

// ResolveCelebration derives the celebrated donation from a snapshot. It
// returns nil when the snapshot names no celebration or when the named id is
// not among the individual donations. Lookups are first match in sequence
// order. DonorTotal is the amount of the first aggregate record with the same
// donor, or nil when there is none.
func ResolveCelebration(snapshot *models.Snapshot) *models.Celebration {
	if !snapshot.HasCelebration() {
		return nil
	}

	id := *snapshot.CelebrationID
	for _, donation := range snapshot.IndividualDonations {
		if donation.ID != id {
			continue
		}
		celebration := &models.Celebration{Donation: donation}
		for _, aggregate := range snapshot.AggregateDonations {
			if aggregate.Donor == donation.Donor {
				total := aggregate.Amount
				celebration.DonorTotal = &total
				break
			}
		}
		return celebration
	}
	return nil
}

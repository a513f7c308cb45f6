package main

import (
	"donosync/internal/models"
	"slices"
)

// buildSnapshot lays donations out the way the donation backend does. Both
// lists are non-nil so they encode as arrays.
func buildSnapshot(donations []models.Donation, celebrationID *int64) models.Snapshot {
	return models.Snapshot{
		IndividualDonations: sortByDate(donations),
		AggregateDonations:  aggregateByDonor(donations),
		CelebrationID:       celebrationID,
		Pricepool:           totalAmount(donations) * 2,
	}
}

func totalAmount(donations []models.Donation) float64 {
	var sum float64
	for _, d := range donations {
		sum += d.Amount
	}
	return sum
}

// sortByDate orders newest first; records without a date go last.
func sortByDate(donations []models.Donation) []models.Donation {
	out := append([]models.Donation{}, donations...)
	slices.SortStableFunc(out, func(a, b models.Donation) int {
		switch {
		case a.DonatedAt == nil && b.DonatedAt == nil:
			return 0
		case a.DonatedAt == nil:
			return 1
		case b.DonatedAt == nil:
			return -1
		}
		return b.DonatedAt.Compare(*a.DonatedAt)
	})
	return out
}

// aggregateByDonor sums amounts per donor, keeping the first record of each
// donor, and orders the result by amount, largest first.
func aggregateByDonor(donations []models.Donation) []models.Donation {
	out := []models.Donation{}
	index := make(map[string]int)
	for _, d := range donations {
		if i, ok := index[d.Donor]; ok {
			out[i].Amount += d.Amount
			continue
		}
		index[d.Donor] = len(out)
		out = append(out, d)
	}
	slices.SortStableFunc(out, func(a, b models.Donation) int {
		switch {
		case a.Amount > b.Amount:
			return -1
		case a.Amount < b.Amount:
			return 1
		}
		return 0
	})
	return out
}

package services

import (
	"donosync/internal/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func TestResolveCelebration_NoCelebrationID(t *testing.T) {
	snapshot := &models.Snapshot{
		IndividualDonations: []models.Donation{{ID: 7, Donor: "A", Amount: 10}},
		AggregateDonations:  []models.Donation{{Donor: "A", Amount: 99}},
	}
	assert.Nil(t, ResolveCelebration(snapshot))
	assert.Nil(t, ResolveCelebration(nil))
}

func TestResolveCelebration_IDNotFound(t *testing.T) {
	snapshot := &models.Snapshot{
		IndividualDonations: []models.Donation{{ID: 7, Donor: "A", Amount: 10}},
		AggregateDonations:  []models.Donation{{Donor: "A", Amount: 99}},
		CelebrationID:       int64Ptr(8),
	}
	assert.Nil(t, ResolveCelebration(snapshot))
}

func TestResolveCelebration_WithDonorTotal(t *testing.T) {
	snapshot := &models.Snapshot{
		IndividualDonations: []models.Donation{{ID: 7, Donor: "A", Amount: 10}},
		AggregateDonations:  []models.Donation{{Donor: "A", Amount: 99}},
		CelebrationID:       int64Ptr(7),
	}

	celebration := ResolveCelebration(snapshot)
	require.NotNil(t, celebration)
	assert.Equal(t, models.Donation{ID: 7, Donor: "A", Amount: 10}, celebration.Donation)
	require.NotNil(t, celebration.DonorTotal)
	assert.Equal(t, 99.0, *celebration.DonorTotal)
}

func TestResolveCelebration_NoAggregateForDonor(t *testing.T) {
	snapshot := &models.Snapshot{
		IndividualDonations: []models.Donation{{ID: 7, Donor: "A", Amount: 10}},
		AggregateDonations:  []models.Donation{{Donor: "B", Amount: 99}},
		CelebrationID:       int64Ptr(7),
	}

	celebration := ResolveCelebration(snapshot)
	require.NotNil(t, celebration)
	assert.Nil(t, celebration.DonorTotal)
}

func TestResolveCelebration_FirstMatchWins(t *testing.T) {
	snapshot := &models.Snapshot{
		IndividualDonations: []models.Donation{
			{ID: 1, Donor: "X", Amount: 1},
			{ID: 7, Donor: "A", Amount: 10},
			{ID: 7, Donor: "B", Amount: 20},
		},
		AggregateDonations: []models.Donation{
			{Donor: "B", Amount: 5},
			{Donor: "A", Amount: 99},
			{Donor: "A", Amount: 1000},
		},
		CelebrationID: int64Ptr(7),
	}

	celebration := ResolveCelebration(snapshot)
	require.NotNil(t, celebration)
	assert.Equal(t, "A", celebration.Donation.Donor)
	assert.Equal(t, 99.0, *celebration.DonorTotal)
}

func TestResolveCelebration_IsDeterministic(t *testing.T) {
	snapshot := &models.Snapshot{
		IndividualDonations: []models.Donation{{ID: 7, Donor: "A", Amount: 10}},
		AggregateDonations:  []models.Donation{{Donor: "A", Amount: 99}},
		CelebrationID:       int64Ptr(7),
	}

	assert.Equal(t, ResolveCelebration(snapshot), ResolveCelebration(snapshot))
}

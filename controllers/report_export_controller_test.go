package controllers

import (
	"testing"
	"time"

	"github.com/Govind-619/BillSphere/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportRange(t *testing.T) {
	now := time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC)

	start, end, err := reportRange("day", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, 15, end.Day())
	assert.Equal(t, 23, end.Hour())

	start, _, err = reportRange("week", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC), start)

	start, _, err = reportRange("month", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC), start)

	start, _, err = reportRange("all", now)
	require.NoError(t, err)
	assert.True(t, start.IsZero())

	_, _, err = reportRange("year", now)
	assert.Error(t, err)
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Pending approval", statusLabel(models.SubscriptionPendingApproval))
	assert.Equal(t, "Active", statusLabel(models.SubscriptionActive))
}

func TestReportRow(t *testing.T) {
	starts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	sub := models.Subscription{
		ID:        12,
		Status:    models.SubscriptionActive,
		StartsAt:  &starts,
		CreatedAt: starts,
		User:      &models.User{FirstName: "Citra", LastName: "Demo"},
	}
	row := reportRow(sub)
	require.Len(t, row, len(reportHeaders))
	assert.Equal(t, "12", row[0])
	assert.Equal(t, "Citra Demo", row[1])
	assert.Equal(t, "", row[2])
	assert.Equal(t, "active", row[5])
	assert.Equal(t, "2024-01-01", row[7])
	assert.Equal(t, "", row[8])
}

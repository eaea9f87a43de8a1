package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-management-api/internal/model"
)

func appt(id string, at time.Time, status string, cost float64) model.Appointment {
	return model.Appointment{
		ID:              id,
		AppointmentDate: at.UTC().Format(time.RFC3339),
		Status:          status,
		Cost:            cost,
	}
}

func TestUpcomingPastStrictPartition(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	appts := []model.Appointment{
		appt("future-far", now.Add(48*time.Hour), model.StatusScheduled, 0),
		appt("future-near", now.Add(time.Hour), model.StatusScheduled, 0),
		appt("exactly-now", now, model.StatusScheduled, 0),
		appt("past", now.Add(-time.Hour), model.StatusCompleted, 0),
		{ID: "unparsable", AppointmentDate: "not-a-date"},
	}

	up := Upcoming(appts, now)
	past := Past(appts, now)

	// no overlap, and together they cover the whole collection
	seen := map[string]int{}
	for _, a := range up {
		seen[a.ID]++
	}
	for _, a := range past {
		seen[a.ID]++
	}
	require.Len(t, seen, len(appts))
	for id, n := range seen {
		assert.Equalf(t, 1, n, "appointment %s counted %d times", id, n)
	}

	// boundary is strict: "now" itself is past
	assert.Equal(t, []string{"future-near", "future-far"}, ids(up))
	assert.Equal(t, []string{"exactly-now", "past", "unparsable"}, ids(past))
}

func ids(appts []model.Appointment) []string {
	out := make([]string, len(appts))
	for i, a := range appts {
		out[i] = a.ID
	}
	return out
}

func TestSummarize(t *testing.T) {
	now := time.Now()
	patients := []model.Patient{{ID: "p1"}, {ID: "p2"}}
	appts := []model.Appointment{
		appt("a1", now, model.StatusCompleted, 100),
		appt("a2", now, model.StatusScheduled, 50.5),
		appt("a3", now, model.StatusCancelled, 0),
	}

	s := Summarize(patients, appts)
	assert.Equal(t, 2, s.TotalPatients)
	assert.Equal(t, 1, s.Completed)
	assert.Equal(t, 2, s.Pending, "everything not completed counts as pending")
	assert.Equal(t, 150.5, s.TotalRevenue)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, nil)
	assert.Zero(t, s.TotalPatients)
	assert.Zero(t, s.TotalRevenue)
}

func TestLimit(t *testing.T) {
	appts := make([]model.Appointment, 12)
	assert.Len(t, Limit(appts, 10), 10)
	assert.Len(t, Limit(appts[:3], 10), 3)
}

// Package report derives the read-only dashboard aggregates. Everything is
// recomputed from the full collections on each call; at single-clinic scale
// there is nothing worth caching.
package report

import (
	"sort"
	"time"

	"clinic-management-api/internal/model"
)

// Summary holds the admin dashboard counters.
type Summary struct {
	TotalPatients int     `json:"totalPatients"`
	Completed     int     `json:"completed"`
	Pending       int     `json:"pending"`
	TotalRevenue  float64 `json:"totalRevenue"`
}

func Summarize(patients []model.Patient, appts []model.Appointment) Summary {
	s := Summary{TotalPatients: len(patients)}
	for _, a := range appts {
		if a.Status == model.StatusCompleted {
			s.Completed++
		} else {
			s.Pending++
		}
		s.TotalRevenue += a.Cost
	}
	return s
}

// apptTime parses the stored timestamp. Writes always normalize to RFC 3339,
// but a record that predates that rule sorts as the zero time and lands in
// the past bucket rather than being dropped.
func apptTime(a model.Appointment) time.Time {
	t, err := time.Parse(time.RFC3339, a.AppointmentDate)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Upcoming returns appointments strictly after now, soonest first.
func Upcoming(appts []model.Appointment, now time.Time) []model.Appointment {
	var out []model.Appointment
	for _, a := range appts {
		if apptTime(a).After(now) {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return apptTime(out[i]).Before(apptTime(out[j]))
	})
	return out
}

// Past returns appointments at or before now, most recent first. Together
// with Upcoming this is a strict partition of the collection at now.
func Past(appts []model.Appointment, now time.Time) []model.Appointment {
	var out []model.Appointment
	for _, a := range appts {
		if !apptTime(a).After(now) {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return apptTime(out[j]).Before(apptTime(out[i]))
	})
	return out
}

// Limit caps a list without copying; the admin view shows the next ten.
func Limit(appts []model.Appointment, n int) []model.Appointment {
	if len(appts) > n {
		return appts[:n]
	}
	return appts
}

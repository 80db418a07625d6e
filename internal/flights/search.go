package flights

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"skybook/internal/backend"
	"skybook/internal/wizard"
)

// Sort keys accepted by the results screen
const (
	SortPrice     = "price"
	SortDuration  = "duration"
	SortDeparture = "departure"
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

var clockLayouts = []string{"15:04", "15:04:05", "3:04 PM", "3:04PM"}

// FilterFlights keeps flights whose departure and arrival contain the
// searched text and whose date equals the searched date. A date that does not
// parse on either side never excludes a flight.
func FilterFlights(flights []backend.Flight, c wizard.SearchCriteria) []backend.Flight {
	out := make([]backend.Flight, 0, len(flights))
	for _, f := range flights {
		if !matchesPlace(f.Departure, c.From) || !matchesPlace(f.Arrival, c.To) {
			continue
		}
		if !matchesDate(f.Date, c.DepartureDate) {
			continue
		}
		out = append(out, f)
	}
	return out
}

func matchesPlace(loc backend.Location, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(loc.Airport), q) ||
		strings.Contains(strings.ToLower(loc.City), q)
}

func matchesDate(flightDate, wanted string) bool {
	if strings.TrimSpace(wanted) == "" {
		return true
	}
	fd, ok := parseDate(flightDate)
	if !ok {
		return true
	}
	wd, ok := parseDate(wanted)
	if !ok {
		return true
	}
	return fd == wd
}

// parseDate returns the calendar day as YYYY-MM-DD
func parseDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

// SortFlights orders flights in place. Unknown keys leave the order alone.
// Pairs that cannot be compared are treated as equal, and equal elements keep
// their listed order.
func SortFlights(flights []backend.Flight, key string) {
	var less func(a, b backend.Flight) bool

	switch key {
	case SortPrice:
		less = func(a, b backend.Flight) bool { return a.Price < b.Price }
	case SortDuration:
		less = func(a, b backend.Flight) bool {
			da, okA := Duration(a)
			db, okB := Duration(b)
			return okA && okB && da < db
		}
	case SortDeparture:
		less = func(a, b backend.Flight) bool {
			ta, okA := departureInstant(a)
			tb, okB := departureInstant(b)
			return okA && okB && ta.Before(tb)
		}
	default:
		return
	}

	sort.SliceStable(flights, func(i, j int) bool { return less(flights[i], flights[j]) })
}

// Duration computes flight time from the departure and arrival times. Bare
// clock times that wrap past midnight are treated as arriving the next day.
func Duration(f backend.Flight) (time.Duration, bool) {
	if dep, err := time.Parse(time.RFC3339, f.Departure.Time); err == nil {
		if arr, err := time.Parse(time.RFC3339, f.Arrival.Time); err == nil {
			d := arr.Sub(dep)
			return d, d >= 0
		}
	}

	dep, ok := parseClock(f.Departure.Time)
	if !ok {
		return 0, false
	}
	arr, ok := parseClock(f.Arrival.Time)
	if !ok {
		return 0, false
	}

	d := arr - dep
	if d < 0 {
		d += 24 * time.Hour
	}
	return d, true
}

// FormatDuration renders a duration the way the results list shows it, e.g. "3h 30m"
func FormatDuration(d time.Duration) string {
	return fmt.Sprintf("%dh %dm", int(d.Hours()), int(d.Minutes())%60)
}

// parseClock returns the offset from midnight
func parseClock(s string) (time.Duration, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute + time.Duration(t.Second())*time.Second, true
		}
	}
	return 0, false
}

func departureInstant(f backend.Flight) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, f.Departure.Time); err == nil {
		return t, true
	}

	clock, ok := parseClock(f.Departure.Time)
	if !ok {
		return time.Time{}, false
	}
	day, ok := parseDate(f.Date)
	if !ok {
		// Same-day listings: compare by clock alone
		return time.Time{}.Add(clock), true
	}
	base, _ := time.Parse("2006-01-02", day)
	return base.Add(clock), true
}

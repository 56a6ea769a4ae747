package data

import (
	"fmt"
	"sort"
	"time"

	"github.com/iudanet/stravadash/internal/models"
)

// DateLayout is the layout of the from/to bounds accepted by the CLI and the API
const DateLayout = "2006-01-02"

// Filter selects activities by type and start day. Zero fields match everything.
// From and To are calendar days in UTC, both inclusive.
type Filter struct {
	From time.Time
	To   time.Time
	Type string
}

// ParseFilter builds a Filter from raw values; empty strings leave a bound open
func ParseFilter(sport, from, to string) (Filter, error) {
	f := Filter{Type: sport}

	var err error
	if from != "" {
		if f.From, err = time.Parse(DateLayout, from); err != nil {
			return Filter{}, fmt.Errorf("invalid from date %q, want YYYY-MM-DD", from)
		}
	}
	if to != "" {
		if f.To, err = time.Parse(DateLayout, to); err != nil {
			return Filter{}, fmt.Errorf("invalid to date %q, want YYYY-MM-DD", to)
		}
	}
	if !f.From.IsZero() && !f.To.IsZero() && f.To.Before(f.From) {
		return Filter{}, fmt.Errorf("to date %s is before from date %s", to, from)
	}
	return f, nil
}

// IsZero reports whether the filter matches every activity
func (f Filter) IsZero() bool {
	return f.Type == "" && f.From.IsZero() && f.To.IsZero()
}

// Match проверяет одну активность. An unparsable start date fails any date bound.
func (f Filter) Match(a *models.ActivitySummary) bool {
	if f.Type != "" && a.Type != f.Type {
		return false
	}
	if f.From.IsZero() && f.To.IsZero() {
		return true
	}

	start, err := time.Parse(time.RFC3339, a.StartDate)
	if err != nil {
		return false
	}
	if !f.From.IsZero() && start.Before(f.From) {
		return false
	}
	// To включает весь день
	if !f.To.IsZero() && !start.Before(f.To.AddDate(0, 0, 1)) {
		return false
	}
	return true
}

// FilterActivities returns the activities matching f, order preserved
func FilterActivities(activities []models.ActivitySummary, f Filter) []models.ActivitySummary {
	if f.IsZero() {
		return activities
	}

	out := make([]models.ActivitySummary, 0, len(activities))
	for i := range activities {
		if f.Match(&activities[i]) {
			out = append(out, activities[i])
		}
	}
	return out
}

// ActivityTypes returns the distinct activity types, sorted
func ActivityTypes(activities []models.ActivitySummary) []string {
	seen := make(map[string]struct{})
	var types []string
	for _, a := range activities {
		if a.Type == "" {
			continue
		}
		if _, ok := seen[a.Type]; !ok {
			seen[a.Type] = struct{}{}
			types = append(types, a.Type)
		}
	}
	sort.Strings(types)
	return types
}

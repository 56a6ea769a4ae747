package data

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/iudanet/stravadash/internal/models"
)

// Period is the calendar window of a period summary
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
	PeriodAll   Period = "all"
)

// ErrUnknownPeriod is returned by ParsePeriod
var ErrUnknownPeriod = errors.New("unknown period")

const week = 7 * 24 * time.Hour

// ParsePeriod принимает week, month, year или all
func ParsePeriod(raw string) (Period, error) {
	switch p := Period(raw); p {
	case PeriodWeek, PeriodMonth, PeriodYear, PeriodAll:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q, use week, month, year or all", ErrUnknownPeriod, raw)
	}
}

// PeriodRange returns [start, end) of the period containing now shifted by offset
// periods (-1 is the previous one). Weeks start on Monday; all times are UTC.
// PeriodAll has no bounds and returns zero times.
func PeriodRange(p Period, offset int, now time.Time) (start, end time.Time) {
	now = now.UTC()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	switch p {
	case PeriodWeek:
		// Sunday = 0, сдвигаем к понедельнику
		back := (int(day.Weekday()) + 6) % 7
		start = day.AddDate(0, 0, -back+offset*7)
		return start, start.AddDate(0, 0, 7)
	case PeriodMonth:
		start = time.Date(now.Year(), now.Month()+time.Month(offset), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, 0)
	case PeriodYear:
		start = time.Date(now.Year()+offset, time.January, 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(1, 0, 0)
	default:
		return time.Time{}, time.Time{}
	}
}

func inRange(activities []models.ActivitySummary, start, end time.Time) []models.ActivitySummary {
	if start.IsZero() {
		return activities
	}
	var out []models.ActivitySummary
	for _, a := range activities {
		t, err := time.Parse(time.RFC3339, a.StartDate)
		if err != nil {
			continue
		}
		if !t.Before(start) && t.Before(end) {
			out = append(out, a)
		}
	}
	return out
}

// PeriodSummary totals the activities of one period and compares them with the
// period before it. The comparison is omitted for PeriodAll and when the previous
// period has no activities.
func PeriodSummary(activities []models.ActivitySummary, p Period, offset int, now time.Time) models.PeriodSummary {
	start, end := PeriodRange(p, offset, now)
	current := inRange(activities, start, end)

	out := models.PeriodSummary{
		Period:  string(p),
		Offset:  offset,
		Totals:  Summarize(current),
		Types:   TypeDistribution(current),
		Current: offset == 0 && p != PeriodAll,
	}
	if !start.IsZero() {
		out.Start = start.Format(DateLayout)
		out.End = end.AddDate(0, 0, -1).Format(DateLayout)
	}
	if len(current) > 0 {
		out.AvgDistanceKm = round1(totalDistance(current) / float64(len(current)) / 1000)
	}
	out.PerWeek = perWeek(current, p, start, end, now)

	if p == PeriodAll {
		return out
	}
	prevStart, prevEnd := PeriodRange(p, offset-1, now)
	previous := inRange(activities, prevStart, prevEnd)
	if len(previous) == 0 {
		return out
	}
	out.Comparison = compare(current, previous)
	return out
}

// perWeek — средняя частота активностей в неделю
func perWeek(activities []models.ActivitySummary, p Period, start, end, now time.Time) float64 {
	count := len(activities)
	if count == 0 {
		return 0
	}

	switch p {
	case PeriodWeek:
		return float64(count)
	case PeriodAll:
		var oldest time.Time
		for _, a := range activities {
			t, err := time.Parse(time.RFC3339, a.StartDate)
			if err == nil && (oldest.IsZero() || t.Before(oldest)) {
				oldest = t
			}
		}
		if oldest.IsZero() {
			return 0
		}
		start, end = oldest, now
	default:
		if now.Before(end) {
			end = now
		}
	}

	weeks := math.Max(1, math.Ceil(float64(end.Sub(start))/float64(week)))
	return round1(float64(count) / weeks)
}

// compare returns the change of each total in percent against previous
func compare(current, previous []models.ActivitySummary) *models.PeriodComparison {
	pct := func(c, p float64) int {
		if p == 0 {
			return 0
		}
		return int(math.Round((c - p) / p * 100))
	}
	avg := func(list []models.ActivitySummary) float64 {
		if len(list) == 0 {
			return 0
		}
		return totalDistance(list) / float64(len(list))
	}

	var curElev, prevElev float64
	var curTime, prevTime int64
	for _, a := range current {
		curElev += a.TotalElevationGain
		curTime += a.MovingTime
	}
	for _, a := range previous {
		prevElev += a.TotalElevationGain
		prevTime += a.MovingTime
	}

	return &models.PeriodComparison{
		Count:       pct(float64(len(current)), float64(len(previous))),
		Distance:    pct(totalDistance(current), totalDistance(previous)),
		Elevation:   pct(curElev, prevElev),
		MovingTime:  pct(float64(curTime), float64(prevTime)),
		AvgDistance: pct(avg(current), avg(previous)),
	}
}

// TypeDistribution counts activities per type, most frequent first, ties by name
func TypeDistribution(activities []models.ActivitySummary) []models.TypeCount {
	counts := make(map[string]int)
	for _, a := range activities {
		counts[a.Type]++
	}

	out := make([]models.TypeCount, 0, len(counts))
	for t, n := range counts {
		out = append(out, models.TypeCount{Type: t, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Type < out[j].Type
	})
	return out
}

func totalDistance(activities []models.ActivitySummary) float64 {
	var d float64
	for _, a := range activities {
		d += a.Distance
	}
	return d
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

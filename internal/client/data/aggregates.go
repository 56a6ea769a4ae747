package data

import (
	"math"
	"time"

	"github.com/iudanet/stravadash/internal/models"
)

// Summarize считает сводку: количество, км, метры набора, часы в движении
func Summarize(activities []models.ActivitySummary) models.Summary {
	var distance, elevation float64
	var moving int64

	for _, a := range activities {
		distance += a.Distance
		elevation += a.TotalElevationGain
		moving += a.MovingTime
	}

	return models.Summary{
		Count:       len(activities),
		DistanceKm:  int64(math.Round(distance / 1000)),
		ElevationM:  int64(math.Round(elevation)),
		MovingHours: math.Round(float64(moving)/3600*10) / 10,
	}
}

func isRun(a *models.ActivitySummary) bool {
	return a.Type == "Run" || a.Type == "TrailRun"
}

func isRide(a *models.ActivitySummary) bool {
	return a.Type == "Ride" || a.Type == "VirtualRide"
}

// best returns the activity with the largest metric; on ties the first one wins.
func best(activities []models.ActivitySummary, keep func(*models.ActivitySummary) bool, metric func(*models.ActivitySummary) float64) *models.ActivitySummary {
	var top *models.ActivitySummary
	for i := range activities {
		a := &activities[i]
		if keep != nil && !keep(a) {
			continue
		}
		if top == nil || metric(a) > metric(top) {
			top = a
		}
	}
	return top
}

func record(label, unit string, a *models.ActivitySummary, value float64) models.PersonalRecord {
	return models.PersonalRecord{
		Label:        label,
		Unit:         unit,
		Value:        value,
		ActivityName: a.Name,
		ActivityID:   a.ID,
		Date:         a.StartDate,
	}
}

// PersonalRecords derives all-time bests from the activities.
// Paces are estimated from the average speed of runs at least as long as the distance.
func PersonalRecords(activities []models.ActivitySummary) []models.PersonalRecord {
	if len(activities) == 0 {
		return nil
	}

	distance := func(a *models.ActivitySummary) float64 { return a.Distance }
	speed := func(a *models.ActivitySummary) float64 { return a.AverageSpeed }

	var records []models.PersonalRecord

	if run := best(activities, isRun, distance); run != nil {
		records = append(records, record("Longest run", "km", run, math.Round(run.Distance/100)/10))

		for _, target := range []struct {
			label  string
			meters float64
		}{
			{"Best 5K (estimated)", 5000},
			{"Best 10K (estimated)", 10000},
		} {
			fast := best(activities, func(a *models.ActivitySummary) bool {
				return isRun(a) && a.Distance >= target.meters && a.AverageSpeed > 0
			}, speed)
			if fast != nil {
				records = append(records, record(target.label, "s/km", fast, math.Round(1000/fast.AverageSpeed)))
			}
		}
	}

	if ride := best(activities, isRide, distance); ride != nil {
		records = append(records, record("Longest ride", "km", ride, math.Round(ride.Distance/100)/10))
	}

	climb := best(activities, nil, func(a *models.ActivitySummary) float64 { return a.TotalElevationGain })
	if climb.TotalElevationGain > 0 {
		records = append(records, record("Biggest climb", "m", climb, math.Round(climb.TotalElevationGain)))
	}

	longest := best(activities, nil, func(a *models.ActivitySummary) float64 { return float64(a.MovingTime) })
	records = append(records, record("Longest activity", "s", longest, float64(longest.MovingTime)))

	return records
}

// Progression groups activities by calendar month (UTC) from the month of the
// oldest activity up to the month of now. Months without activities are included.
func Progression(activities []models.ActivitySummary, now time.Time) []models.MonthlyTotals {
	type dated struct {
		a     *models.ActivitySummary
		start time.Time
	}

	items := make([]dated, 0, len(activities))
	var oldest time.Time
	for i := range activities {
		start, err := time.Parse(time.RFC3339, activities[i].StartDate)
		if err != nil {
			continue
		}
		start = start.UTC()
		items = append(items, dated{a: &activities[i], start: start})
		if oldest.IsZero() || start.Before(oldest) {
			oldest = start
		}
	}
	if len(items) == 0 {
		return nil
	}

	now = now.UTC()
	first := time.Date(oldest.Year(), oldest.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	if last.Before(first) {
		last = first
	}

	index := make(map[string]int)
	var months []models.MonthlyTotals
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		key := m.Format("2006-01")
		index[key] = len(months)
		months = append(months, models.MonthlyTotals{Month: key})
	}

	distances := make([]float64, len(months))
	for _, it := range items {
		i, ok := index[it.start.Format("2006-01")]
		if !ok {
			continue
		}
		months[i].Count++
		distances[i] += it.a.Distance
		if isRun(it.a) {
			months[i].RunMovingTime += it.a.MovingTime
			months[i].RunDistance += it.a.Distance
		}
	}
	for i := range months {
		months[i].DistanceKm = int64(math.Round(distances[i] / 1000))
	}

	return months
}

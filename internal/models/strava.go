package models

import "encoding/json"

// Athlete представляет профиль авторизованного атлета (GET /athlete)
type Athlete struct {
	Firstname             string  `json:"firstname"`
	Lastname              string  `json:"lastname"`
	Profile               string  `json:"profile"`                          // URL фото профиля
	ProfileMedium         string  `json:"profile_medium,omitempty"`         // фото среднего размера
	City                  string  `json:"city"`
	State                 string  `json:"state,omitempty"`
	Country               string  `json:"country"`
	Sex                   string  `json:"sex,omitempty"`                    // "M" или "F"
	CreatedAt             string  `json:"created_at,omitempty"`             // ISO 8601
	MeasurementPreference string  `json:"measurement_preference,omitempty"` // "meters" или "feet"
	ID                    int64   `json:"id"`
	Weight                float64 `json:"weight"` // кг
	FollowerCount         int     `json:"follower_count,omitempty"`
	FriendCount           int     `json:"friend_count,omitempty"`
	FTP                   int     `json:"ftp,omitempty"` // ватт
	Premium               bool    `json:"premium,omitempty"`
}

// FullName returns "Firstname Lastname".
func (a *Athlete) FullName() string {
	if a.Lastname == "" {
		return a.Firstname
	}
	return a.Firstname + " " + a.Lastname
}

// ActivityMap holds the encoded route of an activity.
// Polyline is only filled on the detail endpoint.
type ActivityMap struct {
	ID              string `json:"id"`
	SummaryPolyline string `json:"summary_polyline"`
	Polyline        string `json:"polyline,omitempty"`
}

// ActivitySummary представляет активность в списке (GET /athlete/activities)
type ActivitySummary struct {
	StartLatLng        []float64   `json:"start_latlng"` // [lat, lng] или null
	EndLatLng          []float64   `json:"end_latlng"`
	Map                ActivityMap `json:"map"`
	Name               string      `json:"name"`
	Type               string      `json:"type"`
	SportType          string      `json:"sport_type"`
	StartDate          string      `json:"start_date"` // ISO 8601
	GearID             string      `json:"gear_id,omitempty"`
	ID                 int64       `json:"id"`
	Distance           float64     `json:"distance"`             // метры
	MovingTime         int64       `json:"moving_time"`          // секунды
	ElapsedTime        int64       `json:"elapsed_time"`         // секунды
	TotalElevationGain float64     `json:"total_elevation_gain"` // метры
	AverageSpeed       float64     `json:"average_speed"`        // м/с
	MaxSpeed           float64     `json:"max_speed"`            // м/с
	AverageHeartrate   float64     `json:"average_heartrate,omitempty"`
	MaxHeartrate       float64     `json:"max_heartrate,omitempty"`
	AverageWatts       float64     `json:"average_watts,omitempty"`
	MaxWatts           float64     `json:"max_watts,omitempty"`
	Kilojoules         float64     `json:"kilojoules,omitempty"`
	AverageTemp        float64     `json:"average_temp,omitempty"` // °C
	SufferScore        float64     `json:"suffer_score,omitempty"`
	PRCount            int         `json:"pr_count,omitempty"`
	KudosCount         int         `json:"kudos_count,omitempty"`
	CommentCount       int         `json:"comment_count,omitempty"`
	AthleteCount       int         `json:"athlete_count,omitempty"`
	PhotoCount         int         `json:"photo_count,omitempty"`
	WorkoutType        int         `json:"workout_type,omitempty"` // 0=default, 1=race, 2=long run, 3=workout
	HasHeartrate       bool        `json:"has_heartrate,omitempty"`
	DeviceWatts        bool        `json:"device_watts,omitempty"`
	Trainer            bool        `json:"trainer,omitempty"`
	Commute            bool        `json:"commute,omitempty"`
}

// ActivityDetail представляет полную активность (GET /activities/{id})
type ActivityDetail struct {
	ActivitySummary
	Gear              *Gear           `json:"gear,omitempty"`
	Description       string          `json:"description"`
	DeviceName        string          `json:"device_name,omitempty"`
	SegmentEfforts    []SegmentEffort `json:"segment_efforts,omitempty"`
	SplitsMetric      []Split         `json:"splits_metric,omitempty"`
	BestEfforts       []BestEffort    `json:"best_efforts,omitempty"`
	Calories          float64         `json:"calories"`
	AverageCadence    float64         `json:"average_cadence,omitempty"`
	ElevHigh          float64         `json:"elev_high,omitempty"`
	ElevLow           float64         `json:"elev_low,omitempty"`
	PerceivedExertion float64         `json:"perceived_exertion,omitempty"` // 1-10
}

// Segment описывает сегмент Strava
type Segment struct {
	Name          string  `json:"name"`
	City          string  `json:"city,omitempty"`
	Country       string  `json:"country,omitempty"`
	ID            int64   `json:"id"`
	Distance      float64 `json:"distance"`
	AverageGrade  float64 `json:"average_grade"`
	MaximumGrade  float64 `json:"maximum_grade"`
	ElevationHigh float64 `json:"elevation_high"`
	ElevationLow  float64 `json:"elevation_low"`
	ClimbCategory int     `json:"climb_category"` // 0=NC, 1-4, 5=HC
}

// SegmentEffort is one pass over a segment within an activity.
type SegmentEffort struct {
	PRRank           *int    `json:"pr_rank,omitempty"`
	KOMRank          *int    `json:"kom_rank,omitempty"`
	Name             string  `json:"name"`
	Segment          Segment `json:"segment"`
	ID               int64   `json:"id"`
	ElapsedTime      int64   `json:"elapsed_time"`
	MovingTime       int64   `json:"moving_time"`
	Distance         float64 `json:"distance"`
	StartIndex       int     `json:"start_index"`
	EndIndex         int     `json:"end_index"`
	AverageHeartrate float64 `json:"average_heartrate,omitempty"`
	MaxHeartrate     float64 `json:"max_heartrate,omitempty"`
	AverageWatts     float64 `json:"average_watts,omitempty"`
}

// Split километровый сплит
type Split struct {
	Split               int     `json:"split"`
	Distance            float64 `json:"distance"`
	ElapsedTime         int64   `json:"elapsed_time"`
	MovingTime          int64   `json:"moving_time"`
	ElevationDifference float64 `json:"elevation_difference"`
	AverageSpeed        float64 `json:"average_speed"`
	AverageHeartrate    float64 `json:"average_heartrate,omitempty"`
	PaceZone            int     `json:"pace_zone,omitempty"`
}

// BestEffort лучший результат на дистанции (400m, 1k, 5k, ...)
type BestEffort struct {
	PRRank      *int    `json:"pr_rank,omitempty"`
	Name        string  `json:"name"`
	ID          int64   `json:"id"`
	ElapsedTime int64   `json:"elapsed_time"`
	MovingTime  int64   `json:"moving_time"`
	Distance    float64 `json:"distance"`
	StartIndex  int     `json:"start_index"`
	EndIndex    int     `json:"end_index"`
}

// Gear снаряжение (обувь, велосипед)
type Gear struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Distance float64 `json:"distance"`
	Primary  bool    `json:"primary"`
}

// Lap представляет круг активности (GET /activities/{id}/laps)
type Lap struct {
	LapIndex           int     `json:"lap_index"`
	Distance           float64 `json:"distance"`
	ElapsedTime        int64   `json:"elapsed_time"`
	MovingTime         int64   `json:"moving_time"`
	AverageSpeed       float64 `json:"average_speed"`
	MaxSpeed           float64 `json:"max_speed"`
	TotalElevationGain float64 `json:"total_elevation_gain"`
	AverageCadence     float64 `json:"average_cadence,omitempty"`
	AverageHeartrate   float64 `json:"average_heartrate,omitempty"`
	MaxHeartrate       float64 `json:"max_heartrate,omitempty"`
}

// ActivityStream is one data series of an activity (GET /activities/{id}/streams).
// Data is kept raw: latlng streams carry pairs, the others carry scalars.
type ActivityStream struct {
	Type         string          `json:"type"`
	SeriesType   string          `json:"series_type"`
	Resolution   string          `json:"resolution"`
	Data         json.RawMessage `json:"data"`
	OriginalSize int             `json:"original_size"`
}

// ActivityTotals сводные показатели по одному виду спорта
type ActivityTotals struct {
	Count         int     `json:"count"`
	Distance      float64 `json:"distance"`
	MovingTime    int64   `json:"moving_time"`
	ElapsedTime   int64   `json:"elapsed_time"`
	ElevationGain float64 `json:"elevation_gain"`
}

// AthleteStats представляет статистику атлета (GET /athletes/{id}/stats)
type AthleteStats struct {
	AllRunTotals     ActivityTotals `json:"all_run_totals"`
	AllRideTotals    ActivityTotals `json:"all_ride_totals"`
	AllSwimTotals    ActivityTotals `json:"all_swim_totals"`
	RecentRunTotals  ActivityTotals `json:"recent_run_totals"`
	RecentRideTotals ActivityTotals `json:"recent_ride_totals"`
	RecentSwimTotals ActivityTotals `json:"recent_swim_totals"`
	YTDRunTotals     ActivityTotals `json:"ytd_run_totals"`
	YTDRideTotals    ActivityTotals `json:"ytd_ride_totals"`
	YTDSwimTotals    ActivityTotals `json:"ytd_swim_totals"`
}

// PersonalRecord is a best value derived from the loaded activities.
type PersonalRecord struct {
	Label        string  `json:"label"`
	Unit         string  `json:"unit"` // km, m, s, s/km
	ActivityName string  `json:"activity_name"`
	Date         string  `json:"date"` // start_date активности
	ActivityID   int64   `json:"activity_id"`
	Value        float64 `json:"value"`
}

// Summary сводка по загруженным активностям
type Summary struct {
	Count       int     `json:"count"`
	DistanceKm  int64   `json:"distance_km"`  // округлено до км
	ElevationM  int64   `json:"elevation_m"`  // округлено до метра
	MovingHours float64 `json:"moving_hours"` // один знак после запятой
}

// MonthlyTotals is one point of the progression curve.
type MonthlyTotals struct {
	Month         string  `json:"month"` // YYYY-MM
	Count         int     `json:"count"`
	DistanceKm    int64   `json:"distance_km"`
	RunMovingTime int64   `json:"run_moving_time"` // секунды
	RunDistance   float64 `json:"run_distance"`    // метры
}

// TypeCount is the number of activities of one type
type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// PeriodComparison holds changes against the previous period, in percent
type PeriodComparison struct {
	Count       int `json:"count"`
	Distance    int `json:"distance"`
	Elevation   int `json:"elevation"`
	MovingTime  int `json:"moving_time"`
	AvgDistance int `json:"avg_distance"`
}

// PeriodSummary totals one calendar period (week, month, year or all).
type PeriodSummary struct {
	Comparison    *PeriodComparison `json:"comparison,omitempty"` // nil без предыдущего периода
	Period        string            `json:"period"`
	Start         string            `json:"start,omitempty"` // YYYY-MM-DD, пусто для all
	End           string            `json:"end,omitempty"`   // последний день периода
	Types         []TypeCount       `json:"types"`
	Totals        Summary           `json:"totals"`
	Offset        int               `json:"offset"`
	AvgDistanceKm float64           `json:"avg_distance_km"`
	PerWeek       float64           `json:"per_week"`
	Current       bool              `json:"current"` // период еще идет, данные неполные
}

package models

import "time"

// Stats holds the dashboard status counts.
type Stats struct {
	Total                int `bson:"total" json:"total"`
	Approved             int `bson:"approved" json:"approved"`
	Rejected             int `bson:"rejected" json:"rejected"`
	ConditionalOrPending int `bson:"conditional_or_pending" json:"conditionalOrPending"`
}

// TrendPoint is one plotted value of a trend chart.
type TrendPoint struct {
	Label     string  `bson:"label" json:"label"`
	Value     float64 `bson:"value" json:"value"`
	Product   string  `bson:"product" json:"product"`
	Parameter string  `bson:"parameter" json:"parameter"`
}

// Dashboard aggregates everything the overview page shows.
type Dashboard struct {
	Stats   Stats        `json:"stats"`
	Density []TrendPoint `json:"densityTrend"`
	Purity  []TrendPoint `json:"purityTrend"`
}

// DailySummary is the dashboard snapshot archived once a day.
type DailySummary struct {
	Date          time.Time   `bson:"date" json:"date"`
	Stats         Stats       `bson:"stats" json:"stats"`
	RecordsToday  int         `bson:"records_today" json:"recordsToday"`
	LatestDensity *TrendPoint `bson:"latest_density,omitempty" json:"latestDensity,omitempty"`
	LatestPurity  *TrendPoint `bson:"latest_purity,omitempty" json:"latestPurity,omitempty"`
	CreatedAt     time.Time   `bson:"created_at" json:"createdAt"`
}

package database

import "github.com/edgard/adsbot/internal/domain/model"

// AdFilter selects a newest-first slice of ads.
type AdFilter struct {
	// Category restricts results when non-empty.
	Category model.Category
	Limit    int
	Offset   int
}

// Stats is a snapshot of table sizes for the admin report.
type Stats struct {
	Users        int `db:"users"`
	LocatedUsers int `db:"located_users"`
	Ads          int `db:"ads"`
}

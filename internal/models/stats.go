package models

import "time"

// StatCount is the shape shared by the /stats counters.
type StatCount struct {
	Total int `json:"total"`
}

// RecentActivity is one row of the admin dashboard activity feed.
type RecentActivity struct {
	Kind      string    `json:"type"` // "post", "comment" or "user"
	Actor     string    `json:"actor"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

// CategoryStat is the per-topic post count used on the topics page and
// the admin dashboard.
type CategoryStat struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

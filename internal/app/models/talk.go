package models

import "time"

// TalkStatus is the advisory lifecycle state of a talk. It is recomputed
// from the talk date against the wall clock at creation time and is not
// authoritative.
type TalkStatus string

const (
	TalkUpcoming  TalkStatus = "upcoming"
	TalkCompleted TalkStatus = "completed"
	TalkCancelled TalkStatus = "cancelled"
)

// Talk is a scheduled public event (seminar, conference talk, lecture).
type Talk struct {
	ID               int64      `json:"id" db:"id"`
	Title            string     `json:"title" db:"title"`
	Description      string     `json:"description" db:"description"`
	Date             string     `json:"date" db:"talk_date" example:"2025-03-14"` // ISO date, no timezone semantics
	Time             string     `json:"time" db:"talk_time" example:"14:30"`
	Venue            string     `json:"venue" db:"venue"`
	RegistrationLink *string    `json:"registrationLink,omitempty" db:"registration_link"`
	FlyerURL         *string    `json:"flyerUrl,omitempty" db:"flyer_url"` // Media host reference (nullable)
	Status           TalkStatus `json:"status" db:"status" example:"upcoming"`
	CreatedAt        time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time  `json:"updatedAt" db:"updated_at"`
}

// ComputeTalkStatus derives the advisory status from the talk date compared
// to today. Dates that fail to parse are treated as upcoming.
func ComputeTalkStatus(date string, now time.Time) TalkStatus {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return TalkUpcoming
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if d.Before(today) {
		return TalkCompleted
	}
	return TalkUpcoming
}

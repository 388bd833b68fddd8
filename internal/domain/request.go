package domain

import "time"

// TimeFlex expresses how flexible a passenger is around the requested time.
type TimeFlex string

const (
	TimeFlex30Min     TimeFlex = "flex_30m"
	TimeFlex1Hour     TimeFlex = "flex_1h"
	TimeFlexMorning   TimeFlex = "morning"
	TimeFlexAfternoon TimeFlex = "afternoon"
)

// KnownTimeFlex reports whether the value is a member of the fixed time
// flexibility set. Unlike ride types, unknown values are a hard validation
// failure.
func KnownTimeFlex(value string) bool {
	switch TimeFlex(value) {
	case TimeFlex30Min, TimeFlex1Hour, TimeFlexMorning, TimeFlexAfternoon:
		return true
	default:
		return false
	}
}

// RequestStatus represents the lifecycle status of a ride request.
type RequestStatus string

const (
	RequestStatusOpen   RequestStatus = "open"
	RequestStatusClosed RequestStatus = "closed"
)

// RideRequest represents a passenger's posted need for transportation.
type RideRequest struct {
	ID           int64
	Passenger    string
	Phone        string
	FromLocation string
	ToLocation   string
	Date         string
	Time         string
	TimeFlex     string
	PeopleCount  int
	Note         string
	FromLat      *float64
	FromLng      *float64
	ToLat        *float64
	ToLng        *float64
	Status       RequestStatus
	IsActive     bool
	IsFlagged    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

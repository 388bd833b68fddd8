package domain

import "time"

// RideType categorizes the purpose of an offered ride.
type RideType string

const (
	RideTypeWork       RideType = "work"
	RideTypeSchool     RideType = "school"
	RideTypeHealthcare RideType = "healthcare"
	RideTypeOther      RideType = "other"
)

// KnownRideType reports whether the value is one of the known ride types.
// Unknown values are stored as-is and only fall back to "other" for display.
func KnownRideType(value string) bool {
	switch RideType(value) {
	case RideTypeWork, RideTypeSchool, RideTypeHealthcare, RideTypeOther:
		return true
	default:
		return false
	}
}

// Ride represents a driver's offered transportation slot.
// Date is an ISO calendar date (YYYY-MM-DD) and Time a local time-of-day
// string; ISO dates compare lexicographically, which the listing
// predicates rely on.
type Ride struct {
	ID           int64
	Driver       string
	Phone        string
	FromLocation string
	ToLocation   string
	Date         string
	Time         string
	Seats        int
	RideType     string
	FromLat      *float64
	FromLng      *float64
	ToLat        *float64
	ToLng        *float64
	IsActive     bool
	IsFlagged    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

package handler

import (
	"time"

	"github.com/dmedarov/villageride/internal/service"
)

// timestampFormat matches the stored UTC second-precision representation.
const timestampFormat = "2006-01-02T15:04:05"

// RideResponse is the serialized form of one board ride.
type RideResponse struct {
	ID            int64    `json:"id"`
	Driver        string   `json:"driver"`
	Phone         string   `json:"phone"`
	FromLocation  string   `json:"from_location"`
	ToLocation    string   `json:"to_location"`
	Date          string   `json:"date"`
	Time          string   `json:"time"`
	Seats         int      `json:"seats"`
	RideType      string   `json:"ride_type"`
	RideTypeLabel string   `json:"ride_type_label"`
	FromLat       *float64 `json:"from_lat"`
	FromLng       *float64 `json:"from_lng"`
	ToLat         *float64 `json:"to_lat"`
	ToLng         *float64 `json:"to_lng"`
	IsActive      bool     `json:"is_active"`
	IsFlagged     bool     `json:"is_flagged"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
}

// RequestResponse is the serialized form of one board ride request.
type RequestResponse struct {
	ID            int64    `json:"id"`
	Passenger     string   `json:"passenger"`
	Phone         string   `json:"phone"`
	FromLocation  string   `json:"from_location"`
	ToLocation    string   `json:"to_location"`
	Date          string   `json:"date"`
	Time          string   `json:"time"`
	TimeFlex      string   `json:"time_flex"`
	TimeFlexLabel string   `json:"time_flex_label"`
	PeopleCount   int      `json:"people_count"`
	Note          string   `json:"note,omitempty"`
	FromLat       *float64 `json:"from_lat"`
	FromLng       *float64 `json:"from_lng"`
	ToLat         *float64 `json:"to_lat"`
	ToLng         *float64 `json:"to_lng"`
	Status        string   `json:"status"`
	StatusLabel   string   `json:"status_label"`
	IsActive      bool     `json:"is_active"`
	IsFlagged     bool     `json:"is_flagged"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
}

func toRideResponse(l service.RideListing) RideResponse {
	return RideResponse{
		ID:            l.ID,
		Driver:        l.Driver,
		Phone:         l.Phone,
		FromLocation:  l.FromLocation,
		ToLocation:    l.ToLocation,
		Date:          l.Date,
		Time:          l.Time,
		Seats:         l.Seats,
		RideType:      l.RideType,
		RideTypeLabel: l.RideTypeLabel,
		FromLat:       l.FromLat,
		FromLng:       l.FromLng,
		ToLat:         l.ToLat,
		ToLng:         l.ToLng,
		IsActive:      l.IsActive,
		IsFlagged:     l.IsFlagged,
		CreatedAt:     formatTimestamp(l.CreatedAt),
		UpdatedAt:     formatTimestamp(l.UpdatedAt),
	}
}

func toRideResponses(listings []service.RideListing) []RideResponse {
	out := make([]RideResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, toRideResponse(l))
	}
	return out
}

func toRequestResponse(l service.RequestListing) RequestResponse {
	return RequestResponse{
		ID:            l.ID,
		Passenger:     l.Passenger,
		Phone:         l.Phone,
		FromLocation:  l.FromLocation,
		ToLocation:    l.ToLocation,
		Date:          l.Date,
		Time:          l.Time,
		TimeFlex:      l.TimeFlex,
		TimeFlexLabel: l.TimeFlexLabel,
		PeopleCount:   l.PeopleCount,
		Note:          l.Note,
		FromLat:       l.FromLat,
		FromLng:       l.FromLng,
		ToLat:         l.ToLat,
		ToLng:         l.ToLng,
		Status:        string(l.Status),
		StatusLabel:   l.StatusLabel,
		IsActive:      l.IsActive,
		IsFlagged:     l.IsFlagged,
		CreatedAt:     formatTimestamp(l.CreatedAt),
		UpdatedAt:     formatTimestamp(l.UpdatedAt),
	}
}

func toRequestResponses(listings []service.RequestListing) []RequestResponse {
	out := make([]RequestResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, toRequestResponse(l))
	}
	return out
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampFormat)
}

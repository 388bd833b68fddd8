package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/dmedarov/villageride/internal/domain"
)

// dateLayout is the calendar date format accepted on submissions.
const dateLayout = "2006-01-02"

// RideSubmission is the raw input for offering a ride. All fields arrive as
// strings regardless of the request encoding; the boundary layer resolves
// alias keys (offer_from_lat etc.) before handing the value here.
type RideSubmission struct {
	Driver       string
	Phone        string
	FromLocation string
	ToLocation   string
	Date         string
	Time         string
	Seats        string
	RideType     string
	FromLat      string
	FromLng      string
	ToLat        string
	ToLng        string
}

// RideRequestSubmission is the raw input for requesting a ride.
type RideRequestSubmission struct {
	Passenger    string
	Phone        string
	FromLocation string
	ToLocation   string
	Date         string
	Time         string
	TimeFlex     string
	PeopleCount  string
	Note         string
	FromLat      string
	FromLng      string
	ToLat        string
	ToLng        string
}

// ValidateRideSubmission checks a proposed ride against the field rules and
// returns a validated record or the accumulated error set. Pure function,
// no side effects.
func ValidateRideSubmission(in RideSubmission) (*domain.Ride, FieldErrors) {
	errs := FieldErrors{}

	driver := strings.TrimSpace(in.Driver)
	phone := strings.TrimSpace(in.Phone)
	fromLocation := strings.TrimSpace(in.FromLocation)
	toLocation := strings.TrimSpace(in.ToLocation)
	date := strings.TrimSpace(in.Date)
	timeOfDay := strings.TrimSpace(in.Time)
	rideType := strings.TrimSpace(in.RideType)

	if driver == "" {
		errs.Add("driver", "Моля, въведете име на шофьора.")
	}
	if phone == "" {
		errs.Add("phone", "Моля, въведете телефон.")
	}
	if fromLocation == "" {
		errs.Add("from_location", "Моля, въведете място на тръгване.")
	}
	if toLocation == "" {
		errs.Add("to_location", "Моля, въведете място на пристигане.")
	}
	validateDate(date, errs)
	if timeOfDay == "" {
		errs.Add("time", "Моля, изберете час.")
	}

	seats := parseBoundedInt(in.Seats, 1, 8, "seats", "Броят места трябва да е между 1 и 8.", errs)

	if rideType == "" {
		rideType = string(domain.RideTypeOther)
	}

	fromLat := parseCoordinate(in.FromLat, "from_lat", errs)
	fromLng := parseCoordinate(in.FromLng, "from_lng", errs)
	toLat := parseCoordinate(in.ToLat, "to_lat", errs)
	toLng := parseCoordinate(in.ToLng, "to_lng", errs)

	if len(errs) > 0 {
		return nil, errs
	}

	return &domain.Ride{
		Driver:       driver,
		Phone:        phone,
		FromLocation: fromLocation,
		ToLocation:   toLocation,
		Date:         date,
		Time:         timeOfDay,
		Seats:        seats,
		RideType:     rideType,
		FromLat:      fromLat,
		FromLng:      fromLng,
		ToLat:        toLat,
		ToLng:        toLng,
	}, nil
}

// ValidateRideRequestSubmission checks a proposed ride request against the
// field rules and returns a validated record or the accumulated error set.
func ValidateRideRequestSubmission(in RideRequestSubmission) (*domain.RideRequest, FieldErrors) {
	errs := FieldErrors{}

	passenger := strings.TrimSpace(in.Passenger)
	phone := strings.TrimSpace(in.Phone)
	fromLocation := strings.TrimSpace(in.FromLocation)
	toLocation := strings.TrimSpace(in.ToLocation)
	date := strings.TrimSpace(in.Date)
	timeOfDay := strings.TrimSpace(in.Time)
	timeFlex := strings.TrimSpace(in.TimeFlex)
	note := strings.TrimSpace(in.Note)

	if passenger == "" {
		errs.Add("passenger", "Моля, въведете име на пътника.")
	}
	if phone == "" {
		errs.Add("phone", "Моля, въведете телефон.")
	}
	if fromLocation == "" {
		errs.Add("from_location", "Моля, въведете място на тръгване.")
	}
	if toLocation == "" {
		errs.Add("to_location", "Моля, въведете място на пристигане.")
	}
	validateDate(date, errs)
	if timeOfDay == "" {
		errs.Add("time", "Моля, изберете час.")
	}
	if !domain.KnownTimeFlex(timeFlex) {
		errs.Add("time_flex", "Моля, изберете валидна гъвкавост на времето.")
	}

	peopleCount := parseBoundedInt(in.PeopleCount, 1, 4, "people_count", "Броят хора трябва да е между 1 и 4.", errs)

	fromLat := parseCoordinate(in.FromLat, "from_lat", errs)
	fromLng := parseCoordinate(in.FromLng, "from_lng", errs)
	toLat := parseCoordinate(in.ToLat, "to_lat", errs)
	toLng := parseCoordinate(in.ToLng, "to_lng", errs)

	if len(errs) > 0 {
		return nil, errs
	}

	return &domain.RideRequest{
		Passenger:    passenger,
		Phone:        phone,
		FromLocation: fromLocation,
		ToLocation:   toLocation,
		Date:         date,
		Time:         timeOfDay,
		TimeFlex:     timeFlex,
		PeopleCount:  peopleCount,
		Note:         note,
		FromLat:      fromLat,
		FromLng:      fromLng,
		ToLat:        toLat,
		ToLng:        toLng,
	}, nil
}

// validateDate checks presence, format and the not-in-the-past rule. The
// past-date rule applies at validation time only; stored rows are never
// re-checked.
func validateDate(date string, errs FieldErrors) {
	if date == "" {
		errs.Add("date", "Моля, изберете дата.")
		return
	}
	d, err := time.ParseInLocation(dateLayout, date, time.UTC)
	if err != nil {
		errs.Add("date", "Невалиден формат на дата.")
		return
	}
	if d.Format(dateLayout) < Today() {
		errs.Add("date", "Датата не може да е в миналото.")
	}
}

// parseBoundedInt parses an integer field with an inclusive range. An
// absent value defaults to the lower bound; a malformed or out-of-range
// value yields a field error, never a crash.
func parseBoundedInt(value string, low, high int, field, message string, errs FieldErrors) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return low
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < low || n > high {
		errs.Add(field, message)
		return low
	}
	return n
}

// parseCoordinate parses an optional latitude/longitude value. Empty means
// absent. A malformed value is reported as a field error rather than
// propagating as a conversion fault.
func parseCoordinate(value, field string, errs FieldErrors) *float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		errs.Add(field, "Невалидна координата.")
		return nil
	}
	return &f
}

// Today returns the current UTC calendar date in ISO format.
func Today() string {
	return time.Now().UTC().Format(dateLayout)
}

package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dmedarov/villageride/internal/middleware"
	"github.com/dmedarov/villageride/internal/service"
)

// SubmissionHandler handles the two public submission endpoints. Both JSON
// and form-encoded bodies are accepted; content-type dispatch feeds both
// encodings into the same validation path.
type SubmissionHandler struct {
	submissionService *service.SubmissionService
}

// NewSubmissionHandler creates a new SubmissionHandler.
func NewSubmissionHandler(submissionService *service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService}
}

// OfferRide handles POST /offer_ride
func (h *SubmissionHandler) OfferRide(c *gin.Context) {
	values, err := decodeSubmission(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	ride, err := h.submissionService.OfferRide(c.Request.Context(), service.RideSubmission{
		Driver:       values.get("driver"),
		Phone:        values.get("phone"),
		FromLocation: values.get("from_location"),
		ToLocation:   values.get("to_location"),
		Date:         values.get("date"),
		Time:         values.get("time"),
		Seats:        values.get("seats"),
		RideType:     values.get("ride_type"),
		FromLat:      values.first("from_lat", "offer_from_lat"),
		FromLng:      values.first("from_lng", "offer_from_lng"),
		ToLat:        values.first("to_lat", "offer_to_lat"),
		ToLng:        values.first("to_lng", "offer_to_lng"),
	}, middleware.AdminUsername(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Превозът е предложен успешно.",
		"id":      ride.ID,
	})
}

// RequestRide handles POST /request_ride
func (h *SubmissionHandler) RequestRide(c *gin.Context) {
	values, err := decodeSubmission(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	req, err := h.submissionService.RequestRide(c.Request.Context(), service.RideRequestSubmission{
		Passenger:    values.get("passenger"),
		Phone:        values.get("phone"),
		FromLocation: values.get("from_location"),
		ToLocation:   values.get("to_location"),
		Date:         values.get("date"),
		Time:         values.get("time"),
		TimeFlex:     values.get("time_flex"),
		PeopleCount:  values.get("people_count"),
		Note:         values.get("note"),
		FromLat:      values.first("from_lat", "request_from_lat"),
		FromLng:      values.first("from_lng", "request_from_lng"),
		ToLat:        values.first("to_lat", "request_to_lat"),
		ToLng:        values.first("to_lng", "request_to_lng"),
	}, middleware.AdminUsername(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Заявката за превоз е публикувана успешно.",
		"id":      req.ID,
	})
}

// submissionValues is a flat string view over a decoded request body.
type submissionValues map[string]string

func (v submissionValues) get(key string) string {
	return v[key]
}

// first returns the value under the generic key, falling back to the
// context-specific alias.
func (v submissionValues) first(key, alias string) string {
	if s := v[key]; s != "" {
		return s
	}
	return v[alias]
}

// decodeSubmission reads the request body as JSON or form fields depending
// on the declared content type.
func decodeSubmission(c *gin.Context) (submissionValues, error) {
	if strings.HasPrefix(c.ContentType(), "application/json") {
		return decodeJSONSubmission(c)
	}

	if err := c.Request.ParseForm(); err != nil {
		return nil, err
	}
	values := submissionValues{}
	for key := range c.Request.PostForm {
		values[key] = c.Request.PostForm.Get(key)
	}
	return values, nil
}

// decodeJSONSubmission flattens a JSON object into string values. Numbers
// keep their literal form so the validation rules see the same input a
// form submission would produce.
func decodeJSONSubmission(c *gin.Context) (submissionValues, error) {
	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()

	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		return nil, err
	}

	values := submissionValues{}
	for key, raw := range body {
		switch v := raw.(type) {
		case nil:
			values[key] = ""
		case string:
			values[key] = v
		case json.Number:
			values[key] = v.String()
		case bool:
			values[key] = fmt.Sprintf("%t", v)
		default:
			values[key] = fmt.Sprint(v)
		}
	}
	return values, nil
}

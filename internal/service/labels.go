package service

// Display labels for ride types and time flexibility values. Presentation
// enrichment only; the raw enum values stay authoritative in storage.

var rideTypeLabels = map[string]string{
	"work":       "За работа",
	"school":     "За училище",
	"healthcare": "За здраве/болница",
	"other":      "Друг превоз",
}

// defaultRideTypeLabel is used for unknown ride type values.
const defaultRideTypeLabel = "Друг превоз"

var timeFlexLabels = map[string]string{
	"flex_30m":  "± 30 мин",
	"flex_1h":   "± 1 час",
	"morning":   "По-скоро сутрин",
	"afternoon": "По-скоро следобед",
}

// RideTypeLabel maps a ride type to its display label.
func RideTypeLabel(rideType string) string {
	if label, ok := rideTypeLabels[rideType]; ok {
		return label
	}
	return defaultRideTypeLabel
}

// TimeFlexLabel maps a time flexibility value to its display label.
// Unknown values map to an empty string.
func TimeFlexLabel(timeFlex string) string {
	return timeFlexLabels[timeFlex]
}

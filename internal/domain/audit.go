package domain

import "time"

// Audit actions recorded after mutating operations.
const (
	AuditActionOfferRide   = "offer_ride"
	AuditActionRequestRide = "request_ride"
	AuditActionAdminLogin  = "admin_login"
)

// AuditEntry is one row in the audit log. Exactly one of RideID/RequestID
// is set for record-scoped actions; AdminUser is empty for public
// submissions.
type AuditEntry struct {
	ID        int64
	Timestamp time.Time
	Action    string
	RideID    *int64
	RequestID *int64
	AdminUser string
}

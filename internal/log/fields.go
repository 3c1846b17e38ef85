package log

// Canonical field name constants for structured logging.
const (
	FieldRequestID = "request_id"
	FieldEntryID   = "entry_id"
	FieldPartnerID = "partner_id"
	FieldBaseURL   = "base_url"
	FieldService   = "service"
	FieldAction    = "action"
	FieldStatus    = "status"
)

package log

// Canonical field names for structured logging.
const (
	FieldService   = "service"
	FieldComponent = "component"

	FieldSessionID = "session_id"
	FieldTurnID    = "turn_id"
	FieldTurnKind  = "turn_kind"
	FieldSenderID  = "sender_id"

	FieldBaseURL    = "base_url"
	FieldReason     = "reason"
	FieldDurationMS = "duration_ms"
	FieldEntries    = "entries"
	FieldOutcome    = "outcome"
)

package dto

// Error codes surfaced to clients alongside HTTP status.
const (
	CodeValidation       = "validation_failed"
	CodeSelfTarget       = "self_target"
	CodeDuplicatePending = "duplicate_pending"
	CodeNotFound         = "not_found"
	CodeInvalidState     = "invalid_state"
	CodeForbidden        = "forbidden"
	CodeAccountBlocked   = "account_blocked"
	CodeInternal         = "internal_error"
)

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}

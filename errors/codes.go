package errors

// ErrorCode is the application-level error code returned in API responses
type ErrorCode int

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	// General
	ErrorCode_INTERNAL          ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT  ErrorCode = 1001
	ErrorCode_NOT_FOUND         ErrorCode = 1002
	ErrorCode_ALREADY_EXISTS    ErrorCode = 1003
	ErrorCode_PERMISSION_DENIED ErrorCode = 1004
	ErrorCode_UNAUTHENTICATED   ErrorCode = 1005
	ErrorCode_FORBIDDEN         ErrorCode = 1006
	ErrorCode_INVALID_PAYLOAD   ErrorCode = 1007
	ErrorCode_CONFLICT          ErrorCode = 1008

	// Authentication
	ErrorCode_AUTH_INVALID_TOKEN     ErrorCode = 2000
	ErrorCode_AUTH_TOKEN_EXPIRED     ErrorCode = 2001
	ErrorCode_AUTH_INVALID_SIGNATURE ErrorCode = 2002

	// Entities
	ErrorCode_ENTITY_NOT_FOUND      ErrorCode = 3000
	ErrorCode_ENTITY_NAME_CONFLICT  ErrorCode = 3001
	ErrorCode_ENTITY_TYPE_NOT_FOUND ErrorCode = 3002
	ErrorCode_ENTITY_TYPE_IN_USE    ErrorCode = 3003
	ErrorCode_ENTITY_TYPE_SYSTEM    ErrorCode = 3004
	ErrorCode_ENTITY_MERGE_FAILED   ErrorCode = 3005
	ErrorCode_ENTITY_MERGE_REJECTED ErrorCode = 3006

	// Meetings
	ErrorCode_MEETING_NOT_FOUND      ErrorCode = 4000
	ErrorCode_MEETING_TYPE_NOT_FOUND ErrorCode = 4001
	ErrorCode_MEETING_TYPE_IN_USE    ErrorCode = 4002
	ErrorCode_MEETING_TYPE_SYSTEM    ErrorCode = 4003
	ErrorCode_ACTION_ITEM_NOT_FOUND  ErrorCode = 4004
	ErrorCode_PROCESSING_FAILED      ErrorCode = 4005

	// AI
	ErrorCode_AI_SERVICE_UNAVAILABLE ErrorCode = 5000
	ErrorCode_AI_QUOTA_EXCEEDED      ErrorCode = 5001
	ErrorCode_AI_GENERATION_FAILED   ErrorCode = 5002

	// Integrations
	ErrorCode_INTEGRATION_STORAGE_FAILED ErrorCode = 6000
	ErrorCode_INTEGRATION_CACHE_FAILED   ErrorCode = 6001

	// Database
	ErrorCode_DB_CONNECTION_FAILED    ErrorCode = 7000
	ErrorCode_DB_QUERY_FAILED         ErrorCode = 7001
	ErrorCode_DB_TRANSACTION_FAILED   ErrorCode = 7002
	ErrorCode_DB_CONSTRAINT_VIOLATION ErrorCode = 7003
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                    "HTTP_OK",
	ErrorCode_INTERNAL:                   "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:           "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                  "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:             "ALREADY_EXISTS",
	ErrorCode_PERMISSION_DENIED:          "PERMISSION_DENIED",
	ErrorCode_UNAUTHENTICATED:            "UNAUTHENTICATED",
	ErrorCode_FORBIDDEN:                  "FORBIDDEN",
	ErrorCode_INVALID_PAYLOAD:            "INVALID_PAYLOAD",
	ErrorCode_CONFLICT:                   "CONFLICT",
	ErrorCode_AUTH_INVALID_TOKEN:         "AUTH_INVALID_TOKEN",
	ErrorCode_AUTH_TOKEN_EXPIRED:         "AUTH_TOKEN_EXPIRED",
	ErrorCode_AUTH_INVALID_SIGNATURE:     "AUTH_INVALID_SIGNATURE",
	ErrorCode_ENTITY_NOT_FOUND:           "ENTITY_NOT_FOUND",
	ErrorCode_ENTITY_NAME_CONFLICT:       "ENTITY_NAME_CONFLICT",
	ErrorCode_ENTITY_TYPE_NOT_FOUND:      "ENTITY_TYPE_NOT_FOUND",
	ErrorCode_ENTITY_TYPE_IN_USE:         "ENTITY_TYPE_IN_USE",
	ErrorCode_ENTITY_TYPE_SYSTEM:         "ENTITY_TYPE_SYSTEM",
	ErrorCode_ENTITY_MERGE_FAILED:        "ENTITY_MERGE_FAILED",
	ErrorCode_ENTITY_MERGE_REJECTED:      "ENTITY_MERGE_REJECTED",
	ErrorCode_MEETING_NOT_FOUND:          "MEETING_NOT_FOUND",
	ErrorCode_MEETING_TYPE_NOT_FOUND:     "MEETING_TYPE_NOT_FOUND",
	ErrorCode_MEETING_TYPE_IN_USE:        "MEETING_TYPE_IN_USE",
	ErrorCode_MEETING_TYPE_SYSTEM:        "MEETING_TYPE_SYSTEM",
	ErrorCode_ACTION_ITEM_NOT_FOUND:      "ACTION_ITEM_NOT_FOUND",
	ErrorCode_PROCESSING_FAILED:          "PROCESSING_FAILED",
	ErrorCode_AI_SERVICE_UNAVAILABLE:     "AI_SERVICE_UNAVAILABLE",
	ErrorCode_AI_QUOTA_EXCEEDED:          "AI_QUOTA_EXCEEDED",
	ErrorCode_AI_GENERATION_FAILED:       "AI_GENERATION_FAILED",
	ErrorCode_INTEGRATION_STORAGE_FAILED: "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:   "INTEGRATION_CACHE_FAILED",
	ErrorCode_DB_CONNECTION_FAILED:       "DB_CONNECTION_FAILED",
	ErrorCode_DB_QUERY_FAILED:            "DB_QUERY_FAILED",
	ErrorCode_DB_TRANSACTION_FAILED:      "DB_TRANSACTION_FAILED",
	ErrorCode_DB_CONSTRAINT_VIOLATION:    "DB_CONSTRAINT_VIOLATION",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}

package errors

// ErrorCode classifies a failure for reporting.
// Error codes are string-based for debuggability and natural log output.
type ErrorCode string

const (
	// Validation errors.

	// CodeInvalidInput indicates missing or malformed arguments, paths, buckets or keys.
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// Resource errors.

	// CodeNotFound indicates the target bucket does not exist.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// Permission errors.

	// CodeUnauthorized indicates the credentials were rejected.
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"

	// CodeForbidden indicates the credentials lack permission for the operation.
	CodeForbidden ErrorCode = "FORBIDDEN"

	// Infrastructure errors.

	// CodeTimeout indicates an operation exceeded its time limit.
	CodeTimeout ErrorCode = "TIMEOUT"

	// CodeRateLimit indicates the object store throttled the request.
	CodeRateLimit ErrorCode = "RATE_LIMIT_EXCEEDED"

	// CodeCanceled indicates the run was canceled by the caller.
	CodeCanceled ErrorCode = "CANCELED"

	// Execution errors.

	// CodeUploadFailed indicates a PUT failed for a reason without a more specific code.
	CodeUploadFailed ErrorCode = "UPLOAD_FAILED"

	// CodeUnknown indicates an unknown or unclassified error occurred.
	CodeUnknown ErrorCode = "UNKNOWN"
)

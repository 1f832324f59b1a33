package executor

// Execution error codes. These surface in ActionResult metadata so callers
// can branch without parsing messages.
const (
	CodePermissionDenied       = "PERMISSION_DENIED"
	CodeMissingParameter       = "MISSING_PARAMETER"
	CodeInvalidType            = "INVALID_TYPE"
	CodeInvalidValue           = "INVALID_VALUE"
	CodeValueTooLow            = "VALUE_TOO_LOW"
	CodeValueTooHigh           = "VALUE_TOO_HIGH"
	CodeInvalidFormat          = "INVALID_FORMAT"
	CodeCustomValidationFailed = "CUSTOM_VALIDATION_FAILED"
	CodeValidationFailed       = "VALIDATION_FAILED"
	CodeNoHandler              = "NO_HANDLER"
)

// ExecutionError carries a stable code and structured details alongside the
// human-readable message.
type ExecutionError struct {
	Code    string
	Message string
	Details map[string]any
}

func (e *ExecutionError) Error() string {
	return e.Message
}

func newExecutionError(code, message string, details map[string]any) *ExecutionError {
	return &ExecutionError{Code: code, Message: message, Details: details}
}

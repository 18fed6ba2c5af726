package response

// ErrorBody is the standard JSON error envelope.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func Error(code, message string, details interface{}) ErrorBody {
	return ErrorBody{
		Code:    code,
		Message: message,
		Details: details,
	}
}

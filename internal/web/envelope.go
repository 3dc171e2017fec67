package web

// Envelope is the standard API response wrapper used for both success and error payloads.
type Envelope struct {
	Status string `json:"status"`
	Code   string `json:"code,omitempty"`
	Data   any    `json:"data,omitempty"`
	Error  any    `json:"error,omitempty"`
}

// Error codes
const (
	CodeNotFound = "NOT_FOUND"
	CodeInvalid  = "INVALID"
	CodeInternal = "INTERNAL"
)

func newSuccess(data any) Envelope {
	return Envelope{Status: "success", Data: data}
}

func newError(code string, message string) Envelope {
	return Envelope{Status: "error", Code: code, Error: message}
}

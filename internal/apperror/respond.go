package apperror

// Body is the stable JSON error shape spec.md §7 names:
// {"error": "<kind>", "message"?: "...", "details"?: [...]}.
type Body struct {
	Error   string        `json:"error"`
	Message string        `json:"message,omitempty"`
	Details []StockDetail `json:"details,omitempty"`
}

// ToBody renders e into the wire shape. Errors that didn't originate as an
// *Error (unexpected internal failures) should be wrapped with New(KindInternal, ...)
// before reaching here so the token is never a raw Go error string.
func (e *Error) ToBody() Body {
	return Body{
		Error:   e.Token,
		Message: e.Message,
		Details: e.Details,
	}
}

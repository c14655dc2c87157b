package error

// Error is a classified API error. Callers branch on Code rather than on the
// message text.
type Error struct {
	Code    ErrorCode `json:"-"`
	Message string    `json:"errorMessage"`
}

func (e *Error) Error() string {
	return e.Message
}

func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

package apperr

// APIError implements error plus the wire contract of the API: every
// non-200 response is `{"error": <message>}` with the matching status code.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
}

func (e APIError) Error() string { return e.Message }

func NewBadRequest(message string) APIError {
	return APIError{Status: 400, Message: message}
}

func NewNotFound(message string) APIError {
	return APIError{Status: 404, Message: message}
}

func NewInternalServerError(message string) APIError {
	return APIError{Status: 500, Message: message}
}

package pkg

// DomainError is the error envelope returned by the HTTP layer.
//
// Every domain condition maps to a stable machine-readable code plus an HTTP
// status, so API consumers can branch on Code without parsing messages.

type DomainError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	HTTPStatus int    `json:"-"`
}

type HTTPError struct {
	Error DomainError `json:"error"`
}

func NewDomainErrorSimple(code, message string, httpStatus int) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: httpStatus}
}

func NewDomainError(code, message, details string, httpStatus int) *DomainError {
	return &DomainError{Code: code, Message: message, Details: details, HTTPStatus: httpStatus}
}

func (e *DomainError) ToHTTPError() HTTPError {
	return HTTPError{Error: *e}
}

func (e *DomainError) ErrorMessage() string {
	return e.Message
}

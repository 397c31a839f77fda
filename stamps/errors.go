package stamps

import "net/http"

// ServiceError carries an HTTP status and a stable machine-readable code so
// controllers can build the error envelope without inspecting messages.
type ServiceError struct {
	Status  int
	Code    string
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

func validationErr(message string) *ServiceError {
	return &ServiceError{Status: http.StatusBadRequest, Code: "VALIDATION_ERROR", Message: message}
}

func databaseErr(message string) *ServiceError {
	return &ServiceError{Status: http.StatusInternalServerError, Code: "DATABASE_ERROR", Message: message}
}

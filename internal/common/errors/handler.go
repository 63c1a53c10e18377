package errors

import "net/http"

// HTTPStatus maps an error code to the status the API surfaces it with.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeValidationFailed:
		return http.StatusBadRequest
	case ErrCodeSearchForbidden:
		return http.StatusForbidden
	case ErrCodeSearchNotFound:
		return http.StatusNotFound
	case ErrCodeUnresolvedLocation:
		return http.StatusUnprocessableEntity
	case ErrCodeDatabaseConnectionFailed, ErrCodeQueryExecutionFailed,
		ErrCodeNotificationSendFailed, ErrCodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse is the JSON body returned for a failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// ToResponse converts any error into the API error body plus status.
func ToResponse(err error) (int, ErrorResponse) {
	stdErr := AsStandard(err)
	return HTTPStatus(stdErr.Code), ErrorResponse{
		Error:   stdErr.Message,
		Code:    string(stdErr.Code),
		Details: stdErr.Details,
	}
}

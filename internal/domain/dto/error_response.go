package dto

import "time"

// ErrorResponse is the JSON body of every failed request.
//
// It implements error so handlers can pass it to gin's c.Error as well.
type ErrorResponse struct {
	Message      string    `json:"message" example:"missing required columns"`
	ErrorDetails string    `json:"error,omitempty" example:"missing required columns: 双融账户"`
	Timestamp    time.Time `json:"timestamp"`
}

// NewErrorResponse builds an ErrorResponse; err may be nil.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}

func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

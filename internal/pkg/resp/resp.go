/*
Package resp writes the standardized JSON envelope returned by every HTTP endpoint.
*/
package resp

import (
	"encoding/json"
	"errors"
	"net/http"

	"shinesmile/internal/pkg/errs"
	"shinesmile/internal/pkg/logx"
)

// JSONResponse is the envelope returned to clients.
type JSONResponse struct {
	// Code is 0 for success, otherwise one of the errs codes.
	Code int `json:"code"`

	Message string `json:"message"`

	Data any `json:"data,omitempty"`
}

// RespondJSON sets the JSON headers, writes httpStatus and encodes payload.
func RespondJSON(w http.ResponseWriter, r *http.Request, httpStatus int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	response, err := json.Marshal(payload)
	if err != nil {
		logx.FromRequest(r).Error().
			Err(err).
			Int("http_status", httpStatus).
			Msg("Error encoding JSON response")

		http.Error(w, "Error encoding JSON response", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(httpStatus)
	_, _ = w.Write(response)
}

// RespondSuccess sends an HTTP 200 envelope.
func RespondSuccess(w http.ResponseWriter, r *http.Request, data any) {
	RespondJSON(w, r, http.StatusOK, JSONResponse{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// RespondCreated sends an HTTP 201 envelope with a custom message.
func RespondCreated(w http.ResponseWriter, r *http.Request, message string, data any) {
	RespondJSON(w, r, http.StatusCreated, JSONResponse{
		Code:    0,
		Message: message,
		Data:    data,
	})
}

// RespondMessage sends an HTTP 200 envelope with a custom message.
func RespondMessage(w http.ResponseWriter, r *http.Request, message string, data any) {
	RespondJSON(w, r, http.StatusOK, JSONResponse{
		Code:    0,
		Message: message,
		Data:    data,
	})
}

// RespondError sends the envelope for a custom error with its HTTP status.
func RespondError(w http.ResponseWriter, r *http.Request, customErr *errs.CustomError) {
	if customErr == nil {
		customErr = errs.NewError(errs.ErrUnknown)
	}

	RespondJSON(w, r, customErr.Status, JSONResponse{
		Code:    customErr.Code,
		Message: customErr.Message,
	})
}

// RespondErr responds with err when it is a *errs.CustomError. Any other error
// is logged against the request and reported as ErrUnknown.
func RespondErr(w http.ResponseWriter, r *http.Request, err error) {
	var customErr *errs.CustomError
	if errors.As(err, &customErr) {
		RespondError(w, r, customErr)
		return
	}

	logx.FromRequest(r).Error().Err(err).Msg("Unhandled error while serving request")
	RespondError(w, r, errs.NewError(errs.ErrUnknown))
}

/*
Package resp provides helper functions for sending HTTP responses.

Successful reads answer with the bare JSON document, writes answer with a bare status code,
and errors answer with a bare status code unless they carry validation messages.
*/
package resp

import (
	"encoding/json"
	"net/http"

	"batepapo/internal/pkg/errs"
	"batepapo/internal/pkg/logx"
)

// RespondJSON sets the Content-Type and sends payload encoded as JSON with the given status.
func RespondJSON(w http.ResponseWriter, r *http.Request, httpStatus int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		logx.Error(
			err,
			"Error encoding JSON response",
			"http_status", httpStatus,
		)

		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(httpStatus)
	w.Write(response)
}

// RespondSuccess sends data with HTTP 200 OK.
func RespondSuccess(w http.ResponseWriter, r *http.Request, data any) {
	RespondJSON(w, r, http.StatusOK, data)
}

// RespondStatus sends a bodyless response.
func RespondStatus(w http.ResponseWriter, r *http.Request, httpStatus int) {
	w.WriteHeader(httpStatus)
}

// RespondError answers with the status of customErr.
// Validation errors carry their messages as a JSON array; every other error has no body.
func RespondError(w http.ResponseWriter, r *http.Request, customErr *errs.CustomError) {
	if customErr == nil {
		customErr = errs.NewError(errs.ErrUnknown)
	}

	if len(customErr.Details) > 0 {
		RespondJSON(w, r, customErr.Status, customErr.Details)
		return
	}

	RespondStatus(w, r, customErr.Status)
}

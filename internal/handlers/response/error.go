package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"gitlab.com/stark-bootcamp.net/internal/static/errs"
)

// ErrorMessage is the error body every endpoint returns. Detail is either a
// string or a list of FieldDetail.
type ErrorMessage struct {
	Detail     interface{} `json:"detail"`
	StatusCode int         `json:"status_code"`
}

// FieldDetail mirrors the per-field validation entries clients already parse.
type FieldDetail struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

func WriteError(w http.ResponseWriter, err ErrorMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.StatusCode)
	_ = json.NewEncoder(w).Encode(err)
}

func WriteSuccess(w http.ResponseWriter, data interface{}) {
	WriteJSON(w, http.StatusOK, data)
}

func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// Detail builds a plain string error body.
func Detail(statusCode int, detail string) ErrorMessage {
	return ErrorMessage{Detail: detail, StatusCode: statusCode}
}

var sentinelStatus = []struct {
	err    error
	status int
}{
	{errs.TeamNotFound, http.StatusNotFound},
	{errs.ContestNotFound, http.StatusNotFound},
	{errs.ProblemNotFound, http.StatusNotFound},
	{errs.RoundNotSubmitted, http.StatusNotFound},
	{errs.TeamAlreadyRegistered, http.StatusConflict},
	{errs.TeamNameRequired, http.StatusBadRequest},
	{errs.InvalidStatus, http.StatusBadRequest},
	{errs.InvalidRound, http.StatusBadRequest},
	{errs.InvalidCredentials, http.StatusUnauthorized},
	{errs.MissingToken, http.StatusUnauthorized},
	{errs.InvalidToken, http.StatusUnauthorized},
	{errs.Forbidden, http.StatusForbidden},
}

// FromError maps service errors onto HTTP status codes. Unknown errors
// become a generic 500 so internals are not leaked.
func FromError(err error) ErrorMessage {
	var verrs errs.ValidationErrors
	if errors.As(err, &verrs) {
		return Validation(verrs)
	}
	if errors.Is(err, errs.UploadFailed) {
		return Detail(http.StatusBadGateway, err.Error())
	}
	for _, s := range sentinelStatus {
		if errors.Is(err, s.err) {
			return Detail(s.status, s.err.Error())
		}
	}
	return Detail(http.StatusInternalServerError, "Internal server error")
}

func Validation(verrs errs.ValidationErrors) ErrorMessage {
	details := make([]FieldDetail, 0, len(verrs))
	for _, fe := range verrs {
		kind := "value_error"
		if fe.Msg == "field required" {
			kind = "value_error.missing"
		}
		details = append(details, FieldDetail{
			Loc:  []string{"body", fe.Field},
			Msg:  fe.Msg,
			Type: kind,
		})
	}
	return ErrorMessage{Detail: details, StatusCode: http.StatusUnprocessableEntity}
}

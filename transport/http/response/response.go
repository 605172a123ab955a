package response

import (
	"encoding/json"
	"net/http"
	"strconv"

	"bookit/shared/constant"
	"bookit/shared/failure"
	"bookit/shared/logger"
)

type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

// Error is the body of every failed request. Kind lets clients branch on the
// failure class without parsing the message.
type Error struct {
	Error      *string      `json:"error,omitempty"`
	Kind       failure.Kind `json:"kind,omitempty"`
	RetryAfter *int         `json:"retry_after,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

func WithMessage(writer http.ResponseWriter, code int, message string) {
	write(writer, code, Message{Message: &message})
}

func WithJSON(writer http.ResponseWriter, code int, payload any) {
	write(writer, code, Data[any]{Data: &payload})
}

// WithError maps err to its status. Internal errors are answered with the
// generic status text so storage details never leak. Rate limited errors also
// set Retry-After.
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)
	kind := failure.KindOf(err)

	msg := err.Error()
	if kind == failure.KindInternal {
		code = http.StatusInternalServerError
		msg = http.StatusText(code)
	}

	payload := Error{Error: &msg, Kind: kind}

	if retryAfter := failure.GetRetryAfter(err); retryAfter > 0 {
		writer.Header().Set(constant.ResponseHeaderRetryAfter, strconv.Itoa(retryAfter))
		payload.RetryAfter = &retryAfter
	}

	write(writer, code, payload)
}

func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func write(writer http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)
		http.Error(writer, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err = writer.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}

package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindValidation
	KindUpstreamRejected
	KindUpstreamUnavailable
	KindStorageUnavailable
)

// Error — типизированная ошибка для маппинга в HTTP-статус
type Error struct {
	Kind    Kind
	Msg     string
	Err     error
	Timeout bool
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

func NotFound(msg string) *Error {
	return New(KindNotFound, msg)
}

func Validation(msg string) *Error {
	return New(KindValidation, msg)
}

func UpstreamRejected(msg string, err error) *Error {
	return Wrap(KindUpstreamRejected, msg, err)
}

func UpstreamUnavailable(msg string, err error) *Error {
	return Wrap(KindUpstreamUnavailable, msg, err)
}

// UpstreamTimeout — отдельный конструктор, чтобы наружу ушёл 504, а не 502
func UpstreamTimeout(msg string, err error) *Error {
	return &Error{Kind: KindUpstreamUnavailable, Msg: msg, Err: err, Timeout: true}
}

func StorageUnavailable(msg string, err error) *Error {
	return Wrap(KindStorageUnavailable, msg, err)
}

func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// HTTPStatus — единая точка маппинга таксономии на статусы
func HTTPStatus(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}

	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindUpstreamRejected:
		return http.StatusBadRequest
	case KindUpstreamUnavailable:
		if e.Timeout {
			return http.StatusGatewayTimeout
		}
		return http.StatusBadGateway
	case KindStorageUnavailable:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

package ai

import (
	"context"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Vovarama1992/medi_translate/internal/apperr"
)

// classifyUpstreamError раскладывает ошибку апстрима по таксономии:
// таймаут/5xx/429 — недоступен, остальные 4xx — провайдер отверг запрос.
func classifyUpstreamError(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperr.UpstreamTimeout(op+": timed out", err)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return classifyByStatus(op, apiErr.HTTPStatusCode, err)
	}

	// go-openai иногда отдаёт голую строку "status code: NNN"
	msg := strings.ToLower(err.Error())
	for _, code := range []struct {
		marker string
		status int
	}{
		{"status code: 400", 400},
		{"status code: 401", 401},
		{"status code: 404", 404},
		{"status code: 413", 413},
		{"status code: 415", 415},
		{"status code: 429", 429},
		{"status code: 500", 500},
		{"status code: 502", 502},
		{"status code: 503", 503},
	} {
		if strings.Contains(msg, code.marker) {
			return classifyByStatus(op, code.status, err)
		}
	}

	return apperr.UpstreamUnavailable(op, err)
}

func classifyByStatus(op string, status int, err error) error {
	switch {
	case status == 429 || status >= 500:
		return apperr.UpstreamUnavailable(op, err)
	case status >= 400:
		return apperr.UpstreamRejected(op, err)
	}
	return apperr.UpstreamUnavailable(op, err)
}

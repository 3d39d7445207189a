package infra

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLike(t *testing.T) {
	// спецсимволы ILIKE ищутся буквально, а не как маски
	cases := map[string]string{
		"fever":      "fever",
		"100%":       `100\%`,
		"sat_o2":     `sat\_o2`,
		`C:\dose`:    `C:\\dose`,
		"%_":         `\%\_`,
		"plain text": "plain text",
	}
	for in, want := range cases {
		assert.Equal(t, want, escapeLike(in), "query=%q", in)
	}
}

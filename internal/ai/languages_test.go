package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLang(t *testing.T) {
	cases := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"en", "en", true},
		{"EN", "en", true},
		{" es ", "es", true},
		{"English", "en", true},
		{"spanish", "es", true},
		{"xx", "xx", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, ok := NormalizeLang(tc.in)
		assert.Equal(t, tc.wantOK, ok, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestLanguageName(t *testing.T) {
	assert.Equal(t, "Spanish", LanguageName("es"))
	assert.Equal(t, "French", LanguageName("FR"))
	// неизвестный код уходит в промпт как есть
	assert.Equal(t, "tlh", LanguageName("tlh"))
}

package ai

import "strings"

// Поддерживаемые языки: ISO 639-1 код → английское имя для промпта.
// Whisper и llama принимают имя, API наружу работает на кодах.
var supportedLanguages = map[string]string{
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"it": "Italian",
	"pt": "Portuguese",
	"ru": "Russian",
	"uk": "Ukrainian",
	"pl": "Polish",
	"nl": "Dutch",
	"tr": "Turkish",
	"ar": "Arabic",
	"hi": "Hindi",
	"vi": "Vietnamese",
	"zh": "Chinese",
	"ja": "Japanese",
	"ko": "Korean",
}

// NormalizeLang приводит код к каноническому виду ("EN", " en " → "en").
// Вторым значением — известен ли язык вообще.
func NormalizeLang(code string) (string, bool) {
	c := strings.ToLower(strings.TrimSpace(code))
	if _, ok := supportedLanguages[c]; ok {
		return c, true
	}

	// фронт исторически шлёт полные имена ("English")
	for iso, name := range supportedLanguages {
		if strings.EqualFold(c, name) {
			return iso, true
		}
	}
	return c, false
}

func LanguageName(code string) string {
	if name, ok := supportedLanguages[strings.ToLower(code)]; ok {
		return name
	}
	return code
}

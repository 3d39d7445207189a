package delivery

import (
	"encoding/json"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/Vovarama1992/medi_translate/internal/ai"
	"github.com/Vovarama1992/medi_translate/internal/apperr"
)

type TranslateHandler struct {
	translator ai.Translator
	log        *logger.ZapLogger
}

func NewTranslateHandler(translator ai.Translator, log *logger.ZapLogger) *TranslateHandler {
	return &TranslateHandler{
		translator: translator,
		log:        log,
	}
}

func (h *TranslateHandler) Translate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text       string `json:"text"`
		SourceLang string `json:"source_lang"`
		TargetLang string `json:"target_lang"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.log, apperr.Validation("invalid json: "+err.Error()))
		return
	}

	translated, err := h.translator.Translate(r.Context(), req.Text, req.SourceLang, req.TargetLang)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"original":    req.Text,
		"translated":  translated,
		"source_lang": req.SourceLang,
		"target_lang": req.TargetLang,
	})
}

// TranscribeTranslate — ветка для браузерного speech recognition:
// текст уже распознан на клиенте, сюда приходит только на перевод
func (h *TranslateHandler) TranscribeTranslate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Transcript string `json:"transcript"`
		SourceLang string `json:"source_lang"`
		TargetLang string `json:"target_lang"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.log, apperr.Validation("invalid json: "+err.Error()))
		return
	}

	translated, err := h.translator.Translate(r.Context(), req.Transcript, req.SourceLang, req.TargetLang)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"transcript":  req.Transcript,
		"translation": translated,
		"source_lang": req.SourceLang,
		"target_lang": req.TargetLang,
	})
}

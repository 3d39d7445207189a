package delivery

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/Vovarama1992/medi_translate/internal/ai"
	"github.com/Vovarama1992/medi_translate/internal/apperr"
	"github.com/Vovarama1992/medi_translate/internal/ports"
	"github.com/Vovarama1992/medi_translate/internal/speech"
)

type AudioHandler struct {
	stt           *speech.Service
	pipeline      ports.PipelineService
	s3            ports.S3Service
	conversations ports.ConversationService
	log           *logger.ZapLogger
}

func NewAudioHandler(
	stt *speech.Service,
	pipeline ports.PipelineService,
	s3 ports.S3Service,
	conversations ports.ConversationService,
	log *logger.ZapLogger,
) *AudioHandler {
	return &AudioHandler{
		stt:           stt,
		pipeline:      pipeline,
		s3:            s3,
		conversations: conversations,
		log:           log,
	}
}

// Transcribe — STT без привязки к беседе
func (h *AudioHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	audio, filename, _, err := readAudioForm(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	lang := r.FormValue("source_lang")
	if lang == "" {
		lang = "en"
	}
	// фронт шлёт и коды, и полные имена ("English"), whisper ждёт ISO-код
	lang, ok := ai.NormalizeLang(lang)
	if !ok {
		writeError(w, h.log, apperr.Validation("unsupported source language: "+lang))
		return
	}

	text, detected, err := h.stt.Transcribe(r.Context(), audio, filename, lang)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"transcript": text,
		"language":   detected,
	})
}

// Process — полный конвейер по conversation_id из формы
func (h *AudioHandler) Process(w http.ResponseWriter, r *http.Request) {
	audio, filename, contentType, err := readAudioForm(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	conversationID := r.FormValue("conversation_id")
	if conversationID == "" {
		writeError(w, h.log, apperr.Validation("missing conversation_id"))
		return
	}

	msg, err := h.pipeline.ProcessAudio(r.Context(), conversationID, r.FormValue("sender_role"), audio, filename, contentType)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, msg)
}

// Upload — только blob, без STT и перевода
func (h *AudioHandler) Upload(w http.ResponseWriter, r *http.Request) {
	audio, filename, contentType, err := readAudioForm(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	conversationID := r.FormValue("conversation_id")
	if conversationID == "" {
		writeError(w, h.log, apperr.Validation("missing conversation_id"))
		return
	}

	// беседа должна существовать, иначе blob станет сиротой
	if _, err := h.conversations.Get(r.Context(), conversationID); err != nil {
		writeError(w, h.log, err)
		return
	}

	url, key, err := h.s3.SaveAudio(r.Context(), conversationID, r.FormValue("sender_role"), audio, filename, contentType)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"audio_url": url,
		"filename":  key,
	})
}

// Download — отдаём blob обратно по его ключу conversation/role/file
func (h *AudioHandler) Download(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	if key == "" {
		writeError(w, h.log, apperr.Validation("missing audio key"))
		return
	}

	data, err := h.s3.GetAudio(r.Context(), key)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	w.Header().Set("Content-Type", audioContentType(key))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func audioContentType(key string) string {
	switch strings.ToLower(filepath.Ext(key)) {
	case ".mp3":
		return "audio/mpeg"
	case ".wav":
		return "audio/wav"
	case ".ogg", ".oga":
		return "audio/ogg"
	case ".m4a", ".mp4":
		return "audio/mp4"
	default:
		return "audio/webm"
	}
}

func readAudioForm(r *http.Request) ([]byte, string, string, error) {
	if err := r.ParseMultipartForm(speech.MaxAudioBytes); err != nil {
		return nil, "", "", apperr.Validation("invalid multipart: " + err.Error())
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		return nil, "", "", apperr.Validation("missing audio file: " + err.Error())
	}
	defer file.Close()

	if header.Size > speech.MaxAudioBytes {
		return nil, "", "", apperr.Validation("audio exceeds 20 MiB")
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", "", apperr.Validation("failed to read audio: " + err.Error())
	}

	return data, header.Filename, header.Header.Get("Content-Type"), nil
}

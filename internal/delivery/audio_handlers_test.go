package delivery

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vovarama1992/medi_translate/internal/apperr"
	"github.com/Vovarama1992/medi_translate/internal/ports"
	"github.com/Vovarama1992/medi_translate/internal/speech"
)

type stubSTT struct {
	text    string
	gotLang string
}

func (s *stubSTT) Transcribe(ctx context.Context, audio []byte, filename, language string) (string, string, error) {
	s.gotLang = language
	return s.text, language, nil
}

type stubS3 struct {
	saved  int
	getErr error
}

func (s *stubS3) ObjectKey(conversationID, senderRole, filename string) string {
	return conversationID + "/key.webm"
}
func (s *stubS3) SaveAudio(ctx context.Context, conversationID, senderRole string, audio []byte, filename, contentType string) (string, string, error) {
	s.saved++
	return "https://cdn/audio-files/" + conversationID + "/key.webm", conversationID + "/key.webm", nil
}
func (s *stubS3) GetAudio(ctx context.Context, key string) ([]byte, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return []byte("webm-bytes"), nil
}
func (s *stubS3) DeleteConversationAudio(ctx context.Context, conversationID string) error {
	return nil
}

func multipartAudioRequest(t *testing.T, target string, fields map[string]string) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	fw, err := mw.CreateFormFile("audio", "rec.webm")
	require.NoError(t, err)
	_, err = fw.Write([]byte("fake-audio-bytes"))
	require.NoError(t, err)

	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func newAudioHandler(pipe *mockPipeline, s3 *stubS3, convs *mockConversationService) *AudioHandler {
	stt := speech.NewService(&stubSTT{text: "The patient has a fever"}, time.Second)
	return NewAudioHandler(stt, pipe, s3, convs, nil)
}

func TestTranscribeHandler(t *testing.T) {
	h := newAudioHandler(&mockPipeline{}, &stubS3{}, &mockConversationService{})

	rec := httptest.NewRecorder()
	req := multipartAudioRequest(t, "/api/audio/transcribe", map[string]string{"source_lang": "en"})
	h.Transcribe(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"transcript":"The patient has a fever"`)
	assert.Contains(t, rec.Body.String(), `"language":"en"`)
}

func TestTranscribeHandlerAcceptsFullLanguageName(t *testing.T) {
	stt := &stubSTT{text: "hello"}
	h := NewAudioHandler(speech.NewService(stt, time.Second), &mockPipeline{}, &stubS3{}, &mockConversationService{}, nil)

	rec := httptest.NewRecorder()
	req := multipartAudioRequest(t, "/api/audio/transcribe", map[string]string{"source_lang": "English"})
	h.Transcribe(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	// whisper принимает только ISO-коды, имя должно быть сконвертировано до вызова
	assert.Equal(t, "en", stt.gotLang)
	assert.Contains(t, rec.Body.String(), `"language":"en"`)
}

func TestTranscribeHandlerRejectsUnknownLanguage(t *testing.T) {
	stt := &stubSTT{text: "hello"}
	h := NewAudioHandler(speech.NewService(stt, time.Second), &mockPipeline{}, &stubS3{}, &mockConversationService{}, nil)

	rec := httptest.NewRecorder()
	req := multipartAudioRequest(t, "/api/audio/transcribe", map[string]string{"source_lang": "klingon"})
	h.Transcribe(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Empty(t, stt.gotLang, "провайдер не должен вызываться с неизвестным языком")
}

func TestTranscribeHandlerMissingFile(t *testing.T) {
	h := newAudioHandler(&mockPipeline{}, &stubS3{}, &mockConversationService{})

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	require.NoError(t, mw.WriteField("source_lang", "en"))
	require.NoError(t, mw.Close())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/audio/transcribe", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	h.Transcribe(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing audio file")
}

func TestProcessHandlerRequiresConversationID(t *testing.T) {
	h := newAudioHandler(&mockPipeline{}, &stubS3{}, &mockConversationService{})

	rec := httptest.NewRecorder()
	req := multipartAudioRequest(t, "/api/audio/process", nil)
	h.Process(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing conversation_id")
}

func TestProcessHandlerReturnsComposedMessage(t *testing.T) {
	url := "https://cdn/audio-files/c1/key.webm"
	pipe := &mockPipeline{msg: ports.Message{
		ID:             "m1",
		ConversationID: "c1",
		OriginalText:   "The patient has a fever",
		TranslatedText: "El paciente tiene fiebre",
		AudioURL:       &url,
	}}
	h := newAudioHandler(pipe, &stubS3{}, &mockConversationService{})

	rec := httptest.NewRecorder()
	req := multipartAudioRequest(t, "/api/audio/process", map[string]string{
		"conversation_id": "c1",
		"sender_role":     "patient",
	})
	h.Process(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"El paciente tiene fiebre"`)
	assert.Contains(t, rec.Body.String(), `"audio_url"`)
}

func TestDownloadHandlerStreamsBlob(t *testing.T) {
	h := newAudioHandler(&mockPipeline{}, &stubS3{}, &mockConversationService{})

	r := chi.NewRouter()
	r.Get("/api/audio/file/*", h.Download)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/audio/file/c1/patient/key.webm", nil)
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "audio/webm", rec.Header().Get("Content-Type"))
	assert.Equal(t, "webm-bytes", rec.Body.String())
}

func TestDownloadHandlerMissingBlob(t *testing.T) {
	h := newAudioHandler(&mockPipeline{}, &stubS3{getErr: apperr.NotFound("audio not found")}, &mockConversationService{})

	r := chi.NewRouter()
	r.Get("/api/audio/file/*", h.Download)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/audio/file/c1/patient/gone.webm", nil)
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUploadHandlerChecksConversation(t *testing.T) {
	s3 := &stubS3{}
	h := newAudioHandler(&mockPipeline{}, s3, &mockConversationService{})

	rec := httptest.NewRecorder()
	req := multipartAudioRequest(t, "/api/audio/upload", map[string]string{
		"conversation_id": "c1",
		"sender_role":     "doctor",
	})
	h.Upload(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, s3.saved)
	assert.Contains(t, rec.Body.String(), `"audio_url"`)
	assert.Contains(t, rec.Body.String(), `"filename"`)
}

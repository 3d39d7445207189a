package delivery

import (
	"encoding/json"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"

	"github.com/Vovarama1992/medi_translate/internal/apperr"
	"github.com/Vovarama1992/medi_translate/internal/ports"
)

type ConversationHandler struct {
	conversations ports.ConversationService
	pipeline      ports.PipelineService
	summaries     ports.SummaryService
	log           *logger.ZapLogger
}

func NewConversationHandler(
	conversations ports.ConversationService,
	pipeline ports.PipelineService,
	summaries ports.SummaryService,
	log *logger.ZapLogger,
) *ConversationHandler {
	return &ConversationHandler{
		conversations: conversations,
		pipeline:      pipeline,
		summaries:     summaries,
		log:           log,
	}
}

func (h *ConversationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SourceLang string `json:"source_lang"`
		TargetLang string `json:"target_lang"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.log, apperr.Validation("invalid json: "+err.Error()))
		return
	}

	conv, err := h.conversations.Create(r.Context(), req.SourceLang, req.TargetLang)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, conv)
}

func (h *ConversationHandler) List(w http.ResponseWriter, r *http.Request) {
	convs, err := h.conversations.List(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if convs == nil {
		convs = []ports.Conversation{}
	}
	writeJSON(w, http.StatusOK, convs)
}

func (h *ConversationHandler) Get(w http.ResponseWriter, r *http.Request) {
	conv, err := h.conversations.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, conv)
}

func (h *ConversationHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SourceLang *string `json:"source_lang"`
		TargetLang *string `json:"target_lang"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.log, apperr.Validation("invalid json: "+err.Error()))
		return
	}

	conv, err := h.conversations.UpdateLanguages(r.Context(), chi.URLParam(r, "id"), req.SourceLang, req.TargetLang)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, conv)
}

func (h *ConversationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.conversations.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ConversationHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.conversations.Messages(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if msgs == nil {
		msgs = []ports.Message{}
	}
	writeJSON(w, http.StatusOK, msgs)
}

// AddTextMessage — перевод без аудио
func (h *ConversationHandler) AddTextMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text       string `json:"text"`
		SenderRole string `json:"sender_role"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.log, apperr.Validation("invalid json: "+err.Error()))
		return
	}

	msg, err := h.conversations.AddTextMessage(r.Context(), chi.URLParam(r, "id"), req.SenderRole, req.Text)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, msg)
}

// ProcessAudio — полный конвейер, conversation_id из URL
func (h *ConversationHandler) ProcessAudio(w http.ResponseWriter, r *http.Request) {
	audio, filename, contentType, err := readAudioForm(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	msg, err := h.pipeline.ProcessAudio(r.Context(), chi.URLParam(r, "id"), r.FormValue("sender_role"), audio, filename, contentType)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, msg)
}

func (h *ConversationHandler) Search(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.conversations.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if msgs == nil {
		msgs = []ports.Message{}
	}
	writeJSON(w, http.StatusOK, msgs)
}

func (h *ConversationHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	summary, err := h.summaries.Summarize(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

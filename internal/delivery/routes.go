package delivery

import (
	"net/http"
	"time"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

func RegisterRoutes(
	r chi.Router,
	hTranslate *TranslateHandler,
	hAudio *AudioHandler,
	hConv *ConversationHandler,
) {
	r.With(httputil.RecoverMiddleware).Get("/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "MediTranslate API running"})
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(
			httputil.RecoverMiddleware,
			httprate.LimitByIP(100, time.Minute),
		)

		// --- перевод ---
		api.Post("/translate", hTranslate.Translate)
		api.Post("/audio/transcribe-translate", hTranslate.TranscribeTranslate)

		// --- аудио ---
		api.Post("/audio/transcribe", hAudio.Transcribe)
		api.Post("/audio/process", hAudio.Process)
		api.Post("/audio/upload", hAudio.Upload)
		api.Get("/audio/file/*", hAudio.Download)

		// --- беседы ---
		api.Post("/conversations", hConv.Create)
		api.Get("/conversations", hConv.List)
		api.Get("/conversations/{id}", hConv.Get)
		api.Patch("/conversations/{id}", hConv.Update)
		api.Delete("/conversations/{id}", hConv.Delete)

		// --- сообщения ---
		api.Get("/conversations/{id}/messages", hConv.ListMessages)
		api.Post("/conversations/{id}/messages", hConv.AddTextMessage)
		api.Post("/conversations/{id}/audio", hConv.ProcessAudio)

		// --- поиск и summary ---
		api.Get("/search", hConv.Search)
		api.Post("/conversations/{id}/summary", hConv.Summarize)
	})
}

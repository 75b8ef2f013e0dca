package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/nasiloldu/backend/render"
)

type DocumentHandler struct {
	Renderer *render.Renderer
	Log      zerolog.Logger
}

// ServeDocument returns the server-rendered document for any non-API path.
// When rendering fails the unmodified client shell goes out instead — a
// degraded but functional page beats an error page.
func (h *DocumentHandler) ServeDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := h.Renderer.RenderDocument(r.Context(), r.URL.Path)
	if err != nil {
		h.Log.Error().Err(err).Str("path", r.URL.Path).Msg("SSR failed, serving client shell")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(h.Renderer.Shell()))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(doc.Status)
	_, _ = w.Write([]byte(doc.HTML))
}

package api

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"

	"github.com/skyhook-labs/talon/pkg/routes"
	"github.com/skyhook-labs/talon/pkg/storage"
)

// batchHandler serves archived CSV batch files back out of blob storage
// so a reviewer can audit exactly what was imported.
type batchHandler struct {
	store  storage.System
	logger *slog.Logger
}

func newBatchHandler(store storage.System, logger *slog.Logger) *batchHandler {
	return &batchHandler{
		store:  store,
		logger: logger.With("handler", "batches"),
	}
}

func (h *batchHandler) routes() routes.Group {
	return routes.Group{
		Prefix: "/batches",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{key...}", Handler: h.download},
		},
	}
}

func (h *batchHandler) download(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	body, err := h.store.Download(r.Context(), key)
	if err != nil {
		h.logger.Warn("batch download failed", "key", key, "error", err)
		http.Error(w, err.Error(), storage.MapHTTPStatus(err))
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set(
		"Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", path.Base(key)),
	)
	w.WriteHeader(http.StatusOK)
	io.Copy(w, body)
}

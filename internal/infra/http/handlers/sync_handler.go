package handlers

import (
	"net/http"

	"github.com/smartleadhq/smart-leads/internal/infra/http/middleware"
	"github.com/smartleadhq/smart-leads/internal/usecase"
)

// SyncHandler exposes the on-demand sync trigger. It routes into the same
// SyncLeadsUseCase instance as the periodic worker, so both triggers share
// one cycle semantics.
type SyncHandler struct {
	syncUC *usecase.SyncLeadsUseCase
	secret string
}

func NewSyncHandler(syncUC *usecase.SyncLeadsUseCase, secret string) *SyncHandler {
	return &SyncHandler{
		syncUC: syncUC,
		secret: secret,
	}
}

// Handle handles POST /api/cron/sync. When CRON_SECRET is configured the
// caller must present it as a bearer token.
func (h *SyncHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if h.secret != "" && r.Header.Get("Authorization") != "Bearer "+h.secret {
		writeJSON(w, http.StatusUnauthorized, apiResponse{
			Success: false,
			Message: "Unauthorized",
		})
		return
	}

	output, err := h.syncUC.Execute(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, apiResponse{
			Success: false,
			Message: "Error executing sync task: " + err.Error(),
		})
		return
	}

	middleware.RecordSyncCycle(output.SyncedCount)

	writeJSON(w, http.StatusOK, output)
}

package handlers

import (
	"net/http"

	"github.com/danielmriley/aigent-sub002/internal/service"
)

type SystemHandler struct {
	mgr *service.Manager
}

func NewSystemHandler(mgr *service.Manager) *SystemHandler {
	return &SystemHandler{mgr: mgr}
}

func (h *SystemHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.mgr.Stats())
}

// Sleep runs one consolidation cycle and returns its summary.
func (h *SystemHandler) Sleep(w http.ResponseWriter, r *http.Request) {
	summary, err := h.mgr.RunSleepCycle(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "sleep cycle failed")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// VaultSync forces a full vault projection rebuild.
func (h *SystemHandler) VaultSync(w http.ResponseWriter, r *http.Request) {
	summary, err := h.mgr.SyncVault()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "vault sync failed")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

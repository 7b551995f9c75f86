package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/danielmriley/aigent-sub002/internal/domain"
	"github.com/danielmriley/aigent-sub002/internal/service"
)

type MemoryHandler struct {
	mgr *service.Manager
}

func NewMemoryHandler(mgr *service.Manager) *MemoryHandler {
	return &MemoryHandler{mgr: mgr}
}

type createMemoryRequest struct {
	Tier       string   `json:"tier"`
	Content    string   `json:"content"`
	Source     string   `json:"source"`
	Confidence *float32 `json:"confidence,omitempty"`
	Valence    *float32 `json:"valence,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

type quarantineResponse struct {
	Quarantined bool   `json:"quarantined"`
	Reason      string `json:"reason"`
}

func (h *MemoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createMemoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}
	if !domain.ValidTier(req.Tier) {
		writeError(w, http.StatusBadRequest, "invalid tier")
		return
	}
	if req.Source == "" {
		writeError(w, http.StatusBadRequest, "source is required")
		return
	}

	entry, err := h.mgr.RecordWith(r.Context(), service.RecordRequest{
		Tier:       domain.MemoryTier(req.Tier),
		Content:    req.Content,
		Source:     req.Source,
		Confidence: req.Confidence,
		Valence:    req.Valence,
		Tags:       req.Tags,
	})
	if err != nil {
		var qe *service.QuarantineError
		if errors.As(err, &qe) {
			writeJSON(w, http.StatusUnprocessableEntity, quarantineResponse{
				Quarantined: true,
				Reason:      qe.Reason,
			})
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to record memory")
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

type recentResponse struct {
	Memories []domain.MemoryEntry `json:"memories"`
	Count    int                  `json:"count"`
}

func (h *MemoryHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit parameter")
			return
		}
		limit = parsed
	}

	memories := h.mgr.Recent(limit)
	if memories == nil {
		memories = []domain.MemoryEntry{}
	}

	writeJSON(w, http.StatusOK, recentResponse{
		Memories: memories,
		Count:    len(memories),
	})
}

type wipeResponse struct {
	Removed int `json:"removed"`
}

// Wipe removes all entries, or only the tiers listed in the comma-separated
// tiers query parameter.
func (h *MemoryHandler) Wipe(w http.ResponseWriter, r *http.Request) {
	tiersParam := r.URL.Query().Get("tiers")

	if tiersParam == "" {
		removed, err := h.mgr.WipeAll(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to wipe memories")
			return
		}
		writeJSON(w, http.StatusOK, wipeResponse{Removed: removed})
		return
	}

	var tiers []domain.MemoryTier
	for _, part := range strings.Split(tiersParam, ",") {
		t := strings.TrimSpace(part)
		if !domain.ValidTier(t) {
			writeError(w, http.StatusBadRequest, "invalid tier: "+t)
			return
		}
		tiers = append(tiers, domain.MemoryTier(t))
	}

	removed, err := h.mgr.WipeTiers(r.Context(), tiers)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to wipe memories")
		return
	}
	writeJSON(w, http.StatusOK, wipeResponse{Removed: removed})
}

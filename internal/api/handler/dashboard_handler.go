package handler

import (
	"encoding/json"
	"net/http"

	"career_path/internal/api/middleware"
	"career_path/internal/app/service"
	"career_path/internal/common"

	"github.com/go-chi/chi/v5"
)

type DashboardHandler struct {
	progressService *service.ProgressService
}

func NewDashboardHandler(progressService *service.ProgressService) *DashboardHandler {
	return &DashboardHandler{progressService: progressService}
}

func (h *DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard", h.dashboard)
	r.Put("/progress/{track}/{skill}", h.setSkill)
}

func (h *DashboardHandler) dashboard(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	tracks, err := h.progressService.Dashboard(r.Context(), identity.ID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"tracks": tracks})
}

type setSkillRequest struct {
	Done bool `json:"done"`
}

func (h *DashboardHandler) setSkill(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req setSkillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	track := chi.URLParam(r, "track")
	skill := chi.URLParam(r, "skill")
	if err := h.progressService.SetSkill(r.Context(), identity.ID, track, skill, req.Done); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondNoContent(w)
}

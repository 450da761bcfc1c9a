package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"quizhub-backend/internal/middleware"
	"quizhub-backend/internal/models"
	"quizhub-backend/internal/services"
)

type ResultHandler struct {
	resultService *services.ResultService
}

func NewResultHandler(resultService *services.ResultService) *ResultHandler {
	return &ResultHandler{resultService: resultService}
}

func (h *ResultHandler) UserResults(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	results, err := h.resultService.UserResults(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch results", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}

func (h *ResultHandler) AllResults(w http.ResponseWriter, r *http.Request) {
	results, err := h.resultService.AllResults(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch results", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}

func (h *ResultHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	filter := models.LeaderboardFilter{
		Period: r.URL.Query().Get("period"),
	}
	if raw := r.URL.Query().Get("quizId"); raw != "" {
		quizID, err := uuid.Parse(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid quiz ID", r))
			return
		}
		filter.QuizID = &quizID
	}

	entries, err := h.resultService.Leaderboard(r.Context(), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch leaderboard", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"leaderboard": entries})
}

func (h *ResultHandler) UserAnswers(w http.ResponseWriter, r *http.Request) {
	resultID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid result ID", r))
		return
	}

	callerID := middleware.GetUserID(r.Context())
	callerRole := middleware.GetUserRole(r.Context())

	answers, err := h.resultService.UserAnswers(r.Context(), resultID, callerID, callerRole)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"answers": answers})
}

package handlers

import (
	"encoding/json"
	"net/http"

	"quizhub-backend/internal/models"
	"quizhub-backend/internal/repository"
)

type TopicHandler struct {
	topicRepo *repository.TopicRepo
}

func NewTopicHandler(topicRepo *repository.TopicRepo) *TopicHandler {
	return &TopicHandler{topicRepo: topicRepo}
}

func (h *TopicHandler) List(w http.ResponseWriter, r *http.Request) {
	topics, err := h.topicRepo.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch topics", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"topics": topics})
}

func (h *TopicHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTopicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if req.About == "" {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed",
			map[string]string{"about": "Topic name is required"}, r))
		return
	}

	topic := &models.Topic{About: req.About}
	if err := h.topicRepo.Create(r.Context(), topic); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to create topic", r))
		return
	}

	writeJSON(w, http.StatusCreated, topic)
}

package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"quizhub-backend/internal/models"
	"quizhub-backend/internal/repository"
	"quizhub-backend/internal/scoring"
)

type AnswerHandler struct {
	answerRepo *repository.AnswerRepo
}

func NewAnswerHandler(answerRepo *repository.AnswerRepo) *AnswerHandler {
	return &AnswerHandler{answerRepo: answerRepo}
}

// validateAnswerBody rejects the multi-answer separator inside option text,
// since a "|" would corrupt submitted selections.
func validateAnswerBody(body string) map[string]string {
	fields := make(map[string]string)
	if body == "" {
		fields["answerBody"] = "Answer body is required"
	} else if strings.Contains(body, scoring.MultipleAnswerSeparator) {
		fields["answerBody"] = "Answer body must not contain the '|' character"
	}
	return fields
}

func (h *AnswerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if fields := validateAnswerBody(req.AnswerBody); len(fields) > 0 {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", fields, r))
		return
	}

	answer := &models.Answer{
		QuestionID: req.QuestionID,
		AnswerBody: req.AnswerBody,
		IsTrue:     req.IsTrue,
	}
	if err := h.answerRepo.Create(r.Context(), answer); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to create answer", r))
		return
	}

	writeJSON(w, http.StatusCreated, answer)
}

func (h *AnswerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid answer ID", r))
		return
	}

	var req models.UpdateAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if fields := validateAnswerBody(req.AnswerBody); len(fields) > 0 {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", fields, r))
		return
	}

	if err := h.answerRepo.Update(r.Context(), id, req.AnswerBody, req.IsTrue); err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Answer not found", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Answer updated"})
}

func (h *AnswerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid answer ID", r))
		return
	}

	if err := h.answerRepo.Delete(r.Context(), id); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to delete answer", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Answer deleted"})
}

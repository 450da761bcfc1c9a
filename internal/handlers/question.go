package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"quizhub-backend/internal/models"
	"quizhub-backend/internal/repository"
	"quizhub-backend/internal/scoring"
)

type QuestionHandler struct {
	questionRepo *repository.QuestionRepo
	answerRepo   *repository.AnswerRepo
}

func NewQuestionHandler(questionRepo *repository.QuestionRepo, answerRepo *repository.AnswerRepo) *QuestionHandler {
	return &QuestionHandler{questionRepo: questionRepo, answerRepo: answerRepo}
}

func validQuestionType(t scoring.QuestionType) bool {
	switch t {
	case scoring.OneAnswer, scoring.MultipleAnswer, scoring.TrueOrFalse, scoring.FillInTheBlank:
		return true
	}
	return false
}

func (h *QuestionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	fields := make(map[string]string)
	if req.Body == "" {
		fields["body"] = "Question body is required"
	}
	if !validQuestionType(req.Type) {
		fields["type"] = "Unknown question type"
	}
	if req.Points < 0 {
		fields["points"] = "Points must not be negative"
	}
	for i, a := range req.Answers {
		for field, msg := range validateAnswerBody(a.AnswerBody) {
			fields[fmt.Sprintf("answers[%d].%s", i, field)] = msg
		}
	}
	if len(fields) > 0 {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", fields, r))
		return
	}

	question := &models.Question{
		QuizID: req.QuizID,
		Body:   req.Body,
		Type:   req.Type,
		Points: req.Points,
	}
	for _, a := range req.Answers {
		question.Answers = append(question.Answers, models.Answer{
			AnswerBody: a.AnswerBody,
			IsTrue:     a.IsTrue,
		})
	}

	if err := h.questionRepo.CreateWithAnswers(r.Context(), question); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to create question", r))
		return
	}

	writeJSON(w, http.StatusCreated, question)
}

func (h *QuestionHandler) ListByQuiz(w http.ResponseWriter, r *http.Request) {
	quizID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid quiz ID", r))
		return
	}

	questions, err := h.questionRepo.ListByQuiz(r.Context(), quizID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch questions", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"questions": questions})
}

func (h *QuestionHandler) ListAnswers(w http.ResponseWriter, r *http.Request) {
	questionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid question ID", r))
		return
	}

	answers, err := h.answerRepo.ListByQuestion(r.Context(), questionID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch answers", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"answers": answers})
}

func (h *QuestionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid question ID", r))
		return
	}

	if err := h.questionRepo.Delete(r.Context(), id); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to delete question", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Question deleted"})
}

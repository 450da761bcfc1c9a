package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"quizhub-backend/internal/models"
)

func TestValidateQuiz(t *testing.T) {
	valid := models.CreateQuizRequest{
		Title:       "Capitals of Europe",
		Description: "Geography basics",
		Difficulty:  models.DifficultyEasy,
		Time:        10,
		Topics:      []string{"Geography"},
	}

	tests := []struct {
		name     string
		mutate   func(*models.CreateQuizRequest)
		badField string
	}{
		{"missing title", func(r *models.CreateQuizRequest) { r.Title = "" }, "title"},
		{"title too long", func(r *models.CreateQuizRequest) {
			for len(r.Title) <= 100 {
				r.Title += "x"
			}
		}, "title"},
		{"description too long", func(r *models.CreateQuizRequest) {
			for len(r.Description) <= 150 {
				r.Description += "x"
			}
		}, "description"},
		{"bad difficulty", func(r *models.CreateQuizRequest) { r.Difficulty = "Impossible" }, "difficulty"},
		{"time too small", func(r *models.CreateQuizRequest) { r.Time = 0 }, "time"},
		{"time too large", func(r *models.CreateQuizRequest) { r.Time = 121 }, "time"},
		{"no topics", func(r *models.CreateQuizRequest) { r.Topics = nil }, "topics"},
	}

	if errs := validateQuiz(valid); len(errs) != 0 {
		t.Fatalf("Valid request should pass, got %v", errs)
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := valid
			tc.mutate(&req)
			errs := validateQuiz(req)
			if _, ok := errs[tc.badField]; !ok {
				t.Errorf("Expected error on field %q, got %v", tc.badField, errs)
			}
		})
	}
}

func TestSubmit_RejectsDuplicateQuestionEntries(t *testing.T) {
	s := &QuizService{}
	questionID := uuid.New()

	req := models.SubmitAnswersRequest{Answers: []models.SubmittedAnswerBody{
		{QuestionID: questionID, AnswerBody: "Paris"},
		{QuestionID: questionID, AnswerBody: "London"},
	}}

	_, err := s.Submit(context.Background(), uuid.New(), uuid.New(), req)

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
	if _, ok := vErr.Fields["answers"]; !ok {
		t.Errorf("Expected a field error on answers, got %v", vErr.Fields)
	}
}

func TestSubmit_RejectsEmptySubmission(t *testing.T) {
	s := &QuizService{}

	_, err := s.Submit(context.Background(), uuid.New(), uuid.New(), models.SubmitAnswersRequest{})

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
}

func TestValidateQuiz_BoundaryTimes(t *testing.T) {
	req := models.CreateQuizRequest{
		Title:      "Boundaries",
		Difficulty: models.DifficultyHard,
		Topics:     []string{"Misc"},
	}

	for _, minutes := range []int{1, 120} {
		req.Time = minutes
		if errs := validateQuiz(req); len(errs) != 0 {
			t.Errorf("Time %d should be accepted, got %v", minutes, errs)
		}
	}
}

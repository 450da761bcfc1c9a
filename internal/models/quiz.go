package models

import (
	"time"

	"github.com/google/uuid"

	"quizhub-backend/internal/scoring"
)

const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

type Quiz struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Difficulty  string     `json:"difficulty"`
	Time        int        `json:"time"` // minutes the client enforces
	Topics      []string   `json:"topics,omitempty"`
	Questions   []Question `json:"questions,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type Question struct {
	ID      uuid.UUID            `json:"id"`
	QuizID  uuid.UUID            `json:"quizId"`
	Body    string               `json:"body"`
	Type    scoring.QuestionType `json:"type"`
	Points  float64              `json:"points"`
	Answers []Answer             `json:"answers,omitempty"`
}

type Answer struct {
	ID         uuid.UUID `json:"id"`
	QuestionID uuid.UUID `json:"questionId"`
	AnswerBody string    `json:"answerBody"`
	IsTrue     bool      `json:"isTrue"`
}

type Topic struct {
	ID    uuid.UUID `json:"id"`
	About string    `json:"about"`
}

type CreateQuizRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Difficulty  string   `json:"difficulty"`
	Time        int      `json:"time"`
	Topics      []string `json:"topics"`
}

type CreateQuestionRequest struct {
	QuizID  uuid.UUID             `json:"quizId"`
	Body    string                `json:"body"`
	Type    scoring.QuestionType  `json:"type"`
	Points  float64               `json:"points"`
	Answers []CreateAnswerRequest `json:"answers"`
}

type CreateAnswerRequest struct {
	QuestionID uuid.UUID `json:"questionId"`
	AnswerBody string    `json:"answerBody"`
	IsTrue     bool      `json:"isTrue"`
}

type UpdateAnswerRequest struct {
	AnswerBody string `json:"answerBody"`
	IsTrue     bool   `json:"isTrue"`
}

type CreateTopicRequest struct {
	About string `json:"about"`
}

// QuizFilter narrows the quiz listing; zero values mean no filtering.
type QuizFilter struct {
	Search     string
	Difficulty string
	Topic      string
}

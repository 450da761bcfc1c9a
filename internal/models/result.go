package models

import (
	"time"

	"github.com/google/uuid"
)

type Result struct {
	ID         uuid.UUID `json:"id"`
	QuizID     uuid.UUID `json:"quizId"`
	UserID     uuid.UUID `json:"userId"`
	Points     float64   `json:"points"`
	MaxPoints  float64   `json:"maxPoints"`
	DateOfPlay time.Time `json:"dateOfPlay"`
	Quiz       *Quiz     `json:"quiz,omitempty"`
	User       *User     `json:"user,omitempty"`
}

// UserAnswer is the per-question audit row written alongside a result.
type UserAnswer struct {
	ID         uuid.UUID `json:"id"`
	ResultID   uuid.UUID `json:"resultId"`
	UserID     uuid.UUID `json:"userId"`
	QuestionID uuid.UUID `json:"questionId"`
	AnswerBody string    `json:"answerBody"`
	IsTrue     bool      `json:"isTrue"`
}

type SubmitAnswersRequest struct {
	Answers []SubmittedAnswerBody `json:"answers"`
}

// SubmittedAnswerBody is the wire shape of one answer. MultipleAnswer bodies
// arrive pre-joined by "|" at the UI layer.
type SubmittedAnswerBody struct {
	QuestionID uuid.UUID `json:"questionId"`
	AnswerBody string    `json:"answerBody"`
}

type LeaderboardEntry struct {
	Position     int       `json:"position"`
	Username     string    `json:"username"`
	ProfileImage string    `json:"profileImage"`
	Points       float64   `json:"points"`
	MaxPoints    float64   `json:"maxPoints"`
	Percentage   float64   `json:"percentage"`
	DateOfPlay   time.Time `json:"dateOfPlay"`
}

// LeaderboardFilter narrows the ranked results; zero values mean all quizzes,
// all time. Period accepts the values the dashboard sends.
type LeaderboardFilter struct {
	QuizID *uuid.UUID
	Period string // "This Week" or "This Month"
}

package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"quizhub-backend/internal/models"
	"quizhub-backend/internal/repository"
	"quizhub-backend/internal/scoring"
)

type QuizService struct {
	quizRepo     *repository.QuizRepo
	questionRepo *repository.QuestionRepo
	answerRepo   *repository.AnswerRepo
	resultRepo   *repository.ResultRepo
}

func NewQuizService(quizRepo *repository.QuizRepo, questionRepo *repository.QuestionRepo, answerRepo *repository.AnswerRepo, resultRepo *repository.ResultRepo) *QuizService {
	return &QuizService{
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		resultRepo:   resultRepo,
	}
}

func validDifficulty(d string) bool {
	return d == models.DifficultyEasy || d == models.DifficultyMedium || d == models.DifficultyHard
}

func validateQuiz(req models.CreateQuizRequest) map[string]string {
	fieldErrors := make(map[string]string)
	if req.Title == "" || len(req.Title) > 100 {
		fieldErrors["title"] = "Title is required and must be at most 100 characters"
	}
	if len(req.Description) > 150 {
		fieldErrors["description"] = "Description must be at most 150 characters"
	}
	if !validDifficulty(req.Difficulty) {
		fieldErrors["difficulty"] = "Difficulty must be Easy, Medium or Hard"
	}
	if req.Time < 1 || req.Time > 120 {
		fieldErrors["time"] = "Time limit must be between 1 and 120 minutes"
	}
	if len(req.Topics) == 0 {
		fieldErrors["topics"] = "At least one topic is required"
	}
	return fieldErrors
}

func (s *QuizService) Create(ctx context.Context, req models.CreateQuizRequest) (*models.Quiz, error) {
	if fieldErrors := validateQuiz(req); len(fieldErrors) > 0 {
		return nil, &ValidationError{Fields: fieldErrors}
	}

	quiz := &models.Quiz{
		Title:       req.Title,
		Description: req.Description,
		Difficulty:  req.Difficulty,
		Time:        req.Time,
		Topics:      req.Topics,
	}
	if err := s.quizRepo.Create(ctx, quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) Update(ctx context.Context, id uuid.UUID, req models.CreateQuizRequest) (*models.Quiz, error) {
	if fieldErrors := validateQuiz(req); len(fieldErrors) > 0 {
		return nil, &ValidationError{Fields: fieldErrors}
	}

	if _, err := s.quizRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "Quiz not found"}
		}
		return nil, err
	}

	quiz := &models.Quiz{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Difficulty:  req.Difficulty,
		Time:        req.Time,
		Topics:      req.Topics,
	}
	if err := s.quizRepo.Update(ctx, quiz); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *QuizService) List(ctx context.Context, filter models.QuizFilter) ([]*models.Quiz, error) {
	return s.quizRepo.List(ctx, filter)
}

// Get returns a quiz with its questions and candidate answers loaded.
func (s *QuizService) Get(ctx context.Context, id uuid.UUID) (*models.Quiz, error) {
	quiz, err := s.quizRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "Quiz not found"}
		}
		return nil, err
	}

	questions, err := s.questionRepo.ListByQuiz(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, q := range questions {
		answers, err := s.answerRepo.ListByQuestion(ctx, q.ID)
		if err != nil {
			return nil, err
		}
		for _, a := range answers {
			q.Answers = append(q.Answers, *a)
		}
		quiz.Questions = append(quiz.Questions, *q)
	}
	return quiz, nil
}

func (s *QuizService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.quizRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &NotFoundError{Message: "Quiz not found"}
		}
		return err
	}
	return s.quizRepo.Delete(ctx, id)
}

// Submit scores a user's answers for a quiz and persists the result together
// with its per-question audit rows. Scoring itself is pure; everything
// blocking happens here.
func (s *QuizService) Submit(ctx context.Context, quizID, userID uuid.UUID, req models.SubmitAnswersRequest) (*models.Result, error) {
	if len(req.Answers) == 0 {
		return nil, &ValidationError{Fields: map[string]string{"answers": "At least one answer is required"}}
	}
	seen := make(map[uuid.UUID]bool, len(req.Answers))
	for _, a := range req.Answers {
		if seen[a.QuestionID] {
			return nil, &ValidationError{Fields: map[string]string{"answers": "Each question may be answered only once"}}
		}
		seen[a.QuestionID] = true
	}

	if _, err := s.quizRepo.GetByID(ctx, quizID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "Quiz not found"}
		}
		return nil, err
	}

	contexts, err := s.questionRepo.ScoringContexts(ctx, quizID)
	if err != nil {
		return nil, err
	}

	submission := make([]scoring.SubmittedAnswer, 0, len(req.Answers))
	for _, a := range req.Answers {
		submission = append(submission, scoring.SubmittedAnswer{
			QuestionID: a.QuestionID,
			Body:       a.AnswerBody,
		})
	}

	scored, err := scoring.Score(submission, contexts)
	if err != nil {
		if errors.Is(err, scoring.ErrMissingQuestionContext) {
			return nil, &ValidationError{Fields: map[string]string{
				"answers": "Submission references a question that does not belong to this quiz",
			}}
		}
		return nil, err
	}

	result := &models.Result{
		QuizID:     quizID,
		UserID:     userID,
		Points:     scored.Points,
		MaxPoints:  scored.MaxPoints,
		DateOfPlay: scored.DateOfPlay,
	}
	audit := make([]models.UserAnswer, 0, len(scored.Outcomes))
	for _, out := range scored.Outcomes {
		audit = append(audit, models.UserAnswer{
			QuestionID: out.QuestionID,
			AnswerBody: out.Body,
			IsTrue:     out.Correct,
		})
	}

	if err := s.resultRepo.SaveWithAnswers(ctx, result, audit); err != nil {
		return nil, &ResultNotSavedError{Err: err}
	}
	return result, nil
}

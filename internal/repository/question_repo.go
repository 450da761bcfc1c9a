package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"quizhub-backend/internal/models"
	"quizhub-backend/internal/scoring"
)

type QuestionRepo struct {
	pool *pgxpool.Pool
}

func NewQuestionRepo(pool *pgxpool.Pool) *QuestionRepo {
	return &QuestionRepo{pool: pool}
}

// CreateWithAnswers writes a question and its candidate answers atomically.
func (r *QuestionRepo) CreateWithAnswers(ctx context.Context, q *models.Question) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	q.ID = uuid.New()
	_, err = tx.Exec(ctx,
		"INSERT INTO questions (id, quiz_id, body, type, points) VALUES ($1, $2, $3, $4, $5)",
		q.ID, q.QuizID, q.Body, string(q.Type), q.Points,
	)
	if err != nil {
		return err
	}

	for i := range q.Answers {
		q.Answers[i].ID = uuid.New()
		q.Answers[i].QuestionID = q.ID
		_, err = tx.Exec(ctx,
			"INSERT INTO answers (id, question_id, answer_body, is_true) VALUES ($1, $2, $3, $4)",
			q.Answers[i].ID, q.ID, q.Answers[i].AnswerBody, q.Answers[i].IsTrue,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *QuestionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Question, error) {
	q := &models.Question{}
	var qType string
	err := r.pool.QueryRow(ctx,
		"SELECT id, quiz_id, body, type, points FROM questions WHERE id = $1", id,
	).Scan(&q.ID, &q.QuizID, &q.Body, &qType, &q.Points)
	if err != nil {
		return nil, err
	}
	q.Type = scoring.QuestionType(qType)
	return q, nil
}

func (r *QuestionRepo) ListByQuiz(ctx context.Context, quizID uuid.UUID) ([]*models.Question, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT id, quiz_id, body, type, points FROM questions WHERE quiz_id = $1 ORDER BY id", quizID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []*models.Question
	for rows.Next() {
		q := &models.Question{}
		var qType string
		if err := rows.Scan(&q.ID, &q.QuizID, &q.Body, &qType, &q.Points); err != nil {
			return nil, err
		}
		q.Type = scoring.QuestionType(qType)
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func (r *QuestionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM questions WHERE id = $1", id)
	return err
}

// ScoringContexts resolves every question of a quiz, with its candidate
// answers, into the read-only map the scoring engine consumes.
func (r *QuestionRepo) ScoringContexts(ctx context.Context, quizID uuid.UUID) (map[uuid.UUID]scoring.QuestionContext, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT q.id, q.quiz_id, q.type, q.points, a.id, a.answer_body, a.is_true
		FROM questions q
		LEFT JOIN answers a ON a.question_id = q.id
		WHERE q.quiz_id = $1
		ORDER BY q.id, a.id`, quizID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contexts := make(map[uuid.UUID]scoring.QuestionContext)
	for rows.Next() {
		var (
			questionID uuid.UUID
			qzID       uuid.UUID
			qType      string
			points     float64
			answerID   *uuid.UUID
			answerBody *string
			isTrue     *bool
		)
		if err := rows.Scan(&questionID, &qzID, &qType, &points, &answerID, &answerBody, &isTrue); err != nil {
			return nil, err
		}

		qc, ok := contexts[questionID]
		if !ok {
			qc = scoring.QuestionContext{
				QuestionID: questionID,
				QuizID:     qzID,
				Type:       scoring.QuestionType(qType),
				Points:     points,
			}
		}
		if answerID != nil {
			qc.Answers = append(qc.Answers, scoring.CandidateAnswer{
				ID:      *answerID,
				Body:    *answerBody,
				Correct: *isTrue,
			})
		}
		contexts[questionID] = qc
	}
	return contexts, rows.Err()
}

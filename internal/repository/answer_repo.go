package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"quizhub-backend/internal/models"
)

type AnswerRepo struct {
	pool *pgxpool.Pool
}

func NewAnswerRepo(pool *pgxpool.Pool) *AnswerRepo {
	return &AnswerRepo{pool: pool}
}

func (r *AnswerRepo) Create(ctx context.Context, a *models.Answer) error {
	a.ID = uuid.New()
	_, err := r.pool.Exec(ctx,
		"INSERT INTO answers (id, question_id, answer_body, is_true) VALUES ($1, $2, $3, $4)",
		a.ID, a.QuestionID, a.AnswerBody, a.IsTrue,
	)
	return err
}

func (r *AnswerRepo) Update(ctx context.Context, id uuid.UUID, body string, isTrue bool) error {
	tag, err := r.pool.Exec(ctx,
		"UPDATE answers SET answer_body = $1, is_true = $2 WHERE id = $3", body, isTrue, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("answer %s not found", id)
	}
	return nil
}

func (r *AnswerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM answers WHERE id = $1", id)
	return err
}

func (r *AnswerRepo) ListByQuestion(ctx context.Context, questionID uuid.UUID) ([]*models.Answer, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT id, question_id, answer_body, is_true FROM answers WHERE question_id = $1 ORDER BY id",
		questionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var answers []*models.Answer
	for rows.Next() {
		a := &models.Answer{}
		if err := rows.Scan(&a.ID, &a.QuestionID, &a.AnswerBody, &a.IsTrue); err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}

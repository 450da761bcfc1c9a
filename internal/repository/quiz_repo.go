package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"quizhub-backend/internal/models"
)

type QuizRepo struct {
	pool *pgxpool.Pool
}

func NewQuizRepo(pool *pgxpool.Pool) *QuizRepo {
	return &QuizRepo{pool: pool}
}

// Create inserts the quiz and links its topics, creating any topic seen for
// the first time, in one transaction.
func (r *QuizRepo) Create(ctx context.Context, quiz *models.Quiz) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	quiz.ID = uuid.New()
	err = tx.QueryRow(ctx,
		`INSERT INTO quizzes (id, title, description, difficulty, time_limit_minutes)
		 VALUES ($1, $2, $3, $4, $5) RETURNING created_at`,
		quiz.ID, quiz.Title, quiz.Description, quiz.Difficulty, quiz.Time,
	).Scan(&quiz.CreatedAt)
	if err != nil {
		return err
	}

	for _, about := range quiz.Topics {
		var topicID uuid.UUID
		err = tx.QueryRow(ctx,
			`INSERT INTO topics (id, about) VALUES ($1, $2)
			 ON CONFLICT (about) DO UPDATE SET about = EXCLUDED.about
			 RETURNING id`,
			uuid.New(), about,
		).Scan(&topicID)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx,
			"INSERT INTO quiz_topics (quiz_id, topic_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
			quiz.ID, topicID,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *QuizRepo) Update(ctx context.Context, quiz *models.Quiz) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE quizzes SET title = $1, description = $2, difficulty = $3, time_limit_minutes = $4
		 WHERE id = $5`,
		quiz.Title, quiz.Description, quiz.Difficulty, quiz.Time, quiz.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("quiz %s not found", quiz.ID)
	}

	if _, err = tx.Exec(ctx, "DELETE FROM quiz_topics WHERE quiz_id = $1", quiz.ID); err != nil {
		return err
	}
	for _, about := range quiz.Topics {
		var topicID uuid.UUID
		err = tx.QueryRow(ctx,
			`INSERT INTO topics (id, about) VALUES ($1, $2)
			 ON CONFLICT (about) DO UPDATE SET about = EXCLUDED.about
			 RETURNING id`,
			uuid.New(), about,
		).Scan(&topicID)
		if err != nil {
			return err
		}
		if _, err = tx.Exec(ctx,
			"INSERT INTO quiz_topics (quiz_id, topic_id) VALUES ($1, $2)", quiz.ID, topicID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// List returns quizzes matching the filter, newest first, with their topics.
func (r *QuizRepo) List(ctx context.Context, filter models.QuizFilter) ([]*models.Quiz, error) {
	query := `
		SELECT DISTINCT q.id, q.title, q.description, q.difficulty, q.time_limit_minutes, q.created_at
		FROM quizzes q
		LEFT JOIN quiz_topics qt ON qt.quiz_id = q.id
		LEFT JOIN topics t ON t.id = qt.topic_id
		WHERE 1=1`
	args := []interface{}{}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(" AND (q.title ILIKE $%d OR q.description ILIKE $%d)", len(args), len(args))
	}
	if filter.Difficulty != "" {
		args = append(args, filter.Difficulty)
		query += fmt.Sprintf(" AND q.difficulty = $%d", len(args))
	}
	if filter.Topic != "" {
		args = append(args, filter.Topic)
		query += fmt.Sprintf(" AND t.about = $%d", len(args))
	}
	query += " ORDER BY q.created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quizzes []*models.Quiz
	for rows.Next() {
		q := &models.Quiz{}
		if err := rows.Scan(&q.ID, &q.Title, &q.Description, &q.Difficulty, &q.Time, &q.CreatedAt); err != nil {
			return nil, err
		}
		quizzes = append(quizzes, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, q := range quizzes {
		topics, err := r.topicsFor(ctx, q.ID)
		if err != nil {
			return nil, err
		}
		q.Topics = topics
	}
	return quizzes, nil
}

func (r *QuizRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Quiz, error) {
	q := &models.Quiz{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, description, difficulty, time_limit_minutes, created_at
		 FROM quizzes WHERE id = $1`, id,
	).Scan(&q.ID, &q.Title, &q.Description, &q.Difficulty, &q.Time, &q.CreatedAt)
	if err != nil {
		return nil, err
	}

	q.Topics, err = r.topicsFor(ctx, id)
	if err != nil {
		return nil, err
	}
	return q, nil
}

func (r *QuizRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM quizzes WHERE id = $1", id)
	return err
}

func (r *QuizRepo) topicsFor(ctx context.Context, quizID uuid.UUID) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT t.about FROM topics t
		 JOIN quiz_topics qt ON qt.topic_id = t.id
		 WHERE qt.quiz_id = $1 ORDER BY t.about`, quizID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var topics []string
	for rows.Next() {
		var about string
		if err := rows.Scan(&about); err != nil {
			return nil, err
		}
		topics = append(topics, about)
	}
	return topics, rows.Err()
}

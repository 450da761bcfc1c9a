package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"quizhub-backend/internal/models"
)

type ResultRepo struct {
	pool *pgxpool.Pool
}

func NewResultRepo(pool *pgxpool.Pool) *ResultRepo {
	return &ResultRepo{pool: pool}
}

// SaveWithAnswers persists a result row and its answer-audit rows in one
// transaction, so a crash never leaves a result without its answers. The
// assigned result id is threaded into every audit row.
func (r *ResultRepo) SaveWithAnswers(ctx context.Context, result *models.Result, answers []models.UserAnswer) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	result.ID = uuid.New()
	_, err = tx.Exec(ctx,
		`INSERT INTO results (id, quiz_id, user_id, points, max_points, date_of_play)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		result.ID, result.QuizID, result.UserID, result.Points, result.MaxPoints, result.DateOfPlay,
	)
	if err != nil {
		return err
	}

	for i := range answers {
		answers[i].ID = uuid.New()
		answers[i].ResultID = result.ID
		answers[i].UserID = result.UserID
		_, err = tx.Exec(ctx,
			`INSERT INTO user_answers (id, result_id, user_id, question_id, answer_body, is_true)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			answers[i].ID, answers[i].ResultID, answers[i].UserID,
			answers[i].QuestionID, answers[i].AnswerBody, answers[i].IsTrue,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

const resultColumns = `
	r.id, r.quiz_id, r.user_id, r.points, r.max_points, r.date_of_play,
	q.title, q.description, q.difficulty, q.time_limit_minutes, q.created_at,
	u.username, u.profile_image`

func (r *ResultRepo) scanResults(rows pgx.Rows) ([]*models.Result, error) {
	var results []*models.Result
	for rows.Next() {
		res := &models.Result{Quiz: &models.Quiz{}, User: &models.User{}}
		err := rows.Scan(
			&res.ID, &res.QuizID, &res.UserID, &res.Points, &res.MaxPoints, &res.DateOfPlay,
			&res.Quiz.Title, &res.Quiz.Description, &res.Quiz.Difficulty, &res.Quiz.Time, &res.Quiz.CreatedAt,
			&res.User.Username, &res.User.ProfileImage,
		)
		if err != nil {
			return nil, err
		}
		res.Quiz.ID = res.QuizID
		res.User.ID = res.UserID
		results = append(results, res)
	}
	return results, rows.Err()
}

func (r *ResultRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Result, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+resultColumns+`
		FROM results r
		JOIN quizzes q ON q.id = r.quiz_id
		JOIN users u ON u.id = r.user_id
		WHERE r.user_id = $1
		ORDER BY r.date_of_play DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanResults(rows)
}

func (r *ResultRepo) ListAll(ctx context.Context) ([]*models.Result, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+resultColumns+`
		FROM results r
		JOIN quizzes q ON q.id = r.quiz_id
		JOIN users u ON u.id = r.user_id
		ORDER BY r.date_of_play DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanResults(rows)
}

// ListForLeaderboard fetches results narrowed by quiz and time window;
// ranking happens in the service layer.
func (r *ResultRepo) ListForLeaderboard(ctx context.Context, filter models.LeaderboardFilter) ([]*models.Result, error) {
	query := `
		SELECT ` + resultColumns + `
		FROM results r
		JOIN quizzes q ON q.id = r.quiz_id
		JOIN users u ON u.id = r.user_id
		WHERE 1=1`
	args := []interface{}{}

	if filter.QuizID != nil {
		args = append(args, *filter.QuizID)
		query += fmt.Sprintf(" AND r.quiz_id = $%d", len(args))
	}
	switch filter.Period {
	case "This Week":
		query += " AND r.date_of_play >= NOW() - INTERVAL '7 days'"
	case "This Month":
		query += " AND r.date_of_play >= NOW() - INTERVAL '30 days'"
	}
	// Newest first, so the service's stable sort breaks percentage ties by
	// recency rather than row order.
	query += " ORDER BY r.date_of_play DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanResults(rows)
}

func (r *ResultRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Result, error) {
	res := &models.Result{}
	err := r.pool.QueryRow(ctx,
		"SELECT id, quiz_id, user_id, points, max_points, date_of_play FROM results WHERE id = $1", id,
	).Scan(&res.ID, &res.QuizID, &res.UserID, &res.Points, &res.MaxPoints, &res.DateOfPlay)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (r *ResultRepo) GetUserAnswers(ctx context.Context, resultID uuid.UUID) ([]*models.UserAnswer, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, result_id, user_id, question_id, answer_body, is_true
		 FROM user_answers WHERE result_id = $1 ORDER BY id`, resultID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var answers []*models.UserAnswer
	for rows.Next() {
		a := &models.UserAnswer{}
		if err := rows.Scan(&a.ID, &a.ResultID, &a.UserID, &a.QuestionID, &a.AnswerBody, &a.IsTrue); err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"quizhub-backend/internal/models"
)

type TopicRepo struct {
	pool *pgxpool.Pool
}

func NewTopicRepo(pool *pgxpool.Pool) *TopicRepo {
	return &TopicRepo{pool: pool}
}

func (r *TopicRepo) Create(ctx context.Context, topic *models.Topic) error {
	topic.ID = uuid.New()
	query := `INSERT INTO topics (id, about) VALUES ($1, $2)
		ON CONFLICT (about) DO UPDATE SET about = EXCLUDED.about
		RETURNING id`
	return r.pool.QueryRow(ctx, query, topic.ID, topic.About).Scan(&topic.ID)
}

func (r *TopicRepo) List(ctx context.Context) ([]*models.Topic, error) {
	rows, err := r.pool.Query(ctx, "SELECT id, about FROM topics ORDER BY about")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var topics []*models.Topic
	for rows.Next() {
		t := &models.Topic{}
		if err := rows.Scan(&t.ID, &t.About); err != nil {
			return nil, err
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}

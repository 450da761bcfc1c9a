package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"

	"quizhub-backend/internal/models"
	"quizhub-backend/internal/repository"
	"quizhub-backend/internal/scoring"
)

type ResultService struct {
	resultRepo *repository.ResultRepo
	redis      *redis.Client
	cacheTTL   time.Duration
}

func NewResultService(resultRepo *repository.ResultRepo, redisClient *redis.Client, cacheTTL time.Duration) *ResultService {
	return &ResultService{
		resultRepo: resultRepo,
		redis:      redisClient,
		cacheTTL:   cacheTTL,
	}
}

func (s *ResultService) UserResults(ctx context.Context, userID uuid.UUID) ([]*models.Result, error) {
	return s.resultRepo.ListByUser(ctx, userID)
}

func (s *ResultService) AllResults(ctx context.Context) ([]*models.Result, error) {
	return s.resultRepo.ListAll(ctx)
}

// UserAnswers returns the per-question audit rows of a result. Users may only
// read their own results; admins may read any.
func (s *ResultService) UserAnswers(ctx context.Context, resultID, callerID uuid.UUID, callerRole string) ([]*models.UserAnswer, error) {
	result, err := s.resultRepo.GetByID(ctx, resultID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "Result not found"}
		}
		return nil, err
	}
	if result.UserID != callerID && callerRole != models.RoleAdmin {
		return nil, &ForbiddenError{Message: "Access denied"}
	}
	return s.resultRepo.GetUserAnswers(ctx, resultID)
}

// Leaderboard ranks results by percentage descending. Percentage is derived
// from the stored points, never re-scored. Filtered snapshots are cached in
// redis for a short TTL since the dashboard polls this endpoint.
func (s *ResultService) Leaderboard(ctx context.Context, filter models.LeaderboardFilter) ([]models.LeaderboardEntry, error) {
	cacheKey := leaderboardCacheKey(filter)
	if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
		var entries []models.LeaderboardEntry
		if json.Unmarshal([]byte(cached), &entries) == nil {
			return entries, nil
		}
	}

	results, err := s.resultRepo.ListForLeaderboard(ctx, filter)
	if err != nil {
		return nil, err
	}

	entries := rankResults(results)

	if payload, err := json.Marshal(entries); err == nil {
		s.redis.Set(ctx, cacheKey, payload, s.cacheTTL)
	}

	return entries, nil
}

// rankResults orders results by percentage descending and assigns positions.
// The sort is stable so equal scores keep the repository's date ordering.
func rankResults(results []*models.Result) []models.LeaderboardEntry {
	entries := make([]models.LeaderboardEntry, 0, len(results))
	for _, r := range results {
		entry := models.LeaderboardEntry{
			Points:     r.Points,
			MaxPoints:  r.MaxPoints,
			Percentage: scoring.Percentage(r.Points, r.MaxPoints),
			DateOfPlay: r.DateOfPlay,
		}
		if r.User != nil {
			entry.Username = r.User.Username
			entry.ProfileImage = r.User.ProfileImage
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Percentage > entries[j].Percentage
	})
	for i := range entries {
		entries[i].Position = i + 1
	}
	return entries
}

func leaderboardCacheKey(filter models.LeaderboardFilter) string {
	quiz := "all"
	if filter.QuizID != nil {
		quiz = filter.QuizID.String()
	}
	period := filter.Period
	if period == "" {
		period = "all-time"
	}
	return fmt.Sprintf("leaderboard:%s:%s", quiz, period)
}

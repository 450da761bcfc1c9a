package services

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"quizhub-backend/internal/models"
)

func TestRankResults(t *testing.T) {
	mkResult := func(username string, points, maxPoints float64, playedAt time.Time) *models.Result {
		return &models.Result{
			ID:         uuid.New(),
			Points:     points,
			MaxPoints:  maxPoints,
			DateOfPlay: playedAt,
			User:       &models.User{Username: username},
		}
	}

	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	results := []*models.Result{
		mkResult("carol", 3, 6, base),                    // 50%
		mkResult("alice", 10, 10, base.Add(-time.Hour)),  // 100%
		mkResult("bob", 2, 3, base.Add(-2*time.Hour)),    // 67%
		mkResult("dave", 0, 5, base.Add(-3*time.Hour)),   // 0%
		mkResult("erin", 1, 2, base.Add(-4*time.Hour)),   // 50%, after carol
	}

	entries := rankResults(results)

	if len(entries) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(entries))
	}

	wantOrder := []string{"alice", "bob", "carol", "erin", "dave"}
	wantPct := []float64{100, 67, 50, 50, 0}
	for i, entry := range entries {
		if entry.Username != wantOrder[i] {
			t.Errorf("position %d: expected %q, got %q", i+1, wantOrder[i], entry.Username)
		}
		if entry.Percentage != wantPct[i] {
			t.Errorf("position %d: expected percentage %v, got %v", i+1, wantPct[i], entry.Percentage)
		}
		if entry.Position != i+1 {
			t.Errorf("position %d: entry reports position %d", i+1, entry.Position)
		}
	}
}

func TestRankResults_Empty(t *testing.T) {
	entries := rankResults(nil)
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
}

func TestRankResults_MissingUser(t *testing.T) {
	entries := rankResults([]*models.Result{{Points: 1, MaxPoints: 2}})
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Username != "" {
		t.Errorf("expected empty username, got %q", entries[0].Username)
	}
	if entries[0].Percentage != 50 {
		t.Errorf("expected percentage 50, got %v", entries[0].Percentage)
	}
}

package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/myenglish-scheduler/internal/domain"
)

// Now returns the current time truncated to PostgreSQL precision.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// SeedCard inserts a fresh card for ownerID at stage 0 with version 1.
func SeedCard(t *testing.T, pool *pgxpool.Pool, ownerID uuid.UUID) domain.Card {
	t.Helper()

	now := Now()
	card := domain.Card{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Item:      domain.ItemRef{Kind: domain.ItemKindVocabulary, ID: uuid.New()},
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO cards (id, owner_id, item_kind, item_id, version, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		card.ID, card.OwnerID, string(card.Item.Kind), card.Item.ID, card.Version, card.CreatedAt, card.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCard: %v", err)
	}

	return card
}

// SeedDueCard inserts a card scheduled for nextReviewAt at the given stage.
func SeedDueCard(t *testing.T, pool *pgxpool.Pool, ownerID uuid.UUID, stage int, nextReviewAt time.Time) domain.Card {
	t.Helper()

	card := SeedCard(t, pool, ownerID)
	_, err := pool.Exec(context.Background(),
		`UPDATE cards SET stage = $2, next_review_at = $3 WHERE id = $1`,
		card.ID, stage, nextReviewAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedDueCard: %v", err)
	}

	card.Stage = stage
	card.NextReviewAt = &nextReviewAt
	return card
}

// SeedFolder inserts an active folder for the given day and links cards to it.
func SeedFolder(t *testing.T, pool *pgxpool.Pool, ownerID uuid.UUID, day time.Time, cards ...domain.Card) domain.Folder {
	t.Helper()
	ctx := context.Background()

	now := Now()
	folder := domain.Folder{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Date:        time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
		AlarmActive: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO folders (id, owner_id, date, alarm_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		folder.ID, folder.OwnerID, folder.Date, folder.AlarmActive, folder.CreatedAt, folder.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedFolder insert folder: %v", err)
	}

	for _, c := range cards {
		_, err := pool.Exec(ctx,
			`INSERT INTO folder_items (folder_id, card_id) VALUES ($1, $2)`,
			folder.ID, c.ID,
		)
		if err != nil {
			t.Fatalf("testhelper: SeedFolder insert item: %v", err)
		}
	}

	return folder
}

// SeedUserStat inserts a daily stat row.
func SeedUserStat(t *testing.T, pool *pgxpool.Pool, ownerID uuid.UUID, day time.Time, solved, wrongDue int) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO user_stats (owner_id, date, solved_count, unresolved_wrong_due)
		 VALUES ($1, $2, $3, $4)`,
		ownerID, day, solved, wrongDue,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUserStat: %v", err)
	}
}

// SeedStreak inserts a streak row.
func SeedStreak(t *testing.T, pool *pgxpool.Pool, ownerID uuid.UUID, streak int, evaluatedFor *time.Time) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO user_streaks (owner_id, streak, evaluated_for) VALUES ($1, $2, $3)`,
		ownerID, streak, evaluatedFor,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedStreak: %v", err)
	}
}

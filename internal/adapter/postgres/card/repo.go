// Package card implements the Card store using PostgreSQL.
package card

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/myenglish-scheduler/internal/adapter/postgres"
	"github.com/heartmarshall/myenglish-scheduler/internal/domain"
)

var columns = []string{
	"id", "owner_id", "item_kind", "item_id", "stage", "correct_total", "wrong_total",
	"is_from_wrong_answer", "wrong_answer", "next_review_at", "waiting_until",
	"last_reviewed_at", "is_overdue", "overdue_start_at", "overdue_deadline",
	"frozen_until", "is_mastered", "version", "created_at", "updated_at",
}

// Columns returns the card column list, each prefixed with alias when set.
// The order matches Scan.
func Columns(alias string) []string {
	if alias == "" {
		return columns
	}
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = alias + "." + c
	}
	return out
}

// Repo provides card persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new card repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// LoadCard returns a card by primary key.
func (r *Repo) LoadCard(ctx context.Context, id uuid.UUID) (domain.Card, error) {
	row := postgres.QueryRow(ctx, r.pool,
		postgres.Builder.Select(columns...).From("cards").Where(sq.Eq{"id": id}))

	c, err := Scan(row)
	if err != nil {
		return domain.Card{}, postgres.MapError(err, "card", id)
	}
	return c, nil
}

// SaveCard inserts the card or updates it when the stored version still
// equals card.Version. The stored version becomes card.Version+1.
// A stale version yields domain.ErrConflict.
func (r *Repo) SaveCard(ctx context.Context, card domain.Card) error {
	wrong, err := encodeWrongAnswer(card.WrongAnswer)
	if err != nil {
		return fmt.Errorf("card %s: %w", card.ID, err)
	}

	createdAt := card.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	stmt := postgres.Builder.Insert("cards").
		Columns(columns...).
		Values(
			card.ID, card.OwnerID, string(card.Item.Kind), card.Item.ID, card.Stage,
			card.CorrectTotal, card.WrongTotal, card.IsFromWrongAnswer, wrong,
			card.NextReviewAt, card.WaitingUntil, card.LastReviewedAt, card.IsOverdue,
			card.OverdueStartAt, card.OverdueDeadline, card.FrozenUntil, card.IsMastered,
			card.Version+1, createdAt, sq.Expr("now()"),
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			stage = EXCLUDED.stage,
			correct_total = EXCLUDED.correct_total,
			wrong_total = EXCLUDED.wrong_total,
			is_from_wrong_answer = EXCLUDED.is_from_wrong_answer,
			wrong_answer = EXCLUDED.wrong_answer,
			next_review_at = EXCLUDED.next_review_at,
			waiting_until = EXCLUDED.waiting_until,
			last_reviewed_at = EXCLUDED.last_reviewed_at,
			is_overdue = EXCLUDED.is_overdue,
			overdue_start_at = EXCLUDED.overdue_start_at,
			overdue_deadline = EXCLUDED.overdue_deadline,
			frozen_until = EXCLUDED.frozen_until,
			is_mastered = EXCLUDED.is_mastered,
			version = cards.version + 1,
			updated_at = now()
		WHERE cards.version = ?`, card.Version)

	n, err := postgres.Exec(ctx, r.pool, stmt)
	if err != nil {
		return postgres.MapError(err, "card", card.ID)
	}
	if n == 0 {
		return fmt.Errorf("card %s: version %d is stale: %w", card.ID, card.Version, domain.ErrConflict)
	}
	return nil
}

// ListDueCards returns the owner's non-mastered cards whose review time, freeze
// end or overdue window needs attention at now, earliest first.
func (r *Repo) ListDueCards(ctx context.Context, ownerID uuid.UUID, now time.Time) ([]domain.Card, error) {
	stmt := postgres.Builder.Select(columns...).
		From("cards").
		Where(sq.Eq{"owner_id": ownerID, "is_mastered": false}).
		Where(sq.Or{
			sq.LtOrEq{"next_review_at": now},
			sq.LtOrEq{"frozen_until": now},
			sq.Eq{"is_overdue": true},
		}).
		OrderBy("next_review_at ASC NULLS LAST", "id")

	rows, err := postgres.Query(ctx, r.pool, stmt)
	if err != nil {
		return nil, fmt.Errorf("list due cards: %w", err)
	}
	defer rows.Close()

	cards := []domain.Card{}
	for rows.Next() {
		c, err := Scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list due cards: %w", err)
	}

	return cards, nil
}

// Scan reads a row selected with Columns. Extra destinations are scanned
// after the card columns.
func Scan(row pgx.Row, extra ...any) (domain.Card, error) {
	var (
		c     domain.Card
		kind  string
		wrong []byte
	)

	dest := append([]any{
		&c.ID, &c.OwnerID, &kind, &c.Item.ID, &c.Stage, &c.CorrectTotal, &c.WrongTotal,
		&c.IsFromWrongAnswer, &wrong, &c.NextReviewAt, &c.WaitingUntil,
		&c.LastReviewedAt, &c.IsOverdue, &c.OverdueStartAt, &c.OverdueDeadline,
		&c.FrozenUntil, &c.IsMastered, &c.Version, &c.CreatedAt, &c.UpdatedAt,
	}, extra...)

	if err := row.Scan(dest...); err != nil {
		return domain.Card{}, err
	}

	c.Item.Kind = domain.ItemKind(kind)

	answer, err := decodeWrongAnswer(wrong)
	if err != nil {
		return domain.Card{}, err
	}
	c.WrongAnswer = answer

	return c, nil
}

// Package userstat implements the daily stat and streak store using PostgreSQL.
package userstat

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/myenglish-scheduler/internal/adapter/postgres"
	"github.com/heartmarshall/myenglish-scheduler/internal/domain"
)

// Every learner with either a stat row for the day or a streak row. A learner
// without stats for the day is reported with zero counts.
const listWithStatsSQL = `
SELECT COALESCE(s.owner_id, k.owner_id),
       COALESCE(s.solved_count, 0),
       COALESCE(s.unresolved_wrong_due, 0),
       COALESCE(k.streak, 0),
       k.evaluated_for
FROM (SELECT owner_id, solved_count, unresolved_wrong_due
      FROM user_stats WHERE date = $1::date) s
FULL OUTER JOIN user_streaks k ON k.owner_id = s.owner_id
ORDER BY 1`

// Repo provides stat persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user stat repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ListUsersWithYesterdayStats returns each learner's stats for date together
// with the current streak state.
func (r *Repo) ListUsersWithYesterdayStats(ctx context.Context, date time.Time) ([]domain.UserStat, error) {
	day := date.Format(time.DateOnly)

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, listWithStatsSQL, day)
	if err != nil {
		return nil, fmt.Errorf("list user stats for %s: %w", day, err)
	}
	defer rows.Close()

	stats := []domain.UserStat{}
	for rows.Next() {
		s := domain.UserStat{Date: date}
		if err := rows.Scan(&s.OwnerID, &s.SolvedCount, &s.UnresolvedWrongDue, &s.Streak, &s.StreakEvaluatedFor); err != nil {
			return nil, fmt.Errorf("scan user stat: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list user stats for %s: %w", day, err)
	}

	return stats, nil
}

// SaveStreak stores the streak value and the day it was evaluated for. A row
// already evaluated for evaluatedFor or a later day is left alone, and false
// is returned.
func (r *Repo) SaveStreak(ctx context.Context, ownerID uuid.UUID, streak int, evaluatedFor time.Time) (bool, error) {
	stmt := postgres.Builder.Insert("user_streaks").
		Columns("owner_id", "streak", "evaluated_for", "updated_at").
		Values(ownerID, streak, evaluatedFor.Format(time.DateOnly), sq.Expr("now()")).
		Suffix(`ON CONFLICT (owner_id) DO UPDATE SET
			streak = EXCLUDED.streak,
			evaluated_for = EXCLUDED.evaluated_for,
			updated_at = now()
		WHERE user_streaks.evaluated_for IS NULL
		   OR user_streaks.evaluated_for < EXCLUDED.evaluated_for`)

	n, err := postgres.Exec(ctx, r.pool, stmt)
	if err != nil {
		return false, postgres.MapError(err, "user_streak", ownerID)
	}
	return n == 1, nil
}

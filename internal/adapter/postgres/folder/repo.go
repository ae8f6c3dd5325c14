// Package folder implements the Folder store using PostgreSQL.
package folder

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/myenglish-scheduler/internal/adapter/postgres"
	"github.com/heartmarshall/myenglish-scheduler/internal/adapter/postgres/card"
	"github.com/heartmarshall/myenglish-scheduler/internal/domain"
)

var folderColumns = []string{
	"id", "owner_id", "parent_id", "date", "alarm_active", "next_alarm_at",
	"reminder_mask", "rollup_date", "created_at", "updated_at",
}

var itemColumns = []string{"folder_id", "card_id", "learned", "wrong_count", "last_reviewed_at"}

// Repo provides folder persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new folder repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// LoadFolderWithCards returns the folder and every linked card. Inside a
// transaction the folder row is locked until commit.
func (r *Repo) LoadFolderWithCards(ctx context.Context, id uuid.UUID) (domain.Folder, []domain.FolderCard, error) {
	row := postgres.QueryRow(ctx, r.pool,
		postgres.Builder.Select(folderColumns...).From("folders").Where(sq.Eq{"id": id}).Suffix("FOR UPDATE"))

	f, err := scanFolder(row)
	if err != nil {
		return domain.Folder{}, nil, postgres.MapError(err, "folder", id)
	}

	cols := append(card.Columns("c"), "fi.learned", "fi.wrong_count", "fi.last_reviewed_at")
	stmt := postgres.Builder.Select(cols...).
		From("folder_items fi").
		Join("cards c ON c.id = fi.card_id").
		Where(sq.Eq{"fi.folder_id": id}).
		OrderBy("c.created_at", "c.id")

	rows, err := postgres.Query(ctx, r.pool, stmt)
	if err != nil {
		return domain.Folder{}, nil, fmt.Errorf("folder %s: list cards: %w", id, err)
	}
	defer rows.Close()

	members := []domain.FolderCard{}
	for rows.Next() {
		item := domain.FolderItem{FolderID: id}
		c, err := card.Scan(rows, &item.Learned, &item.WrongCount, &item.LastReviewedAt)
		if err != nil {
			return domain.Folder{}, nil, fmt.Errorf("folder %s: scan card: %w", id, err)
		}
		item.CardID = c.ID
		members = append(members, domain.FolderCard{Item: item, Card: c})
	}
	if err := rows.Err(); err != nil {
		return domain.Folder{}, nil, fmt.Errorf("folder %s: list cards: %w", id, err)
	}

	return f, members, nil
}

// ListFoldersForDate returns every folder of the given calendar day.
func (r *Repo) ListFoldersForDate(ctx context.Context, date time.Time) ([]domain.Folder, error) {
	stmt := postgres.Builder.Select(folderColumns...).
		From("folders").
		Where(sq.Eq{"date": dateOnly(date)}).
		OrderBy("id")

	rows, err := postgres.Query(ctx, r.pool, stmt)
	if err != nil {
		return nil, fmt.Errorf("list folders for %s: %w", date.Format(time.DateOnly), err)
	}
	defer rows.Close()

	folders := []domain.Folder{}
	for rows.Next() {
		f, err := scanFolder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, f)
	}
	return folders, rows.Err()
}

// ListFolderItems returns the links of a folder.
func (r *Repo) ListFolderItems(ctx context.Context, folderID uuid.UUID) ([]domain.FolderItem, error) {
	stmt := postgres.Builder.Select(itemColumns...).
		From("folder_items").
		Where(sq.Eq{"folder_id": folderID})

	rows, err := postgres.Query(ctx, r.pool, stmt)
	if err != nil {
		return nil, fmt.Errorf("folder %s: list items: %w", folderID, err)
	}
	defer rows.Close()

	items := []domain.FolderItem{}
	for rows.Next() {
		var it domain.FolderItem
		if err := rows.Scan(&it.FolderID, &it.CardID, &it.Learned, &it.WrongCount, &it.LastReviewedAt); err != nil {
			return nil, fmt.Errorf("scan folder item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// SaveFolder inserts the folder or overwrites its mutable state.
func (r *Repo) SaveFolder(ctx context.Context, f domain.Folder) error {
	createdAt := f.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	stmt := postgres.Builder.Insert("folders").
		Columns(folderColumns...).
		Values(
			f.ID, f.OwnerID, f.ParentID, dateOnly(f.Date), f.AlarmActive, f.NextAlarmAt,
			int64(f.ReminderMask), datePtr(f.RollupDate), createdAt, sq.Expr("now()"),
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			parent_id = EXCLUDED.parent_id,
			alarm_active = EXCLUDED.alarm_active,
			next_alarm_at = EXCLUDED.next_alarm_at,
			reminder_mask = EXCLUDED.reminder_mask,
			rollup_date = EXCLUDED.rollup_date,
			updated_at = now()`)

	if _, err := postgres.Exec(ctx, r.pool, stmt); err != nil {
		return postgres.MapError(err, "folder", f.ID)
	}
	return nil
}

// SaveFolderItem inserts or overwrites a folder link.
func (r *Repo) SaveFolderItem(ctx context.Context, item domain.FolderItem) error {
	stmt := postgres.Builder.Insert("folder_items").
		Columns(itemColumns...).
		Values(item.FolderID, item.CardID, item.Learned, item.WrongCount, item.LastReviewedAt).
		Suffix(`ON CONFLICT (folder_id, card_id) DO UPDATE SET
			learned = EXCLUDED.learned,
			wrong_count = EXCLUDED.wrong_count,
			last_reviewed_at = EXCLUDED.last_reviewed_at`)

	if _, err := postgres.Exec(ctx, r.pool, stmt); err != nil {
		return postgres.MapError(err, "folder_item", item.CardID)
	}
	return nil
}

// SetNextAlarm records when the folder alarm fires next.
func (r *Repo) SetNextAlarm(ctx context.Context, folderID uuid.UUID, at time.Time) error {
	n, err := postgres.Exec(ctx, r.pool, postgres.Builder.Update("folders").
		Set("next_alarm_at", at).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": folderID}))
	if err != nil {
		return postgres.MapError(err, "folder", folderID)
	}
	if n == 0 {
		return postgres.MapError(pgx.ErrNoRows, "folder", folderID)
	}
	return nil
}

// MarkSlotSent sets the slot's bit in the reminder mask of an active folder.
// It reports false when the bit was already set or the alarm is off, so only
// one caller claims a slot.
func (r *Repo) MarkSlotSent(ctx context.Context, folderID uuid.UUID, slot int) (bool, error) {
	if slot < 0 || slot >= domain.MaxReminderSlots {
		return false, domain.NewValidationError("slot", fmt.Sprintf("must be in [0, %d)", domain.MaxReminderSlots))
	}
	bit := int64(1) << uint(slot)

	n, err := postgres.Exec(ctx, r.pool, postgres.Builder.Update("folders").
		Set("reminder_mask", sq.Expr("reminder_mask | ?", bit)).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": folderID, "alarm_active": true}).
		Where("reminder_mask & ? = 0", bit))
	if err != nil {
		return false, postgres.MapError(err, "folder", folderID)
	}
	return n > 0, nil
}

// DeactivateOwnerAlarms switches off the active alarms of the owner's folders
// for date and returns how many changed.
func (r *Repo) DeactivateOwnerAlarms(ctx context.Context, ownerID uuid.UUID, date time.Time) (int, error) {
	n, err := postgres.Exec(ctx, r.pool, postgres.Builder.Update("folders").
		Set("alarm_active", false).
		Set("next_alarm_at", nil).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"owner_id": ownerID, "date": dateOnly(date), "alarm_active": true}))
	if err != nil {
		return 0, fmt.Errorf("deactivate alarms of owner %s: %w", ownerID, err)
	}
	return int(n), nil
}

// DeactivateAlarm switches off an active folder alarm and stamps rollupDate.
// It reports false when the alarm was already off.
func (r *Repo) DeactivateAlarm(ctx context.Context, folderID uuid.UUID, rollupDate time.Time) (bool, error) {
	n, err := postgres.Exec(ctx, r.pool, postgres.Builder.Update("folders").
		Set("alarm_active", false).
		Set("next_alarm_at", nil).
		Set("rollup_date", dateOnly(rollupDate)).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": folderID, "alarm_active": true}))
	if err != nil {
		return false, postgres.MapError(err, "folder", folderID)
	}
	return n > 0, nil
}

// ResetReminderMask clears the sent-slot mask once per rollupDate. It reports
// false when the folder was already reset for that date.
func (r *Repo) ResetReminderMask(ctx context.Context, folderID uuid.UUID, rollupDate time.Time) (bool, error) {
	day := dateOnly(rollupDate)
	n, err := postgres.Exec(ctx, r.pool, postgres.Builder.Update("folders").
		Set("reminder_mask", 0).
		Set("rollup_date", day).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": folderID}).
		Where("rollup_date IS DISTINCT FROM ?::date", day))
	if err != nil {
		return false, postgres.MapError(err, "folder", folderID)
	}
	return n > 0, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func scanFolder(row pgx.Row) (domain.Folder, error) {
	var (
		f    domain.Folder
		mask int64
	)
	err := row.Scan(&f.ID, &f.OwnerID, &f.ParentID, &f.Date, &f.AlarmActive, &f.NextAlarmAt,
		&mask, &f.RollupDate, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return domain.Folder{}, err
	}
	f.ReminderMask = uint32(mask)
	return f, nil
}

// dateOnly renders t's calendar day in its own location, the way a DATE
// column stores it.
func dateOnly(t time.Time) string {
	return t.Format(time.DateOnly)
}

func datePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := dateOnly(*t)
	return &s
}

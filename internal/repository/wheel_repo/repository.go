package wheel_repo

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"reward_wheel/internal/model"
	"reward_wheel/internal/repository"
)

const (
	wheelsTable      = "wheels"
	colID            = "id"
	colCampaignID    = "campaign_id"
	colName          = "name"
	colOnlyOnce      = "only_once"
	colPrimaryColor  = "primary_color"
	colContrastColor = "contrast_color"
	colButtonText    = "button_text"
	colSize          = "size"
	colUpDuration    = "up_duration_ms"
	colDownDuration  = "down_duration_ms"
	colCreatedAt     = "created_at"

	segmentsTable  = "wheel_segments"
	colWheelID     = "wheel_id"
	colPosition    = "position"
	colColor       = "color"
	colProbability = "probability"
)

var wheelColumns = []string{
	colID, colCampaignID, colName, colOnlyOnce, colPrimaryColor, colContrastColor,
	colButtonText, colSize, colUpDuration, colDownDuration, colCreatedAt,
}

type repo struct {
	dbc *pgxpool.Pool
}

func NewWheelRepository(dbc *pgxpool.Pool) repository.WheelRepository {
	return &repo{
		dbc: dbc,
	}
}

// CreateWheel - создаёт колесо вместе с сегментами.
// Вызывать внутри транзакции, иначе при ошибке вставки сегментов останется пустое колесо
func (r *repo) CreateWheel(ctx context.Context, wheel *model.Wheel) (int64, error) {
	db := trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc)

	s := wheel.Settings
	query := sq.Insert(wheelsTable).
		Columns(colCampaignID, colName, colOnlyOnce, colPrimaryColor, colContrastColor,
			colButtonText, colSize, colUpDuration, colDownDuration).
		Values(wheel.CampaignID, wheel.Name, wheel.OnlyOnce, s.PrimaryColor, s.ContrastColor,
			s.ButtonText, s.Size, s.UpDuration.Milliseconds(), s.DownDuration.Milliseconds()).
		Suffix("RETURNING " + colID + ", " + colCreatedAt).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	var createdAt time.Time
	if err := db.QueryRow(ctx, sqlStr, args...).Scan(&id, &createdAt); err != nil {
		return 0, err
	}

	if err := r.insertSegments(ctx, id, wheel.Segments); err != nil {
		return 0, err
	}

	wheel.ID = id
	wheel.CreatedAt = createdAt
	return id, nil
}

// GetWheel - колесо с сегментами по ID. ErrWheelNotFound, если записи нет
func (r *repo) GetWheel(ctx context.Context, id int64) (*model.Wheel, error) {
	db := trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc)

	query := sq.Select(wheelColumns...).
		From(wheelsTable).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	wheel, err := scanWheel(db.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrWheelNotFound
		}
		return nil, err
	}

	segments, err := r.segments(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	wheel.Segments = segments[id]
	return wheel, nil
}

// ListWheels - все колёса кампании в порядке создания
func (r *repo) ListWheels(ctx context.Context, campaignID int64) ([]model.Wheel, error) {
	db := trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc)

	query := sq.Select(wheelColumns...).
		From(wheelsTable).
		Where(sq.Eq{colCampaignID: campaignID}).
		OrderBy(colID).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	wheels := make([]model.Wheel, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		w, err := scanWheel(rows)
		if err != nil {
			return nil, err
		}
		wheels = append(wheels, *w)
		ids = append(ids, w.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return wheels, nil
	}

	segments, err := r.segments(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range wheels {
		wheels[i].Segments = segments[wheels[i].ID]
	}
	return wheels, nil
}

// ReplaceSegments - заменяет набор сегментов колеса целиком.
// Строка колеса блокируется, чтобы параллельный спин не увидел половину набора
func (r *repo) ReplaceSegments(ctx context.Context, wheelID int64, segments []model.Segment) error {
	db := trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc)

	lock := sq.Select(colID).
		From(wheelsTable).
		Where(sq.Eq{colID: wheelID}).
		Suffix("FOR UPDATE").
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := lock.ToSql()
	if err != nil {
		return err
	}
	var id int64
	if err := db.QueryRow(ctx, sqlStr, args...).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrWheelNotFound
		}
		return err
	}

	del := sq.Delete(segmentsTable).
		Where(sq.Eq{colWheelID: wheelID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err = del.ToSql()
	if err != nil {
		return err
	}
	if _, err := db.Exec(ctx, sqlStr, args...); err != nil {
		return err
	}

	return r.insertSegments(ctx, wheelID, segments)
}

// DeleteWheel - удаляет колесо. Сегменты и история спинов удаляются каскадно
func (r *repo) DeleteWheel(ctx context.Context, id int64) error {
	db := trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc)

	query := sq.Delete(wheelsTable).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	res, err := db.Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return model.ErrWheelNotFound
	}
	return nil
}

func (r *repo) insertSegments(ctx context.Context, wheelID int64, segments []model.Segment) error {
	if len(segments) == 0 {
		return nil
	}
	db := trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc)

	query := sq.Insert(segmentsTable).
		Columns(colWheelID, colPosition, colName, colColor, colProbability).
		PlaceholderFormat(sq.Dollar)
	for _, s := range segments {
		query = query.Values(wheelID, s.Position, s.Name, s.Color, s.Probability)
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx, sqlStr, args...)
	return err
}

// segments - сегменты нескольких колёс одним запросом, по возрастанию позиции
func (r *repo) segments(ctx context.Context, wheelIDs []int64) (map[int64][]model.Segment, error) {
	db := trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc)

	query := sq.Select(colWheelID, colPosition, colName, colColor, colProbability).
		From(segmentsTable).
		Where(sq.Eq{colWheelID: wheelIDs}).
		OrderBy(colWheelID, colPosition).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[int64][]model.Segment, len(wheelIDs))
	for rows.Next() {
		var wheelID int64
		var s model.Segment
		if err := rows.Scan(&wheelID, &s.Position, &s.Name, &s.Color, &s.Probability); err != nil {
			return nil, err
		}
		result[wheelID] = append(result[wheelID], s)
	}
	return result, rows.Err()
}

func scanWheel(row pgx.Row) (*model.Wheel, error) {
	var w model.Wheel
	var upMS, downMS int64
	err := row.Scan(
		&w.ID, &w.CampaignID, &w.Name, &w.OnlyOnce,
		&w.Settings.PrimaryColor, &w.Settings.ContrastColor, &w.Settings.ButtonText,
		&w.Settings.Size, &upMS, &downMS, &w.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	w.Settings.UpDuration = time.Duration(upMS) * time.Millisecond
	w.Settings.DownDuration = time.Duration(downMS) * time.Millisecond
	return &w, nil
}

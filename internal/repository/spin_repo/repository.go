package spin_repo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"reward_wheel/internal/model"
	"reward_wheel/internal/repository"
)

const (
	table             = "spins"
	colID             = "id"
	colWheelID        = "wheel_id"
	colParticipant    = "participant"
	colWinner         = "winner"
	colFrames         = "frames"
	colFinalAngle     = "final_angle"
	colDurationMS     = "duration_ms"
	colRedemptionCode = "redemption_code"
	colCreatedAt      = "created_at"
)

type repo struct {
	dbc *pgxpool.Pool
}

func NewSpinRepository(dbc *pgxpool.Pool) repository.SpinRepository {
	return &repo{
		dbc: dbc,
	}
}

// LockParticipant - транзакционная advisory-блокировка по паре колесо/участник.
// Вне транзакции блокировка снимается сразу же
func (r *repo) LockParticipant(ctx context.Context, wheelID int64, participant string) error {
	db := trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc)

	query := sq.Select().
		Column(sq.Expr("pg_advisory_xact_lock(hashtextextended(?::text || ':' || ?, 0))", wheelID, participant)).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx, sqlStr, args...)
	return err
}

// CountParticipantSpins - сколько раз участник крутил колесо
func (r *repo) CountParticipantSpins(ctx context.Context, wheelID int64, participant string) (int, error) {
	db := trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc)

	query := sq.Select("COUNT(*)").
		From(table).
		Where(sq.Eq{colWheelID: wheelID, colParticipant: participant}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := db.QueryRow(ctx, sqlStr, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// CreateSpin - сохраняет спин. CreatedAt заполняется базой
func (r *repo) CreateSpin(ctx context.Context, spin *model.SpinRecord) error {
	db := trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc)

	id, err := uuid.Parse(spin.ID)
	if err != nil {
		return fmt.Errorf("spin id: %w", err)
	}

	query := sq.Insert(table).
		Columns(colID, colWheelID, colParticipant, colWinner, colFrames,
			colFinalAngle, colDurationMS, colRedemptionCode).
		Values(id, spin.WheelID, spin.Participant, spin.Winner, spin.Frames,
			spin.FinalAngle, spin.DurationMS, spin.RedemptionCode).
		Suffix("RETURNING " + colCreatedAt).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	return db.QueryRow(ctx, sqlStr, args...).Scan(&spin.CreatedAt)
}

// ListSpins - последние спины колеса, новые первыми
func (r *repo) ListSpins(ctx context.Context, wheelID int64, limit int) ([]model.SpinRecord, error) {
	db := trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc)

	query := sq.Select(colID+"::text", colWheelID, colParticipant, colWinner, colFrames,
		colFinalAngle, colDurationMS, colRedemptionCode, colCreatedAt).
		From(table).
		Where(sq.Eq{colWheelID: wheelID}).
		OrderBy(colCreatedAt + " DESC").
		Limit(uint64(limit)).
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

	spins := make([]model.SpinRecord, 0, limit)
	for rows.Next() {
		var s model.SpinRecord
		err := rows.Scan(&s.ID, &s.WheelID, &s.Participant, &s.Winner, &s.Frames,
			&s.FinalAngle, &s.DurationMS, &s.RedemptionCode, &s.CreatedAt)
		if err != nil {
			return nil, err
		}
		spins = append(spins, s)
	}
	return spins, rows.Err()
}

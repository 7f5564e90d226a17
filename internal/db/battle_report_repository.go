package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/battlecore/internal/game/combat"
	"github.com/udisondev/battlecore/internal/sim"
)

const reportColumns = `id, scenario, seed, victor, turns, timed_out, duration_us,
	digest, experience, gold, log, created_at`

// BattleReportRepository stores finished battles with their event logs.
type BattleReportRepository struct {
	pool *pgxpool.Pool
}

// NewBattleReportRepository creates a battle report repository.
func NewBattleReportRepository(pool *pgxpool.Pool) *BattleReportRepository {
	return &BattleReportRepository{pool: pool}
}

// Create stores a report, filling in an empty ID and CreatedAt.
func (r *BattleReportRepository) Create(ctx context.Context, report *sim.Report) error {
	if report.Result == nil {
		return fmt.Errorf("creating battle report %s: nil result", report.ID)
	}
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now()
	}

	res := report.Result
	log := res.Log
	if log == nil {
		log = combat.Log{}
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO battle_reports (`+reportColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		report.ID, report.Scenario, int64(res.Seed), res.Victor.String(), res.Turns, res.TimedOut,
		res.Duration.Microseconds(), res.Digest[:], report.Experience, report.Gold, log, report.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating battle report %s: %w", report.ID, err)
	}
	return nil
}

// Get loads a report by ID. Returns ErrNotFound if there is none.
func (r *BattleReportRepository) Get(ctx context.Context, id uuid.UUID) (*sim.Report, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+reportColumns+` FROM battle_reports WHERE id = $1`, id)
	report, err := scanReport(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("battle report %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("loading battle report %s: %w", id, err)
	}
	return report, nil
}

// FindByDigest returns every report with the given log digest, newest first.
// Matching digests mean replays of the same battle.
func (r *BattleReportRepository) FindByDigest(ctx context.Context, digest [32]byte) ([]*sim.Report, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+reportColumns+` FROM battle_reports WHERE digest = $1 ORDER BY created_at DESC`,
		digest[:],
	)
	if err != nil {
		return nil, fmt.Errorf("querying battle reports by digest: %w", err)
	}
	defer rows.Close()

	var out []*sim.Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning battle report: %w", err)
		}
		out = append(out, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating battle reports: %w", err)
	}
	return out, nil
}

// Recent returns the latest limit reports of a scenario.
func (r *BattleReportRepository) Recent(ctx context.Context, scenario string, limit int) ([]*sim.Report, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+reportColumns+` FROM battle_reports
		 WHERE scenario = $1 ORDER BY created_at DESC LIMIT $2`,
		scenario, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying recent battle reports: %w", err)
	}
	defer rows.Close()

	var out []*sim.Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning battle report: %w", err)
		}
		out = append(out, report)
	}
	return out, rows.Err()
}

func scanReport(row pgx.Row) (*sim.Report, error) {
	var (
		report     sim.Report
		res        combat.Result
		seed       int64
		victor     string
		durationUS int64
		digest     []byte
	)
	err := row.Scan(
		&report.ID, &report.Scenario, &seed, &victor, &res.Turns, &res.TimedOut, &durationUS,
		&digest, &report.Experience, &report.Gold, &res.Log, &report.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if res.Victor, err = combat.ParseOutcome(victor); err != nil {
		return nil, fmt.Errorf("battle report %s: %w", report.ID, err)
	}
	if len(digest) != len(res.Digest) {
		return nil, fmt.Errorf("battle report %s: digest is %d bytes", report.ID, len(digest))
	}
	copy(res.Digest[:], digest)
	res.Seed = uint64(seed)
	res.Duration = time.Duration(durationUS) * time.Microsecond

	report.Result = &res
	return &report, nil
}

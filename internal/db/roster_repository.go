package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/battlecore/internal/model"
)

const rosterColumns = `id, name, role, element, rarity, level, stars, line,
	hp, atk, def, speed, crit_rate, crit_damage, dodge, accuracy, morale,
	equipment, basic, skill, ultimate, passives`

// RosterRepository stores the hero and monster records battles are built from.
type RosterRepository struct {
	pool *pgxpool.Pool
}

// NewRosterRepository creates a roster repository.
func NewRosterRepository(pool *pgxpool.Pool) *RosterRepository {
	return &RosterRepository{pool: pool}
}

// Record loads a record by ID. Returns ErrNotFound if there is none.
func (r *RosterRepository) Record(ctx context.Context, id string) (model.Record, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+rosterColumns+` FROM roster WHERE id = $1`, id)
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Record{}, fmt.Errorf("roster record %q: %w", id, ErrNotFound)
		}
		return model.Record{}, fmt.Errorf("loading roster record %q: %w", id, err)
	}
	return rec, nil
}

// List returns every record ordered by ID.
func (r *RosterRepository) List(ctx context.Context) ([]model.Record, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+rosterColumns+` FROM roster ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing roster: %w", err)
	}
	defer rows.Close()

	var out []model.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning roster row: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating roster: %w", err)
	}
	return out, nil
}

// Save inserts or updates a record by ID.
func (r *RosterRepository) Save(ctx context.Context, rec model.Record) error {
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("saving roster record: %w", err)
	}

	passives := rec.Loadout.Passives
	if passives == nil {
		passives = []string{}
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO roster (`+rosterColumns+`, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, now())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, role = EXCLUDED.role, element = EXCLUDED.element,
			rarity = EXCLUDED.rarity, level = EXCLUDED.level, stars = EXCLUDED.stars,
			line = EXCLUDED.line, hp = EXCLUDED.hp, atk = EXCLUDED.atk, def = EXCLUDED.def,
			speed = EXCLUDED.speed, crit_rate = EXCLUDED.crit_rate, crit_damage = EXCLUDED.crit_damage,
			dodge = EXCLUDED.dodge, accuracy = EXCLUDED.accuracy, morale = EXCLUDED.morale,
			equipment = EXCLUDED.equipment, basic = EXCLUDED.basic, skill = EXCLUDED.skill,
			ultimate = EXCLUDED.ultimate, passives = EXCLUDED.passives, updated_at = now()`,
		rec.ID, rec.Name, rec.Role.String(), rec.Element.String(), rec.Rarity.String(),
		rec.Level, rec.Stars, rec.Line.String(),
		rec.Base.HP, rec.Base.Atk, rec.Base.Def, rec.Base.Speed,
		rec.Base.CritRate, rec.Base.CritDamage, rec.Base.Dodge, rec.Base.Accuracy, rec.Base.Morale,
		rec.Equipment, rec.Loadout.Basic, rec.Loadout.Skill, rec.Loadout.Ultimate, passives,
	)
	if err != nil {
		return fmt.Errorf("saving roster record %q: %w", rec.ID, err)
	}
	return nil
}

// Delete removes a record. Returns ErrNotFound if there is none.
func (r *RosterRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM roster WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting roster record %q: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("roster record %q: %w", id, ErrNotFound)
	}
	return nil
}

func scanRecord(row pgx.Row) (model.Record, error) {
	var (
		rec                         model.Record
		role, element, rarity, line string
	)
	err := row.Scan(
		&rec.ID, &rec.Name, &role, &element, &rarity, &rec.Level, &rec.Stars, &line,
		&rec.Base.HP, &rec.Base.Atk, &rec.Base.Def, &rec.Base.Speed,
		&rec.Base.CritRate, &rec.Base.CritDamage, &rec.Base.Dodge, &rec.Base.Accuracy, &rec.Base.Morale,
		&rec.Equipment, &rec.Loadout.Basic, &rec.Loadout.Skill, &rec.Loadout.Ultimate, &rec.Loadout.Passives,
	)
	if err != nil {
		return rec, err
	}

	if rec.Role, err = model.ParseRole(role); err != nil {
		return rec, fmt.Errorf("record %q: %w", rec.ID, err)
	}
	if rec.Element, err = model.ParseElement(element); err != nil {
		return rec, fmt.Errorf("record %q: %w", rec.ID, err)
	}
	if rec.Rarity, err = model.ParseRarity(rarity); err != nil {
		return rec, fmt.Errorf("record %q: %w", rec.ID, err)
	}
	if rec.Line, err = model.ParseLine(line); err != nil {
		return rec, fmt.Errorf("record %q: %w", rec.ID, err)
	}
	return rec, nil
}

package model

import (
	"errors"
	"fmt"
)

const (
	// MaxFormationSize is the largest number of participants on one side.
	MaxFormationSize = 5
	// MaxLevel and MaxStars bound a record's progression.
	MaxLevel = 200
	MaxStars = 10
)

var (
	// ErrEmptyFormation means a side has no participants.
	ErrEmptyFormation = errors.New("formation is empty")
	// ErrFormationTooLarge means a side exceeds MaxFormationSize.
	ErrFormationTooLarge = errors.New("formation is too large")
	// ErrDuplicateParticipant means a participant id repeats within a battle.
	ErrDuplicateParticipant = errors.New("duplicate participant id")
	// ErrMalformedRecord means a hero or monster record is invalid.
	ErrMalformedRecord = errors.New("malformed participant record")
)

// Record is the stored data of a hero or monster.
// Battle initialisation builds a Participant from it.
type Record struct {
	ID        string
	Name      string
	Role      Role
	Element   Element
	Rarity    Rarity
	Level     int32
	Stars     int32
	Line      Line
	Base      Stats
	Equipment Stats // аддитивный бонус экипировки
	Loadout   Loadout
}

// Validate checks that a record can enter a battle.
func (r Record) Validate() error {
	switch {
	case r.ID == "":
		return fmt.Errorf("%w: empty id", ErrMalformedRecord)
	case r.Level < 1 || r.Level > MaxLevel:
		return fmt.Errorf("%w: %s: level %d out of [1, %d]", ErrMalformedRecord, r.ID, r.Level, MaxLevel)
	case r.Stars < 1 || r.Stars > MaxStars:
		return fmt.Errorf("%w: %s: stars %d out of [1, %d]", ErrMalformedRecord, r.ID, r.Stars, MaxStars)
	case r.Base.Atk < 0 || r.Base.Def < 0 || r.Base.Speed < 0:
		return fmt.Errorf("%w: %s: negative stats", ErrMalformedRecord, r.ID)
	}

	total, ok := r.Base.CheckedAdd(r.Equipment)
	if !ok {
		return fmt.Errorf("%w: %s: equipment overflows stats", ErrMalformedRecord, r.ID)
	}
	if total.HP < 1 {
		return fmt.Errorf("%w: %s: non-positive hp", ErrMalformedRecord, r.ID)
	}
	return nil
}

// ValidateFormations checks both sides of a battle.
// Participant ids must be unique across the whole battle.
func ValidateFormations(allies, enemies []Record) error {
	seen := make(map[string]struct{}, len(allies)+len(enemies))
	for _, side := range []struct {
		name string
		recs []Record
	}{{"allies", allies}, {"enemies", enemies}} {
		if len(side.recs) == 0 {
			return fmt.Errorf("%s: %w", side.name, ErrEmptyFormation)
		}
		if len(side.recs) > MaxFormationSize {
			return fmt.Errorf("%s: %w: %d > %d", side.name, ErrFormationTooLarge, len(side.recs), MaxFormationSize)
		}
		for _, rec := range side.recs {
			if err := rec.Validate(); err != nil {
				return fmt.Errorf("%s: %w", side.name, err)
			}
			if _, dup := seen[rec.ID]; dup {
				return fmt.Errorf("%s: %w: %s", side.name, ErrDuplicateParticipant, rec.ID)
			}
			seen[rec.ID] = struct{}{}
		}
	}
	return nil
}

package combat

import (
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// EventKind classifies a battle log entry.
type EventKind string

const (
	EventStart   EventKind = "start"   // участник вступил в бой
	EventAction  EventKind = "action"  // попадание или лечение способностью
	EventMiss    EventKind = "miss"    // промах (уклонение цели)
	EventEffect  EventKind = "effect"  // эффект наложен вне попадания (self/allies)
	EventTick    EventKind = "tick"    // урон DoT или лечение regen в начале хода
	EventExpire  EventKind = "expire"  // эффект истёк или снят уроном
	EventSkip    EventKind = "skip"    // ход пропущен (контроль, страх, нет действия)
	EventPassive EventKind = "passive" // сработала пассивка
	EventDefeat  EventKind = "defeat"  // участник пал
	EventTimeout EventKind = "timeout" // достигнут лимит раундов
	EventEnd     EventKind = "end"     // бой завершён
)

// Event is one battle log entry.
// The log is a contract for outer layers: order and fields are stable and
// wall-clock time never enters it, so replays stay byte-identical.
type Event struct {
	Turn           int       `json:"turn"`
	Kind           EventKind `json:"kind"`
	Actor          string    `json:"actor,omitempty"`
	Action         string    `json:"action,omitempty"`
	Target         string    `json:"target,omitempty"`
	Amount         int32     `json:"amount"`
	EffectsApplied []string  `json:"effects_applied,omitempty"`
	Crit           bool      `json:"crit,omitempty"`
	ElementMult    float64   `json:"element_mult,omitempty"`
}

// Log is the append-only, ordered event log of one battle.
type Log []Event

// Digest returns the BLAKE2b-256 of the log's canonical JSON encoding.
// The same seed and inputs produce the same digest.
func (l Log) Digest() ([32]byte, error) {
	payload, err := json.Marshal(l)
	if err != nil {
		return [32]byte{}, fmt.Errorf("encoding battle log: %w", err)
	}
	return blake2b.Sum256(payload), nil
}

// Filter returns the events of one kind.
func (l Log) Filter(kind EventKind) Log {
	var out Log
	for _, e := range l {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

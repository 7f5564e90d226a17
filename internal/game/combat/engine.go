package combat

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/udisondev/battlecore/internal/config"
	"github.com/udisondev/battlecore/internal/data"
	"github.com/udisondev/battlecore/internal/formula"
	"github.com/udisondev/battlecore/internal/game/skill"
	"github.com/udisondev/battlecore/internal/model"
)

// ErrFatalInput is the only error class a battle surfaces to the caller:
// an empty or oversized formation, duplicate ids, a malformed record,
// or no entropy to seed a zero Setup.Seed.
var ErrFatalInput = errors.New("fatal battle input")

// Setup describes one battle to run.
type Setup struct {
	Allies  []model.Record
	Enemies []model.Record
	Seed    uint64 // 0 picks a random seed
}

// Engine builds and runs battles.
// It holds only read-only state and may be shared by concurrent battles.
type Engine struct {
	reg     *data.Registry
	balance config.Balance
	casts   *skill.CastManager

	// observer — callback для наблюдения за событиями боя (nil в production).
	observer func(Event)
}

// Option configures an Engine.
type Option func(*Engine)

// WithObserver registers a callback invoked for every logged event.
// The callback runs on the battle goroutine.
func WithObserver(fn func(Event)) Option {
	return func(e *Engine) { e.observer = fn }
}

// NewEngine creates an Engine over a frozen registry.
// The balance is normalised so the turn cap never exceeds config.HardTurnCap.
func NewEngine(reg *data.Registry, balance config.Balance, opts ...Option) *Engine {
	balance.Normalize()
	e := &Engine{
		reg:     reg,
		balance: balance,
		casts:   skill.NewCastManager(reg, balance),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Balance returns the balance constants the engine runs with.
func (e *Engine) Balance() config.Balance { return e.balance }

// Run validates the setup, runs the battle to completion and returns its result.
func (e *Engine) Run(setup Setup) (*Result, error) {
	b, err := e.New(setup)
	if err != nil {
		return nil, err
	}
	return b.Run(), nil
}

// New performs Init: validates formations, builds participants, seeds the RNG
// and fires battle-start passives. Validation failures wrap ErrFatalInput.
func (e *Engine) New(setup Setup) (*Battle, error) {
	if err := model.ValidateFormations(setup.Allies, setup.Enemies); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFatalInput, err)
	}

	seed := setup.Seed
	if seed == 0 {
		var err error
		if seed, err = NewSeed(); err != nil {
			return nil, fmt.Errorf("%w: seeding battle: %w", ErrFatalInput, err)
		}
	}

	b := &Battle{
		engine:  e,
		seed:    seed,
		rng:     rand.New(rand.NewPCG(seed, seed^pcgStream)),
		effects: make(map[string]*skill.EffectManager, len(setup.Allies)+len(setup.Enemies)),
		sides:   make(map[model.Side][]*model.Participant, 2),
		acted:   make(map[string]bool, len(setup.Allies)+len(setup.Enemies)),
		phase:   PhaseInit,
	}
	b.passives = skill.NewPassiveManager(e.reg)

	order := 0
	for _, side := range []struct {
		side    model.Side
		records []model.Record
	}{
		{model.SideAlly, setup.Allies},
		{model.SideEnemy, setup.Enemies},
	} {
		for _, rec := range side.records {
			stats, err := formula.ScaleRecord(e.balance, rec)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %w", ErrFatalInput, side.side, err)
			}
			p := model.NewParticipant(rec, side.side, order, stats, e.balance.MaxEnergy)
			e.casts.NormalizeLoadout(p)
			order++

			b.all = append(b.all, p)
			b.sides[side.side] = append(b.sides[side.side], p)
			b.effects[p.ID] = skill.NewEffectManager()
		}
	}

	b.init()
	return b, nil
}

// pcgStream is the fixed second PCG word derived from the seed.
const pcgStream = 0x9e3779b97f4a7c15

// Phase is a state of the battle state machine.
type Phase int8

const (
	PhaseInit Phase = iota
	PhaseTurnStart
	PhaseEffectTick
	PhaseActionResolution
	PhasePassiveCheck
	PhaseTerminationCheck
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhaseTurnStart:
		return "turn_start"
	case PhaseEffectTick:
		return "effect_tick"
	case PhaseActionResolution:
		return "action_resolution"
	case PhasePassiveCheck:
		return "passive_check"
	case PhaseTerminationCheck:
		return "termination_check"
	case PhaseFinished:
		return "finished"
	default:
		return fmt.Sprintf("phase(%d)", int8(p))
	}
}

// Battle is the state of one battle. It owns its participants, RNG and log
// exclusively and is not safe for concurrent use.
type Battle struct {
	engine   *Engine
	seed     uint64
	rng      *rand.Rand
	all      []*model.Participant // registration order, allies first
	sides    map[model.Side][]*model.Participant
	effects  map[string]*skill.EffectManager
	passives *skill.PassiveManager

	phase   Phase
	turn    int
	acted   map[string]bool // кто уже ходил в текущем раунде
	actor   *model.Participant
	outcome Outcome
	timeout bool
	log     Log
}

// Effects implements skill.Arena.
func (b *Battle) Effects(p *model.Participant) *skill.EffectManager { return b.effects[p.ID] }

// Side implements skill.Arena.
func (b *Battle) Side(side model.Side) []*model.Participant { return b.sides[side] }

// Rand implements skill.Arena.
func (b *Battle) Rand() *rand.Rand { return b.rng }

// Turn implements skill.Arena.
func (b *Battle) Turn() int { return b.turn }

// Phase returns the current state machine phase.
func (b *Battle) Phase() Phase { return b.phase }

// Participants returns every participant in registration order.
func (b *Battle) Participants() []*model.Participant { return b.all }

// Seed returns the seed the battle RNG was created from.
func (b *Battle) Seed() uint64 { return b.seed }

func (b *Battle) init() {
	for _, p := range b.all {
		b.emit(Event{Kind: EventStart, Actor: p.ID, Amount: p.CurrentHP()})
	}
	for _, p := range b.all {
		b.logFirings(b.passives.Evaluate(b, p, skill.EventBattleStart))
	}
	b.phase = PhaseTurnStart
}

// Run drives the state machine until PhaseFinished and returns the result.
// The turn cap bounds the work to O(maxTurns × participants).
func (b *Battle) Run() *Result {
	start := time.Now()
	for b.phase != PhaseFinished {
		b.Step()
	}

	digest, err := b.log.Digest()
	if err != nil {
		// Event holds only strings and numbers; encoding cannot fail.
		slog.Error("battle log digest", "error", err)
	}

	res := &Result{
		Victor:   b.outcome,
		Turns:    b.turn,
		Seed:     b.seed,
		TimedOut: b.timeout,
		Duration: time.Since(start),
		Log:      b.log,
		Digest:   digest,
	}
	slog.Debug("battle finished",
		"victor", res.Victor.String(),
		"turns", res.Turns,
		"seed", res.Seed,
		"events", len(res.Log),
		"duration", res.Duration)
	return res
}

// Step executes one state machine transition.
func (b *Battle) Step() {
	switch b.phase {
	case PhaseInit:
		b.init()
	case PhaseTurnStart:
		b.turnStart()
	case PhaseEffectTick:
		b.effectTick()
	case PhaseActionResolution:
		b.resolveAction()
	case PhasePassiveCheck:
		b.passiveCheck()
	case PhaseTerminationCheck:
		b.terminationCheck()
	}
}

func (b *Battle) turnStart() {
	if b.turn >= b.engine.balance.MaxTurns {
		b.resolveTimeout()
		return
	}
	b.turn++
	clear(b.acted)
	b.advance()
}

// advance picks the fastest living participant that has not acted this
// round, or moves to the next round when there is none.
func (b *Battle) advance() {
	if p := NextActor(b, b.all, b.acted); p != nil {
		b.acted[p.ID] = true
		b.actor = p
		b.phase = PhaseEffectTick
		return
	}
	b.actor = nil
	b.phase = PhaseTurnStart
}

func (b *Battle) effectTick() {
	p := b.actor
	report := b.Effects(p).Tick(p)

	for _, entry := range report.Entries {
		amount := entry.Amount
		if !entry.Heal {
			amount = -amount
		}
		b.emit(Event{Kind: EventTick, Actor: entry.SourceID, Action: entry.EffectID, Target: p.ID, Amount: amount})
	}
	for _, id := range report.Expired {
		b.emit(Event{Kind: EventExpire, Action: id, Target: p.ID})
	}
	if p.IsDead() {
		b.emit(Event{Kind: EventDefeat, Target: p.ID})
	}
	b.phase = PhaseActionResolution
}

func (b *Battle) resolveAction() {
	p := b.actor
	defer func() { b.phase = PhasePassiveCheck }()

	if p.IsDead() {
		return
	}

	r := b.Effects(p).Restriction()
	switch {
	case r.Has(skill.RestrictAll):
		b.emit(Event{Kind: EventSkip, Actor: p.ID, Action: "controlled"})
		return

	case r.Has(skill.RestrictFear):
		// Страх: 50% пропуск, 50% базовая атака по случайному врагу.
		if b.rng.Float64() < 0.5 {
			b.emit(Event{Kind: EventSkip, Actor: p.ID, Action: "fear"})
			return
		}
		def, err := b.engine.casts.CanCast(p, model.SlotAttack, r&^skill.RestrictFear)
		target := randomEnemy(b.rng, b, p)
		if err != nil || target == nil {
			b.emit(Event{Kind: EventSkip, Actor: p.ID, Action: "fear"})
			return
		}
		b.cast(p, def, []*model.Participant{target})
		return
	}

	def, targets := b.chooseAction(p, r)
	if def == nil {
		b.emit(Event{Kind: EventSkip, Actor: p.ID, Action: "no_action"})
		return
	}
	b.cast(p, def, targets)
}

// chooseAction picks the best available ability: ultimate, then skill, then
// basic attack. Rejected casts fall through to the next slot.
func (b *Battle) chooseAction(p *model.Participant, r skill.Restriction) (*data.AbilityDef, []*model.Participant) {
	for _, slot := range []model.Slot{model.SlotUltimate, model.SlotSkill, model.SlotAttack} {
		def, err := b.engine.casts.CanCast(p, slot, r)
		if err != nil {
			if !errors.Is(err, skill.ErrNotEquipped) {
				slog.Debug("cast rejected", "actor", p.ID, "slot", slot.String(), "reason", err)
			}
			continue
		}
		targets := SelectTargets(b, p, def.Target)
		if len(targets) == 0 {
			continue
		}
		if def.Kind == data.KindHeal && !needsHealing(targets) {
			continue
		}
		return def, targets
	}
	return nil, nil
}

// needsHealing reports whether any target is below full HP.
func needsHealing(ps []*model.Participant) bool {
	for _, p := range ps {
		if p.CurrentHP() < p.MaxHP() {
			return true
		}
	}
	return false
}

func (b *Battle) cast(p *model.Participant, def *data.AbilityDef, targets []*model.Participant) {
	out, err := b.engine.casts.Resolve(b, p, def, targets)
	if err != nil {
		slog.Warn("ability resolution failed", "actor", p.ID, "ability", def.ID, "error", err)
		b.emit(Event{Kind: EventSkip, Actor: p.ID, Action: def.ID})
		return
	}

	reported := make(map[string]bool, len(out.Hits))
	for _, hit := range out.Hits {
		reported[hit.TargetID] = true
		if hit.Dodged {
			b.emit(Event{Kind: EventMiss, Actor: p.ID, Action: def.ID, Target: hit.TargetID})
			continue
		}
		amount := hit.Amount
		if !hit.Heal {
			amount = -amount
		}
		b.emit(Event{
			Kind:           EventAction,
			Actor:          p.ID,
			Action:         def.ID,
			Target:         hit.TargetID,
			Amount:         amount,
			EffectsApplied: out.AppliedIDs(hit.TargetID),
			Crit:           hit.Crit,
			ElementMult:    hit.ElementMult,
		})
		for _, id := range hit.Broken {
			b.emit(Event{Kind: EventExpire, Action: id, Target: hit.TargetID})
		}
		if hit.Killed {
			b.emit(Event{Kind: EventDefeat, Actor: p.ID, Target: hit.TargetID})
		}
	}

	for _, a := range out.Applied {
		if reported[a.TargetID] {
			continue
		}
		reported[a.TargetID] = true
		b.emit(Event{Kind: EventEffect, Actor: p.ID, Action: def.ID, Target: a.TargetID, EffectsApplied: out.AppliedIDs(a.TargetID)})
	}

	if len(out.Hits) == 0 && len(out.Applied) == 0 {
		b.emit(Event{Kind: EventEffect, Actor: p.ID, Action: def.ID, Target: p.ID})
	}
}

func (b *Battle) passiveCheck() {
	for _, p := range b.all {
		b.logFirings(b.passives.Evaluate(b, p, skill.EventHPChanged))
	}
	b.phase = PhaseTerminationCheck
}

func (b *Battle) logFirings(firings []skill.Firing) {
	for _, f := range firings {
		var applied []string
		for _, a := range f.Applied {
			applied = append(applied, a.EffectID)
		}
		b.emit(Event{
			Kind:           EventPassive,
			Actor:          f.OwnerID,
			Action:         f.PassiveID,
			Target:         f.OwnerID,
			Amount:         f.Healed,
			EffectsApplied: applied,
		})
		for _, id := range f.Dispelled {
			b.emit(Event{Kind: EventExpire, Actor: f.OwnerID, Action: id, Target: f.OwnerID})
		}
	}
}

func (b *Battle) terminationCheck() {
	alliesUp := len(skill.Living(b.sides[model.SideAlly])) > 0
	enemiesUp := len(skill.Living(b.sides[model.SideEnemy])) > 0

	switch {
	case alliesUp && enemiesUp:
		b.endTurn()
		b.advance()
		return
	case alliesUp:
		b.finish(OutcomeAllyVictory)
	case enemiesUp:
		b.finish(OutcomeEnemyVictory)
	default:
		b.finish(OutcomeDraw)
	}
}

// endTurn closes the current actor's turn: latched control is released and
// ability cooldowns tick down.
func (b *Battle) endTurn() {
	if b.actor == nil {
		return
	}
	b.Effects(b.actor).EndTurn()
	b.actor.TickCooldowns()
}

// resolveTimeout applies the turn cap policy: the side with the higher
// aggregate HP% wins, an exact tie is a draw.
func (b *Battle) resolveTimeout() {
	b.timeout = true
	allyHP, allyMax := sideHP(b.sides[model.SideAlly])
	enemyHP, enemyMax := sideHP(b.sides[model.SideEnemy])

	// Сравнение долей без деления: a/b > c/d ⇔ a·d > c·b.
	lhs := allyHP * enemyMax
	rhs := enemyHP * allyMax

	b.emit(Event{Kind: EventTimeout, Amount: int32(b.turn)})
	switch {
	case lhs > rhs:
		b.finish(OutcomeAllyVictory)
	case lhs < rhs:
		b.finish(OutcomeEnemyVictory)
	default:
		b.finish(OutcomeDraw)
	}
}

func sideHP(ps []*model.Participant) (current, maximum int64) {
	for _, p := range ps {
		current += int64(p.CurrentHP())
		maximum += int64(p.MaxHP())
	}
	return current, maximum
}

func (b *Battle) finish(o Outcome) {
	b.outcome = o
	b.emit(Event{Kind: EventEnd, Action: o.String()})
	b.phase = PhaseFinished
}

func (b *Battle) emit(e Event) {
	e.Turn = b.turn
	b.log = append(b.log, e)
	if b.engine.observer != nil {
		b.engine.observer(e)
	}
}

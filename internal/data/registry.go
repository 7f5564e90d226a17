package data

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
)

var (
	// ErrNotFound means no definition is registered under the id.
	ErrNotFound = errors.New("definition not found")
	// ErrDuplicateDefinition means the id is already registered in the category; the first wins.
	ErrDuplicateDefinition = errors.New("duplicate definition")
	// ErrInvalidDefinition means the definition failed validation.
	ErrInvalidDefinition = errors.New("invalid definition")
	// ErrRegistryFrozen is returned by Register after Freeze.
	ErrRegistryFrozen = errors.New("registry is frozen")
)

// Registry is the catalog of abilities, effects and passives by category.
//
// It is filled once at startup (LoadCatalog) and then frozen. A frozen
// registry is read-only and may be shared by concurrent battles without
// locking. Register is not safe for concurrent use.
type Registry struct {
	tables map[Category]map[string]Definition
	order  map[Category][]string // порядок регистрации, для диагностики

	duplicates int
	frozen     bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	r := &Registry{
		tables: make(map[Category]map[string]Definition, len(Categories)),
		order:  make(map[Category][]string, len(Categories)),
	}
	for _, c := range Categories {
		r.tables[c] = make(map[string]Definition)
	}
	return r
}

// Register adds a definition to its category table.
//
// On a repeated id within a category the existing definition is kept, the new
// one is dropped with a warning, and ErrDuplicateDefinition is returned.
func (r *Registry) Register(def Definition) error {
	if r.frozen {
		return ErrRegistryFrozen
	}
	if err := validate(def); err != nil {
		return err
	}

	cat := def.DefCategory()
	id := def.DefID()
	if _, exists := r.tables[cat][id]; exists {
		r.duplicates++
		slog.Warn("duplicate definition discarded, keeping first",
			"category", cat,
			"id", id)
		return fmt.Errorf("%w: %s/%s", ErrDuplicateDefinition, cat, id)
	}

	r.tables[cat][id] = def
	r.order[cat] = append(r.order[cat], id)
	return nil
}

// Resolve returns the definition with the id in a category.
func (r *Registry) Resolve(cat Category, id string) (Definition, error) {
	table, ok := r.tables[cat]
	if !ok {
		return nil, fmt.Errorf("%w: unknown category %s", ErrNotFound, cat)
	}
	def, ok := table[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, cat, id)
	}
	return def, nil
}

// Ability returns an active ability by id.
func (r *Registry) Ability(id string) (*AbilityDef, error) {
	def, err := r.Resolve(CategoryActive, id)
	if err != nil {
		return nil, err
	}
	return def.(*AbilityDef), nil
}

// Effect looks a status effect up across the effect categories
// in the order dot, control, debuff, buff.
func (r *Registry) Effect(id string) (*EffectDef, error) {
	for _, cat := range []Category{CategoryDoT, CategoryControl, CategoryDebuff, CategoryBuff} {
		if def, ok := r.tables[cat][id]; ok {
			return def.(*EffectDef), nil
		}
	}
	return nil, fmt.Errorf("%w: effect/%s", ErrNotFound, id)
}

// Passive returns a passive ability by id.
func (r *Registry) Passive(id string) (*PassiveDef, error) {
	def, err := r.Resolve(CategoryPassive, id)
	if err != nil {
		return nil, err
	}
	return def.(*PassiveDef), nil
}

// Freeze forbids further registration.
func (r *Registry) Freeze() { r.frozen = true }

// Frozen reports whether Freeze was called.
func (r *Registry) Frozen() bool { return r.frozen }

// CategorySummary describes one category.
type CategorySummary struct {
	Category Category
	Count    int
	IDs      []string // отсортированы
}

// Summary describes the registry contents.
type Summary struct {
	Categories []CategorySummary
	Duplicates int
}

// Total returns the number of definitions.
func (s Summary) Total() int {
	n := 0
	for _, c := range s.Categories {
		n += c.Count
	}
	return n
}

// Summary reports the count and loaded ids of each category.
func (r *Registry) Summary() Summary {
	s := Summary{Duplicates: r.duplicates}
	for _, cat := range Categories {
		ids := slices.Clone(r.order[cat])
		slices.Sort(ids)
		s.Categories = append(s.Categories, CategorySummary{
			Category: cat,
			Count:    len(ids),
			IDs:      ids,
		})
	}
	return s
}

func validate(def Definition) error {
	if def == nil {
		return fmt.Errorf("%w: nil definition", ErrInvalidDefinition)
	}
	if def.DefID() == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidDefinition)
	}

	switch d := def.(type) {
	case *AbilityDef:
		if !isUnlockTier(d.UnlockLevel) {
			return fmt.Errorf("%w: ability %s: unlock level %d is not a tier", ErrInvalidDefinition, d.ID, d.UnlockLevel)
		}
		if d.EnergyCost < 0 || d.Cooldown < 0 {
			return fmt.Errorf("%w: ability %s: negative cost or cooldown", ErrInvalidDefinition, d.ID)
		}
		return validateDescriptors(d.ID, d.Effects)
	case *EffectDef:
		if d.Kind == nil {
			return fmt.Errorf("%w: effect %s: missing kind", ErrInvalidDefinition, d.ID)
		}
		if d.Stacking == StackAdditive && d.MaxStacks < 1 {
			return fmt.Errorf("%w: effect %s: additive stacking needs MaxStacks", ErrInvalidDefinition, d.ID)
		}
		return nil
	case *PassiveDef:
		if !isUnlockTier(d.UnlockLevel) {
			return fmt.Errorf("%w: passive %s: unlock level %d is not a tier", ErrInvalidDefinition, d.ID, d.UnlockLevel)
		}
		if d.Trigger == TriggerHPThreshold && (d.Threshold <= 0 || d.Threshold >= 100) {
			return fmt.Errorf("%w: passive %s: threshold %v out of (0, 100)", ErrInvalidDefinition, d.ID, d.Threshold)
		}
		if d.Cooldown < 0 {
			return fmt.Errorf("%w: passive %s: negative cooldown", ErrInvalidDefinition, d.ID)
		}
		return validateDescriptors(d.ID, d.Effects)
	default:
		return fmt.Errorf("%w: unsupported definition type %T", ErrInvalidDefinition, def)
	}
}

func validateDescriptors(owner string, descs []EffectDescriptor) error {
	for _, e := range descs {
		if e.EffectID == "" || e.Duration < 1 {
			return fmt.Errorf("%w: %s: descriptor %q needs id and positive duration", ErrInvalidDefinition, owner, e.EffectID)
		}
	}
	return nil
}

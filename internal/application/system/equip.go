package system

import (
	"fmt"
	"math"
	"strconv"

	"github.com/younwookim/petalarena/internal/domain/entity"
	"github.com/younwookim/petalarena/internal/infrastructure/config"
)

// EquipHook runs when an item enters or leaves the main row
type EquipHook func(p *entity.Player, ref entity.SlotRef, item entity.Item) error

// HookRegistry resolves hook names from the item registry to functions
type HookRegistry struct {
	hooks map[string]EquipHook
}

// NewHookRegistry creates an empty hook registry
func NewHookRegistry() *HookRegistry {
	return &HookRegistry{hooks: make(map[string]EquipHook)}
}

// Register adds or replaces a named hook
func (r *HookRegistry) Register(name string, hook EquipHook) {
	r.hooks[name] = hook
}

// Run calls the named hook. An empty or unknown name is not an error.
func (r *HookRegistry) Run(name string, p *entity.Player, ref entity.SlotRef, item entity.Item) error {
	if name == "" {
		return nil
	}
	hook, ok := r.hooks[name]
	if !ok {
		return nil
	}
	if err := hook(p, ref, item); err != nil {
		return fmt.Errorf("hook %s failed for %s: %w", name, item.Type, err)
	}
	return nil
}

// EquipSystem runs item effects and loadout changes
type EquipSystem struct {
	items  entity.ItemRegistry
	combat *config.CombatConfig
	hooks  *HookRegistry

	// OnHookError reports a failed equip hook; the loadout change still stands
	OnHookError func(err error)
}

// NewEquipSystem creates a new equip system
func NewEquipSystem(items entity.ItemRegistry, combat *config.CombatConfig, hooks *HookRegistry) *EquipSystem {
	if hooks == nil {
		hooks = NewHookRegistry()
	}
	return &EquipSystem{items: items, combat: combat, hooks: hooks}
}

// Hooks returns the hook registry
func (s *EquipSystem) Hooks() *HookRegistry {
	return s.hooks
}

// petalOrigin returns the firing point for slot i
func petalOrigin(w *World, i int) (float64, float64, *entity.Petal) {
	p := w.Player
	petal := w.PetalFor(i)
	if petal == nil {
		return p.X, p.Y, nil
	}
	x, y := petal.Position(p.X, p.Y, p.PetalDistance)
	return x, y, petal
}

// UseNext fires the next ready slot, starting from the round-robin pointer.
// Heal items heal; everything else shoots toward the aim point, or along +X
// when there is none. One unit is consumed and an emptied slot is cleared.
// Returns true if a slot fired.
func (s *EquipSystem) UseNext(w *World, aimX, aimY float64, hasAim bool) bool {
	p := w.Player
	start := p.NextUse % entity.SlotCount
	for offset := 0; offset < entity.SlotCount; offset++ {
		i := (start + offset) % entity.SlotCount
		slot := p.Equipped[i]
		if slot == nil || slot.Stack <= 0 {
			continue
		}

		def, known := s.items.Lookup(slot.Type)
		cooldown := s.combat.DefaultUse()
		if known {
			cooldown = def.Cooldown
		}
		if !p.Cooldowns.Ready(slot.Type, w.Now, cooldown) {
			continue
		}

		if known && def.Heal > 0 {
			p.Heal(def.Heal)
		} else {
			x, y, _ := petalOrigin(w, i)
			angle := 0.0
			if hasAim {
				angle = math.Atan2(aimY-y, aimX-x)
			}
			damage := entity.FallbackDamage(slot.Rarity)
			if known {
				damage = def.Damage
			}
			proj := entity.NewProjectileToward(x, y, angle, s.combat.ProjectileSpeed, s.combat.ProjectileRadius, damage, slot.Type)
			proj.Mass = def.Mass
			w.Projectiles = append(w.Projectiles, proj)
		}

		p.Cooldowns.Mark(slot.Type, w.Now)
		slot.Stack--
		if slot.Stack <= 0 {
			p.Equipped[i] = nil
		}
		p.NextUse = i + 1
		return true
	}
	return false
}

// Attack fires every ready on-attack slot toward the target.
// Each slot has its own cooldown so duplicate items fire independently.
// Returns the number of projectiles spawned.
func (s *EquipSystem) Attack(w *World, tx, ty float64) int {
	p := w.Player
	fired := 0
	for i, slot := range p.Equipped {
		if slot == nil {
			continue
		}
		def, ok := s.items.Lookup(slot.Type)
		if !ok || !def.OnAttack {
			continue
		}

		key := "slot_" + strconv.Itoa(i)
		cooldown := def.Cooldown
		if cooldown <= 0 {
			cooldown = s.combat.DefaultAttack()
		}
		if !p.Cooldowns.Ready(key, w.Now, cooldown) {
			continue
		}

		x, y, petal := petalOrigin(w, i)
		angle := math.Atan2(ty-y, tx-x)
		proj := entity.NewProjectileToward(x, y, angle, s.combat.ProjectileSpeed, s.combat.ProjectileRadius, def.Damage, slot.Type)
		proj.Mass = def.Mass
		w.Projectiles = append(w.Projectiles, proj)
		p.Cooldowns.Mark(key, w.Now)
		fired++

		if petal != nil {
			petal.ExpandUntil = w.Now + s.combat.Expand()
			petal.ExpandExtra = s.combat.ExpandExtra
		}
	}
	return fired
}

// ApplyPassive runs the periodic effects of every equipped slot
func (s *EquipSystem) ApplyPassive(w *World) {
	p := w.Player
	for i, slot := range p.Equipped {
		if slot == nil {
			continue
		}
		def, ok := s.items.Lookup(slot.Type)
		if !ok || def.Passive == entity.PassiveNone {
			continue
		}

		key := "passive_" + strconv.Itoa(i)
		if !p.Cooldowns.Ready(key, w.Now, def.PassiveInterval) {
			continue
		}

		switch def.Passive {
		case entity.PassiveHeal:
			p.Heal(def.PassiveAmount)
		case entity.PassiveAura:
			reach := p.PetalDistance + def.PassiveRange
			for _, m := range w.Mobs {
				if m.IsChain() {
					continue
				}
				if entity.Distance(m.X, m.Y, p.X, p.Y) < reach {
					m.Health -= def.PassiveAmount
				}
			}
		}
		p.Cooldowns.Mark(key, w.Now)
	}
}

// Equip moves one item from the inventory into the loadout and runs its equip hook
func (s *EquipSystem) Equip(w *World, index int) (entity.SlotRef, error) {
	ref, err := w.Player.EquipFromInventory(index)
	if err != nil {
		return ref, err
	}
	if ref.Row == entity.RowMain {
		s.entered(w.Player, ref)
	}
	return ref, nil
}

// Unequip returns a slot's stack to the inventory and runs its unequip hook
func (s *EquipSystem) Unequip(w *World, ref entity.SlotRef) error {
	item, err := w.Player.Unequip(ref)
	if err != nil {
		return err
	}
	if ref.Row == entity.RowMain {
		s.left(w.Player, ref, item)
	}
	return nil
}

// SwapRows exchanges the main and swap slots at index
func (s *EquipSystem) SwapRows(w *World, index int) error {
	return s.MoveSlot(w,
		entity.SlotRef{Row: entity.RowMain, Index: index},
		entity.SlotRef{Row: entity.RowSwap, Index: index})
}

// MoveSlot exchanges two slots, running hooks for items entering or leaving the main row
func (s *EquipSystem) MoveSlot(w *World, from, to entity.SlotRef) error {
	p := w.Player
	main := from
	if to.Row == entity.RowMain {
		main = to
	}

	var leaving *entity.Item
	if slot, err := p.Slot(main); err == nil {
		leaving = *slot
	}
	if err := p.MoveSlot(from, to); err != nil {
		return err
	}
	if from.Row == to.Row || main.Row != entity.RowMain {
		return nil
	}

	if leaving != nil {
		s.left(p, main, *leaving)
	}
	s.entered(p, main)
	return nil
}

func (s *EquipSystem) entered(p *entity.Player, ref entity.SlotRef) {
	slot := p.Equipped[ref.Index]
	if slot == nil {
		return
	}
	def, _ := s.items.Lookup(slot.Type)
	s.report(s.hooks.Run(def.OnEquip, p, ref, *slot))
}

func (s *EquipSystem) left(p *entity.Player, ref entity.SlotRef, item entity.Item) {
	def, _ := s.items.Lookup(item.Type)
	s.report(s.hooks.Run(def.OnUnequip, p, ref, item))
}

func (s *EquipSystem) report(err error) {
	if err != nil && s.OnHookError != nil {
		s.OnHookError(err)
	}
}

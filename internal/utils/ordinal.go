package utils

import (
	"fmt"
	"sort"

	"recruiting-portal-backend/internal/domain"
)

// Slot is the position of one question inside its (cycle, scope) partition.
type Slot struct {
	ID    int32
	Order int32
}

// OrderUpdate is a single row write produced by a plan.
type OrderUpdate struct {
	ID    int32
	Order int32
}

// NextOrdinal returns the ordinal a newly inserted question takes: max+1, or 0
// for an empty partition.
func NextOrdinal(slots []Slot) int32 {
	if len(slots) == 0 {
		return 0
	}
	max := slots[0].Order
	for _, s := range slots[1:] {
		if s.Order > max {
			max = s.Order
		}
	}
	return max + 1
}

// ClampTarget pins a move target into [0, n-1].
func ClampTarget(target int32, n int) int32 {
	if target < 0 {
		return 0
	}
	if n > 0 && target > int32(n-1) {
		return int32(n - 1)
	}
	return target
}

// PlanRemove returns the writes that close the gap left by deleting id: every
// slot with a strictly greater ordinal moves down by one.
func PlanRemove(slots []Slot, id int32) ([]OrderUpdate, error) {
	removed, ok := find(slots, id)
	if !ok {
		return nil, fmt.Errorf("question %d: %w", id, domain.ErrNotFound)
	}
	var updates []OrderUpdate
	for _, s := range sorted(slots) {
		if s.ID != id && s.Order > removed.Order {
			updates = append(updates, OrderUpdate{ID: s.ID, Order: s.Order - 1})
		}
	}
	return updates, nil
}

// PlanMove returns the clamped target and the writes that move id there.
// Moving forward shifts (current, target] down by one; moving backward shifts
// [target, current) up by one. The moved slot's own write comes last. An
// empty plan means the move is a no-op.
func PlanMove(slots []Slot, id, target int32) (int32, []OrderUpdate, error) {
	moving, ok := find(slots, id)
	if !ok {
		return 0, nil, fmt.Errorf("question %d: %w", id, domain.ErrNotFound)
	}
	target = ClampTarget(target, len(slots))
	current := moving.Order
	if target == current {
		return target, nil, nil
	}

	var updates []OrderUpdate
	for _, s := range sorted(slots) {
		if s.ID == id {
			continue
		}
		switch {
		case current < target && s.Order > current && s.Order <= target:
			updates = append(updates, OrderUpdate{ID: s.ID, Order: s.Order - 1})
		case current > target && s.Order >= target && s.Order < current:
			updates = append(updates, OrderUpdate{ID: s.ID, Order: s.Order + 1})
		}
	}
	updates = append(updates, OrderUpdate{ID: id, Order: target})
	return target, updates, nil
}

// PlanRepack assigns 0..N-1 following the current order (ties broken by id).
// Only slots whose ordinal changes are returned.
func PlanRepack(slots []Slot) []OrderUpdate {
	var updates []OrderUpdate
	for i, s := range sorted(slots) {
		if s.Order != int32(i) {
			updates = append(updates, OrderUpdate{ID: s.ID, Order: int32(i)})
		}
	}
	return updates
}

// Apply returns a copy of slots with updates applied.
func Apply(slots []Slot, updates []OrderUpdate) []Slot {
	next := make(map[int32]int32, len(updates))
	for _, u := range updates {
		next[u.ID] = u.Order
	}
	out := make([]Slot, len(slots))
	for i, s := range slots {
		out[i] = s
		if o, ok := next[s.ID]; ok {
			out[i].Order = o
		}
	}
	return out
}

// IsContiguous reports whether the ordinals are exactly {0, ..., N-1}.
func IsContiguous(slots []Slot) bool {
	seen := make([]bool, len(slots))
	for _, s := range slots {
		if s.Order < 0 || int(s.Order) >= len(slots) || seen[s.Order] {
			return false
		}
		seen[s.Order] = true
	}
	return true
}

func find(slots []Slot, id int32) (Slot, bool) {
	for _, s := range slots {
		if s.ID == id {
			return s, true
		}
	}
	return Slot{}, false
}

func sorted(slots []Slot) []Slot {
	out := append([]Slot(nil), slots...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID < out[j].ID
	})
	return out
}

package world

import "sort"

// Variables is the numeric game-variable store, keyed by variable id.
// Unset variables read as 0.
type Variables struct {
	vals map[int]float64
}

// NewVariables creates an empty store.
func NewVariables() *Variables {
	return &Variables{vals: make(map[int]float64)}
}

// Value returns variable id.
func (v *Variables) Value(id int) float64 {
	return v.vals[id]
}

// Set assigns variable id. Setting 0 drops the entry.
func (v *Variables) Set(id int, value float64) {
	if value == 0 {
		delete(v.vals, id)
		return
	}
	v.vals[id] = value
}

// Add adds delta to variable id and returns the new value.
func (v *Variables) Add(id int, delta float64) float64 {
	v.Set(id, v.vals[id]+delta)
	return v.vals[id]
}

// IDs returns the ids of all non-zero variables, sorted.
func (v *Variables) IDs() []int {
	ids := make([]int, 0, len(v.vals))
	for id := range v.vals {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// All returns a copy of every non-zero variable.
func (v *Variables) All() map[int]float64 {
	out := make(map[int]float64, len(v.vals))
	for id, val := range v.vals {
		out[id] = val
	}
	return out
}

// Replace discards the current values and loads vals.
func (v *Variables) Replace(vals map[int]float64) {
	v.vals = make(map[int]float64, len(vals))
	for id, val := range vals {
		v.Set(id, val)
	}
}

package layers

import (
	"io"
	"sort"

	"github.com/charmbracelet/log"
)

// Layer is a live layer object: one host primitive driven from one
// registry key.
type Layer interface {
	// Update applies the current descriptor to the primitive and advances
	// any per-frame state. Called once per frame.
	Update()
	// Apply pushes the current descriptor to the primitive without
	// advancing frame state.
	Apply()
	// Graphic returns the graphic currently bound to the primitive.
	Graphic() string
	// Z returns the ordering key last applied.
	Z() float64
	Kind() Kind
	Key() Key
	Primitive() Primitive
}

// Table maps layer ids of one scope to their live layer objects.
type Table map[int]Layer

// Env is what a materializer needs from the host. Camera and Characters may
// be nil for the battle scope.
type Env struct {
	Factory    Factory
	Loader     Loader
	Camera     Camera
	Characters Characters
}

// Result counts the actions a materialization performed.
type Result struct {
	Created int
	Removed int
}

// Changed reports whether anything was created or removed.
func (r Result) Changed() bool {
	return r.Created > 0 || r.Removed > 0
}

// Materializer reconciles registry contents against live layer objects.
type Materializer struct {
	reg    *Registry
	env    Env
	logger *log.Logger
}

// NewMaterializer creates a materializer over reg. A nil logger discards output.
func NewMaterializer(reg *Registry, env Env, logger *log.Logger) *Materializer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Materializer{reg: reg, env: env, logger: logger}
}

// Materialize brings table in line with the descriptors of scope: a live
// layer is created, applied once and inserted into c for every active
// descriptor that has none, and live layers whose descriptor is blank, inactive, gone or of a
// different kind are removed from c. Running it again without registry
// changes does nothing.
func (m *Materializer) Materialize(scope Scope, table Table, c Container) Result {
	scope = m.reg.Resolve(scope)
	var res Result
	seen := make(map[int]bool)

	for _, e := range m.reg.AllForScope(scope) {
		seen[e.ID] = true
		live, ok := table[e.ID]

		if !e.Desc.Active() {
			if ok {
				m.remove(table, e.ID, c)
				res.Removed++
			}
			continue
		}

		kind := e.Desc.Kind
		if scope.IsBattle() {
			kind = KindTiling
		}
		if ok && live.Kind() == kind {
			continue
		}
		if ok {
			m.remove(table, e.ID, c)
			res.Removed++
		}

		l := m.create(Key{Scope: scope, ID: e.ID}, kind)
		l.Apply()
		table[e.ID] = l
		c.Insert(l.Primitive(), e.Desc.Z)
		res.Created++
	}

	// Slots that vanished from the registry entirely.
	var orphans []int
	for id := range table {
		if !seen[id] {
			orphans = append(orphans, id)
		}
	}
	sort.Ints(orphans)
	for _, id := range orphans {
		m.remove(table, id, c)
		res.Removed++
	}

	if res.Changed() {
		m.logger.Debug("materialized", "scope", scope, "created", res.Created, "removed", res.Removed, "live", len(table))
	}
	return res
}

// Clear removes every live layer of table from c.
func (m *Materializer) Clear(table Table, c Container) {
	for id := range table {
		m.remove(table, id, c)
	}
}

func (m *Materializer) remove(table Table, id int, c Container) {
	c.Remove(table[id].Primitive())
	delete(table, id)
}

func (m *Materializer) create(key Key, kind Kind) Layer {
	if key.Scope.IsBattle() {
		return NewTilingBattleLayer(key, m.reg, m.env.Loader, m.env.Factory.NewTiling())
	}
	if kind == KindStatic {
		return NewStaticLayer(key, m.reg, m.env.Loader, m.env.Camera, m.env.Characters, m.env.Factory.NewSprite())
	}
	return NewTilingMapLayer(key, m.reg, m.env.Loader, m.env.Camera, m.env.Factory.NewTiling())
}

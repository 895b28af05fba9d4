package layers

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/log"
)

// Scope is a registry partition: one map, or the battle session.
type Scope struct {
	battle bool
	mapID  int
}

// BattleScope is the session-wide battle partition.
var BattleScope = Scope{battle: true}

// MapScope returns the partition of a map. Map id 0 means "the current map"
// and is resolved by the registry when used.
func MapScope(mapID int) Scope {
	return Scope{mapID: mapID}
}

// IsBattle reports whether this is the battle scope.
func (s Scope) IsBattle() bool {
	return s.battle
}

// MapID returns the map id of a map scope (0 for the battle scope).
func (s Scope) MapID() int {
	return s.mapID
}

// String returns a human-readable name for the scope.
func (s Scope) String() string {
	if s.battle {
		return "battle"
	}
	return fmt.Sprintf("map %d", s.mapID)
}

// Key identifies one registry slot.
type Key struct {
	Scope Scope
	ID    int
}

// Entry is one slot of a scope. Desc is nil for a blanked slot.
type Entry struct {
	ID   int
	Desc *Descriptor
}

// Registry stores layer descriptors per map and for the battle session.
// It is the single source of truth read every frame by live layers.
//
// Registry is not safe for concurrent use; all access happens on the
// update tick.
type Registry struct {
	current int
	maps    map[int]map[int]*Descriptor
	battle  map[int]*Descriptor
	logger  *log.Logger
}

// NewRegistry creates an empty registry. A nil logger discards output.
func NewRegistry(logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Registry{
		maps:   make(map[int]map[int]*Descriptor),
		battle: make(map[int]*Descriptor),
		logger: logger,
	}
}

// CurrentMap returns the id of the map most recently entered.
func (r *Registry) CurrentMap() int {
	return r.current
}

// Resolve replaces map id 0 with the current map.
func (r *Registry) Resolve(s Scope) Scope {
	if !s.battle && s.mapID == 0 {
		s.mapID = r.current
	}
	return s
}

// unresolved reports whether a resolved map scope still has no real map.
func (r *Registry) unresolved(s Scope) bool {
	return !s.battle && s.mapID <= 0
}

// table returns the descriptor table of a map, creating it if asked.
func (r *Registry) table(mapID int, create bool) map[int]*Descriptor {
	t, ok := r.maps[mapID]
	if !ok && create {
		t = make(map[int]*Descriptor)
		r.maps[mapID] = t
	}
	return t
}

// CreateOrUpdate stores a descriptor under scope and id. Redefining an
// existing id keeps its scroll accumulators and replaces every other field.
// On the battle scope an inactive descriptor deletes the id instead.
// Map id 0 before any EnterMap has no map to resolve to; the call is
// logged and ignored.
func (r *Registry) CreateOrUpdate(s Scope, id int, d *Descriptor) Key {
	s = r.Resolve(s)
	key := Key{Scope: s, ID: id}
	if r.unresolved(s) {
		r.logger.Warn("layer set with no current map", "id", id)
		return key
	}
	d = d.Clone()

	if s.battle {
		if !d.Active() {
			delete(r.battle, id)
			r.logger.Debug("battle layer cleared", "id", id)
			return key
		}
		if prev := r.battle[id]; prev != nil {
			d.CurrentX, d.CurrentY = prev.CurrentX, prev.CurrentY
		}
		r.battle[id] = d
		r.logger.Debug("battle layer set", "id", id, "graphic", d.Graphic)
		return key
	}

	t := r.table(s.mapID, true)
	if prev := t[id]; prev != nil && d != nil {
		d.CurrentX, d.CurrentY = prev.CurrentX, prev.CurrentY
	}
	t[id] = d
	if d != nil {
		r.logger.Debug("layer set", "map", s.mapID, "id", id, "kind", d.Kind, "graphic", d.Graphic)
	}
	return key
}

// Remove clears a slot. On a map scope a non-negative id blanks that slot
// (it stays allocated) and a negative id empties the whole map table. On the
// battle scope the id is deleted. Like CreateOrUpdate, it ignores map id 0
// before any EnterMap.
func (r *Registry) Remove(s Scope, id int) {
	s = r.Resolve(s)
	if s.battle {
		delete(r.battle, id)
		return
	}
	if r.unresolved(s) {
		r.logger.Warn("layer remove with no current map", "id", id)
		return
	}
	if id < 0 {
		r.maps[s.mapID] = make(map[int]*Descriptor)
		r.logger.Debug("map layers cleared", "map", s.mapID)
		return
	}
	r.table(s.mapID, true)[id] = nil
	r.logger.Debug("layer removed", "map", s.mapID, "id", id)
}

// Get returns the live descriptor in a slot, or nil if the slot is absent
// or blank. The returned pointer is the stored descriptor, not a copy.
func (r *Registry) Get(s Scope, id int) *Descriptor {
	s = r.Resolve(s)
	if s.battle {
		return r.battle[id]
	}
	return r.maps[s.mapID][id]
}

// Has reports whether a slot is allocated, including blanked slots.
func (r *Registry) Has(s Scope, id int) bool {
	s = r.Resolve(s)
	var ok bool
	if s.battle {
		_, ok = r.battle[id]
	} else {
		_, ok = r.maps[s.mapID][id]
	}
	return ok
}

// AllForScope returns every slot of a scope ordered by id.
func (r *Registry) AllForScope(s Scope) []Entry {
	s = r.Resolve(s)
	src := r.battle
	if !s.battle {
		src = r.maps[s.mapID]
	}

	entries := make([]Entry, 0, len(src))
	for id, d := range src {
		entries = append(entries, Entry{ID: id, Desc: d})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ID < entries[j].ID
	})
	return entries
}

// EnterMap prepares the registry for a map visit: the map becomes current,
// its table is created if absent, note directives are seeded for ids not
// already present, and every scroll accumulator on the map is reset.
func (r *Registry) EnterMap(mapID int, note string, vars Values) {
	r.current = mapID
	t := r.table(mapID, true)

	seeded := 0
	for _, dir := range ParseNote(mapID, note, vars) {
		if _, exists := t[dir.ID]; exists {
			continue
		}
		t[dir.ID] = dir.Desc
		seeded++
	}

	for _, d := range t {
		if d != nil {
			d.CurrentX, d.CurrentY = 0, 0
		}
	}
	r.logger.Debug("entered map", "map", mapID, "layers", len(t), "seeded", seeded)
}

// ClearBattle removes every battle layer.
func (r *Registry) ClearBattle() {
	r.battle = make(map[int]*Descriptor)
}

// MapIDs returns the ids of every map with a table, sorted.
func (r *Registry) MapIDs() []int {
	ids := make([]int, 0, len(r.maps))
	for id := range r.maps {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Snapshot is a detached copy of the registry contents.
type Snapshot struct {
	CurrentMap int
	Maps       map[int]map[int]*Descriptor
	Battle     map[int]*Descriptor
}

// Export returns a deep copy of the registry contents.
func (r *Registry) Export() Snapshot {
	snap := Snapshot{
		CurrentMap: r.current,
		Maps:       make(map[int]map[int]*Descriptor, len(r.maps)),
		Battle:     make(map[int]*Descriptor, len(r.battle)),
	}
	for mapID, t := range r.maps {
		c := make(map[int]*Descriptor, len(t))
		for id, d := range t {
			c[id] = d.Clone()
		}
		snap.Maps[mapID] = c
	}
	for id, d := range r.battle {
		snap.Battle[id] = d.Clone()
	}
	return snap
}

// Import replaces the registry contents with a deep copy of snap.
func (r *Registry) Import(snap Snapshot) {
	r.current = snap.CurrentMap
	r.maps = make(map[int]map[int]*Descriptor, len(snap.Maps))
	for mapID, t := range snap.Maps {
		c := make(map[int]*Descriptor, len(t))
		for id, d := range t {
			c[id] = d.Clone()
		}
		r.maps[mapID] = c
	}
	r.battle = make(map[int]*Descriptor, len(snap.Battle))
	for id, d := range snap.Battle {
		if d.Active() {
			r.battle[id] = d.Clone()
		}
	}
}

package layers

// Commands is the runtime command surface over a registry. Arguments are
// the flat ordered field lists used by plugin commands; variable references
// resolve against vars when the command runs.
type Commands struct {
	reg  *Registry
	vars Values
}

// NewCommands binds the command surface to a registry and variable store.
func NewCommands(reg *Registry, vars Values) *Commands {
	return &Commands{reg: reg, vars: vars}
}

// Registry returns the underlying registry.
func (c *Commands) Registry() *Registry {
	return c.reg
}

// CreateTiling defines or redefines a tiling layer:
// mapId id graphic xSpeed ySpeed opacity z xShift yShift blend.
func (c *Commands) CreateTiling(fields []string) Key {
	d := TilingFromFields(fields, c.vars)
	return c.reg.CreateOrUpdate(MapScope(d.MapID), d.ID, d.Desc)
}

// CreateStatic defines or redefines a static layer:
// mapId id graphic x y opacity z blend xAnchor yAnchor character rotate.
func (c *Commands) CreateStatic(fields []string) Key {
	d := StaticFromFields(fields, c.vars)
	return c.reg.CreateOrUpdate(MapScope(d.MapID), d.ID, d.Desc)
}

// RemoveLayer blanks a map layer slot, or the whole map when layerID < 0.
func (c *Commands) RemoveLayer(mapID, layerID int) {
	c.reg.Remove(MapScope(mapID), layerID)
}

// SetBattle sets a battle layer (id graphic xSpeed ySpeed opacity z blend).
// Omitting the graphic clears that id. Reports whether a layer remains.
func (c *Commands) SetBattle(fields []string) (int, bool) {
	id, d := BattleFromFields(fields, c.vars)
	c.reg.CreateOrUpdate(BattleScope, id, d)
	return id, d.Active()
}

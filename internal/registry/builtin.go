package registry

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-parallax/internal/layers"
)

// DefaultSlot is the save slot used when none is named.
const DefaultSlot = "quick"

func init() {
	Register(Command{
		Name:    "layer",
		Usage:   "<mapId> <id> <graphic> [xSpeed ySpeed opacity z xShift yShift blend]",
		Summary: "define a tiling layer (mapId 0 = current map)",
		Run:     runLayer,
	})
	Register(Command{
		Name:    "static",
		Usage:   "<mapId> <id> <graphic> [x y opacity z blend xAnchor yAnchor character rotate]",
		Summary: "define a static layer (character -1 = player, >0 = event)",
		Run:     runStatic,
	})
	Register(Command{
		Name:    "remove",
		Usage:   "<mapId> <id>",
		Summary: "blank a layer slot (id < 0 clears the whole map)",
		Run:     runRemove,
	})
	Register(Command{
		Name:    "battle",
		Usage:   "<id> [graphic xSpeed ySpeed opacity z blend] | clear",
		Summary: "set or clear a battle layer",
		Run:     runBattle,
	})
	Register(Command{
		Name:    "refresh",
		Usage:   "",
		Summary: "rebuild live layers from the registry",
		Run:     runRefresh,
	})
	Register(Command{
		Name:    "list",
		Usage:   "[mapId|battle]",
		Summary: "list layer slots (default current map)",
		Run:     runList,
	})
	Register(Command{
		Name:    "var",
		Usage:   "[id [value]]",
		Summary: "show or set game variables",
		Run:     runVar,
	})
	Register(Command{
		Name:    "save",
		Usage:   "[slot]",
		Summary: "save the session",
		Run:     runSave,
	})
	Register(Command{
		Name:    "load",
		Usage:   "[slot]",
		Summary: "load a saved session",
		Run:     runLoad,
	})
	Register(Command{
		Name:    "help",
		Usage:   "",
		Summary: "list commands",
		Run:     runHelp,
	})
}

func runLayer(env Env, args []string) (string, error) {
	if len(args) < 2 {
		return "", ErrUsage
	}
	key := env.Layers().CreateTiling(args)
	return describeSet(env, key), nil
}

func runStatic(env Env, args []string) (string, error) {
	if len(args) < 2 {
		return "", ErrUsage
	}
	key := env.Layers().CreateStatic(args)
	return describeSet(env, key), nil
}

func describeSet(env Env, key layers.Key) string {
	d := env.Layers().Registry().Get(key.Scope, key.ID)
	if !d.Active() {
		return fmt.Sprintf("layer %d on %s is empty", key.ID, key.Scope)
	}
	return fmt.Sprintf("%s layer %d on %s: %s", d.Kind, key.ID, key.Scope, d.Graphic)
}

func runRemove(env Env, args []string) (string, error) {
	if len(args) != 2 {
		return "", ErrUsage
	}
	vars := env.Variables()
	mapID := int(layers.ParseNumber(args[0], vars))
	id := int(layers.ParseNumber(args[1], vars))
	env.Layers().RemoveLayer(mapID, id)

	scope := env.Layers().Registry().Resolve(layers.MapScope(mapID))
	if id < 0 {
		return fmt.Sprintf("cleared all layers on %s", scope), nil
	}
	return fmt.Sprintf("removed layer %d on %s", id, scope), nil
}

func runBattle(env Env, args []string) (string, error) {
	if len(args) == 0 {
		return "", ErrUsage
	}
	if args[0] == "clear" {
		env.Layers().Registry().ClearBattle()
		return "battle layers cleared", nil
	}
	id, active := env.Layers().SetBattle(args)
	if !active {
		return fmt.Sprintf("battle layer %d cleared", id), nil
	}
	return fmt.Sprintf("battle layer %d: %s", id, args[1]), nil
}

func runRefresh(env Env, _ []string) (string, error) {
	res := env.Refresh()
	return fmt.Sprintf("refreshed: %d created, %d removed", res.Created, res.Removed), nil
}

func runList(env Env, args []string) (string, error) {
	reg := env.Layers().Registry()
	scope := layers.MapScope(0)
	switch {
	case len(args) == 0:
	case args[0] == "battle":
		scope = layers.BattleScope
	default:
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return "", ErrUsage
		}
		scope = layers.MapScope(id)
	}
	scope = reg.Resolve(scope)

	entries := reg.AllForScope(scope)
	if len(entries) == 0 {
		return fmt.Sprintf("no layers on %s", scope), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s:", scope)
	for _, e := range entries {
		if !e.Desc.Active() {
			fmt.Fprintf(&b, "\n  %3d  (blank)", e.ID)
			continue
		}
		d := e.Desc
		fmt.Fprintf(&b, "\n  %3d  %-6s %-10s z=%g opacity=%g blend=%s", e.ID, d.Kind, d.Graphic, d.Z, d.Opacity, d.BlendMode())
	}
	return b.String(), nil
}

func runVar(env Env, args []string) (string, error) {
	vars := env.Variables()
	switch len(args) {
	case 0:
		ids := vars.IDs()
		if len(ids) == 0 {
			return "no variables set", nil
		}
		parts := make([]string, len(ids))
		for i, id := range ids {
			parts[i] = fmt.Sprintf("v%d=%g", id, vars.Value(id))
		}
		return strings.Join(parts, " "), nil
	case 1, 2:
		id, err := strconv.Atoi(strings.TrimPrefix(args[0], "v"))
		if err != nil || id <= 0 {
			return "", ErrUsage
		}
		if len(args) == 2 {
			vars.Set(id, layers.ParseNumber(args[1], vars))
		}
		return fmt.Sprintf("v%d=%g", id, vars.Value(id)), nil
	default:
		return "", ErrUsage
	}
}

func runSave(env Env, args []string) (string, error) {
	slot, err := slotArg(args)
	if err != nil {
		return "", err
	}
	if err := env.Save(slot); err != nil {
		return "", err
	}
	return fmt.Sprintf("saved to %q", slot), nil
}

func runLoad(env Env, args []string) (string, error) {
	slot, err := slotArg(args)
	if err != nil {
		return "", err
	}
	if err := env.Load(slot); err != nil {
		return "", err
	}
	return fmt.Sprintf("loaded %q", slot), nil
}

func slotArg(args []string) (string, error) {
	switch len(args) {
	case 0:
		return DefaultSlot, nil
	case 1:
		return args[0], nil
	default:
		return "", ErrUsage
	}
}

func runHelp(_ Env, _ []string) (string, error) {
	var b strings.Builder
	for i, cmd := range List() {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%-8s %s", cmd.Name, cmd.Summary)
		if cmd.Usage != "" {
			fmt.Fprintf(&b, "\n         %s %s", cmd.Name, cmd.Usage)
		}
	}
	return b.String(), nil
}

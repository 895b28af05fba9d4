package layers

import (
	"math"
	"strconv"
	"strings"
)

// Note directive markers.
const (
	MarkerTiling = "LAYER"
	MarkerStatic = "LAYER_S"
)

// Values is the numeric game-variable store that variable references
// resolve against.
type Values interface {
	Value(id int) float64
}

// Directive is one parsed layer definition bound to a map and layer id.
type Directive struct {
	MapID int
	ID    int
	Desc  *Descriptor
}

// ParseNumber converts a field to a number. The field may be a literal
// number or a variable reference ("v5", "\v[5]", "#5", "variable #5"), in
// which case the current value of that variable is returned. Anything that
// does not parse yields 0.
func ParseNumber(field string, vars Values) float64 {
	field = strings.TrimSpace(field)
	if field == "" {
		return 0
	}
	if id, ok := variableRef(field); ok {
		if vars == nil {
			return 0
		}
		return finite(vars.Value(id))
	}
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0
	}
	return finite(v)
}

// variableRef extracts the variable id from a reference token.
func variableRef(field string) (int, bool) {
	lower := strings.ToLower(field)
	var digits string
	switch {
	case strings.HasPrefix(lower, `\v[`) && strings.HasSuffix(lower, "]"):
		digits = lower[3 : len(lower)-1]
	case strings.HasPrefix(lower, "variable"):
		digits = strings.TrimPrefix(strings.TrimSpace(lower[len("variable"):]), "#")
	case strings.HasPrefix(lower, "#"):
		digits = lower[1:]
	case strings.HasPrefix(lower, "v"):
		digits = lower[1:]
	default:
		return 0, false
	}
	digits = strings.TrimSpace(digits)
	if digits == "" {
		return 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	id, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return id, true
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// fieldList is an ordered argument list with forgiving accessors.
type fieldList struct {
	fields []string
	vars   Values
}

func (f fieldList) str(i int) string {
	if i < 0 || i >= len(f.fields) {
		return ""
	}
	return strings.TrimSpace(f.fields[i])
}

func (f fieldList) num(i int) float64 {
	return ParseNumber(f.str(i), f.vars)
}

func (f fieldList) integer(i int) int {
	return int(f.num(i))
}

// TilingFromFields builds a tiling descriptor from
// mapId id graphic xSpeed ySpeed opacity z xShift yShift blend.
func TilingFromFields(fields []string, vars Values) Directive {
	f := fieldList{fields: fields, vars: vars}
	return Directive{
		MapID: f.integer(0),
		ID:    f.integer(1),
		Desc: &Descriptor{
			Kind:    KindTiling,
			Graphic: f.str(2),
			XSpeed:  f.num(3),
			YSpeed:  f.num(4),
			Opacity: f.num(5),
			Z:       f.num(6),
			XShift:  f.num(7),
			YShift:  f.num(8),
			Blend:   f.num(9),
		},
	}
}

// StaticFromFields builds a static descriptor from
// mapId id graphic x y opacity z blend xAnchor yAnchor character rotate.
func StaticFromFields(fields []string, vars Values) Directive {
	f := fieldList{fields: fields, vars: vars}
	return Directive{
		MapID: f.integer(0),
		ID:    f.integer(1),
		Desc: &Descriptor{
			Kind:      KindStatic,
			Graphic:   f.str(2),
			X:         f.num(3),
			Y:         f.num(4),
			Opacity:   f.num(5),
			Z:         f.num(6),
			Blend:     f.num(7),
			XAnchor:   f.num(8),
			YAnchor:   f.num(9),
			Character: f.integer(10),
			Rotate:    f.num(11) != 0,
		},
	}
}

// BattleFromFields builds a battle layer descriptor from
// id graphic xSpeed ySpeed opacity z blend.
func BattleFromFields(fields []string, vars Values) (int, *Descriptor) {
	f := fieldList{fields: fields, vars: vars}
	return f.integer(0), &Descriptor{
		Kind:    KindTiling,
		Graphic: f.str(1),
		XSpeed:  f.num(2),
		YSpeed:  f.num(3),
		Opacity: f.num(4),
		Z:       f.num(5),
		Blend:   f.num(6),
	}
}

// ParseNote scans a map note for layer directives. Each matching line is
// tokenized on whitespace, prefixed with mapID and built exactly like a
// runtime command. Lines that are not directives are ignored.
func ParseNote(mapID int, note string, vars Values) []Directive {
	var out []Directive
	prefix := strconv.Itoa(mapID)

	for _, line := range strings.Split(note, "\n") {
		tokens := strings.Fields(line)
		if len(tokens) == 0 {
			continue
		}

		fields := append([]string{prefix}, tokens[1:]...)
		var d Directive
		switch tokens[0] {
		case MarkerTiling:
			d = TilingFromFields(fields, vars)
		case MarkerStatic:
			d = StaticFromFields(fields, vars)
		default:
			continue
		}
		d.MapID = mapID
		out = append(out, d)
	}
	return out
}

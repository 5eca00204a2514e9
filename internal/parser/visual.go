package parser

import (
	"fmt"
	"regexp"
)

// Color is an 8-bit RGBA color, non-premultiplied.
type Color = [4]uint8

// FontSpec describes a font for a text element.
type FontSpec struct {
	Size   float64
	Color  Color
	Family string
}

// DashStyle describes line dashing: segment length and the on-fraction of
// each segment.
type DashStyle struct {
	Length float64
	Duty   float64
}

// LineStyle describes a stroked line.
type LineStyle struct {
	Thickness float64
	Dash      DashStyle
}

// NameRule maps atom ids to display names via regex replacement. The first
// matching rule wins; ids matching no rule get no label.
type NameRule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// ZoneStyle is the rendering style for all zones whose id matches Pattern.
type ZoneStyle struct {
	Pattern *regexp.Regexp
	Name    string
	Color   Color
	Line    LineStyle
}

// OperationRadius is either an absolute radius or a percentage of the atom
// radius.
type OperationRadius struct {
	Percent bool
	Value   float64
}

// Resolve returns the effective radius given the atom radius.
func (r OperationRadius) Resolve(atomRadius float64) float64 {
	if r.Percent {
		return atomRadius * r.Value
	}
	return r.Value
}

// OperationStyle is the display style of one quantum operation type.
type OperationStyle struct {
	Name   string
	Color  Color
	Radius OperationRadius
}

// LegendToggle controls one section of the sidebar legend.
type LegendToggle struct {
	Display bool
	Title   string
}

// Positions of the coordinate axis numbers relative to the content.
type VPosition int

const (
	VTop VPosition = iota
	VBottom
)

type HPosition int

const (
	HLeft HPosition = iota
	HRight
)

// VisualConfig is a fully decoded visualization style.
type VisualConfig struct {
	Name string

	Viewport struct {
		Color Color
	}

	Atom struct {
		Radius    float64
		Trapped   struct{ Color Color }
		Shuttling struct{ Color Color }
		Legend    struct {
			Name []NameRule
			Font FontSpec
		}
	}

	Zone struct {
		Legend LegendToggle
		Config []ZoneStyle
	}

	Operation struct {
		Legend     LegendToggle
		RZ, RY, CZ OperationStyle
	}

	Machine struct {
		Legend LegendToggle
		Trap   struct {
			Name   string
			Radius float64
			Color  Color
		}
		Shuttle struct {
			Name  string
			Color Color
			Line  LineStyle
		}
	}

	Coordinate struct {
		Tick struct {
			X, Y  float64
			Color Color
			Line  LineStyle
		}
		Number struct {
			Font FontSpec
			X    struct {
				Distance float64
				Position VPosition
			}
			Y struct {
				Distance float64
				Position HPosition
			}
		}
		Axis struct {
			X, Y string
		}
	}

	Sidebar struct {
		Font FontSpec
	}

	Time struct {
		Display bool
		Prefix  string
		Font    FontSpec
	}
}

// AtomName applies the naming rules to an atom id. Ids matching no rule get
// an empty name.
func (v *VisualConfig) AtomName(id string) string {
	for _, rule := range v.Atom.Legend.Name {
		if rule.Pattern.MatchString(id) {
			return rule.Pattern.ReplaceAllString(id, rule.Replacement)
		}
	}
	return ""
}

// ZoneStyleFor returns the first zone style matching the zone id.
func (v *VisualConfig) ZoneStyleFor(id string) (ZoneStyle, bool) {
	for _, z := range v.Zone.Config {
		if z.Pattern.MatchString(id) {
			return z, true
		}
	}
	return ZoneStyle{}, false
}

// ParseVisualConfig parses a style config from source text.
func ParseVisualConfig(src string) (*VisualConfig, error) {
	items, err := ParseConfig(src)
	if err != nil {
		return nil, err
	}
	return ParseVisual(items)
}

// ParseVisual decodes a style config from the generic config tree.
func ParseVisual(items []Item) (*VisualConfig, error) {
	root := NewSection(items)
	v := &VisualConfig{}
	var err error

	if v.Name, err = root.String("name"); err != nil {
		return nil, err
	}

	vp, err := root.RequireBlock("viewport")
	if err != nil {
		return nil, err
	}
	if v.Viewport.Color, err = vp.Color("color"); err != nil {
		return nil, err
	}

	if err := parseAtom(root, v); err != nil {
		return nil, err
	}
	if err := parseZone(root, v); err != nil {
		return nil, err
	}
	if err := parseOperation(root, v); err != nil {
		return nil, err
	}
	if err := parseMachineStyle(root, v); err != nil {
		return nil, err
	}
	if err := parseCoordinate(root, v); err != nil {
		return nil, err
	}

	sb, err := root.RequireBlock("sidebar")
	if err != nil {
		return nil, err
	}
	if v.Sidebar.Font, err = parseFont(sb); err != nil {
		return nil, err
	}

	tm, err := root.RequireBlock("time")
	if err != nil {
		return nil, err
	}
	if v.Time.Display, err = tm.Bool("display"); err != nil {
		return nil, err
	}
	v.Time.Prefix = tm.StringOr("prefix", "")
	if v.Time.Font, err = parseFont(tm); err != nil {
		return nil, err
	}

	return v, nil
}

func parseFont(c Section) (FontSpec, error) {
	f, err := c.RequireBlock("font")
	if err != nil {
		return FontSpec{}, err
	}
	var spec FontSpec
	if spec.Size, err = f.Float("size"); err != nil {
		return FontSpec{}, err
	}
	if spec.Color, err = f.Color("color"); err != nil {
		return FontSpec{}, err
	}
	if spec.Family, err = f.String("family"); err != nil {
		return FontSpec{}, err
	}
	return spec, nil
}

func parseLine(c Section) (LineStyle, error) {
	l, err := c.RequireBlock("line")
	if err != nil {
		return LineStyle{}, err
	}
	var line LineStyle
	if line.Thickness, err = l.Float("thickness"); err != nil {
		return LineStyle{}, err
	}
	d, err := l.RequireBlock("dash")
	if err != nil {
		return LineStyle{}, err
	}
	if line.Dash.Length, err = d.Float("length"); err != nil {
		return LineStyle{}, err
	}
	if line.Dash.Duty, err = percent(d, "duty"); err != nil {
		return LineStyle{}, err
	}
	return line, nil
}

// percent reads a percentage property as a fraction in [0, 1].
func percent(c Section, name string) (float64, error) {
	v, ok := c.Prop(name)
	if !ok {
		return 0, fmt.Errorf("missing property %q", c.at(name))
	}
	if v.Kind != KindPercentage {
		return 0, fmt.Errorf("property %q: expected percentage, got %s", c.at(name), v.Kind)
	}
	f, _ := v.Num.Float64()
	return f / 100, nil
}

func parseLegendToggle(c Section) (LegendToggle, error) {
	l, err := c.RequireBlock("legend")
	if err != nil {
		return LegendToggle{}, err
	}
	var t LegendToggle
	if t.Display, err = l.Bool("display"); err != nil {
		return LegendToggle{}, err
	}
	if t.Title, err = l.String("title"); err != nil {
		return LegendToggle{}, err
	}
	return t, nil
}

func parseAtom(root Section, v *VisualConfig) error {
	a, err := root.RequireBlock("atom")
	if err != nil {
		return err
	}
	if v.Atom.Radius, err = a.Float("radius"); err != nil {
		return err
	}
	tr, err := a.RequireBlock("trapped")
	if err != nil {
		return err
	}
	if v.Atom.Trapped.Color, err = tr.Color("color"); err != nil {
		return err
	}
	sh, err := a.RequireBlock("shuttling")
	if err != nil {
		return err
	}
	if v.Atom.Shuttling.Color, err = sh.Color("color"); err != nil {
		return err
	}
	leg, err := a.RequireBlock("legend")
	if err != nil {
		return err
	}
	if v.Atom.Legend.Font, err = parseFont(leg); err != nil {
		return err
	}
	names, err := leg.RequireBlock("name")
	if err != nil {
		return err
	}
	for _, p := range names.Properties() {
		if p.Key.Kind != KindRegex {
			return fmt.Errorf("%s: naming rule keys must be regexes, got %s", names.at(""), p.Key.Kind)
		}
		repl, err := p.Value.Text()
		if err != nil {
			return fmt.Errorf("%s: naming rule replacement: %w", names.at(""), err)
		}
		v.Atom.Legend.Name = append(v.Atom.Legend.Name, NameRule{
			Pattern:     p.Key.Regex,
			Replacement: repl,
		})
	}
	return nil
}

func parseZone(root Section, v *VisualConfig) error {
	z, err := root.RequireBlock("zone")
	if err != nil {
		return err
	}
	if v.Zone.Legend, err = parseLegendToggle(z); err != nil {
		return err
	}
	for _, b := range z.NamedBlocks("config") {
		if b.Arg.Kind != KindRegex {
			return fmt.Errorf("zone.config: expected regex key, got %s", b.Arg.Kind)
		}
		sec := Section{Path: "zone.config " + b.Arg.String(), Items: b.Items}
		style := ZoneStyle{Pattern: b.Arg.Regex}
		if style.Name, err = sec.String("name"); err != nil {
			return err
		}
		if style.Color, err = sec.Color("color"); err != nil {
			return err
		}
		if style.Line, err = parseLine(sec); err != nil {
			return err
		}
		v.Zone.Config = append(v.Zone.Config, style)
	}
	return nil
}

func parseOperation(root Section, v *VisualConfig) error {
	o, err := root.RequireBlock("operation")
	if err != nil {
		return err
	}
	if v.Operation.Legend, err = parseLegendToggle(o); err != nil {
		return err
	}
	cfg, err := o.RequireBlock("config")
	if err != nil {
		return err
	}
	ops := []struct {
		name string
		dst  *OperationStyle
	}{
		{"rz", &v.Operation.RZ},
		{"ry", &v.Operation.RY},
		{"cz", &v.Operation.CZ},
	}
	for _, op := range ops {
		sec, err := cfg.RequireBlock(op.name)
		if err != nil {
			return err
		}
		if op.dst.Name, err = sec.String("name"); err != nil {
			return err
		}
		if op.dst.Color, err = sec.Color("color"); err != nil {
			return err
		}
		r, ok := sec.Prop("radius")
		if !ok {
			return fmt.Errorf("missing property %q", sec.at("radius"))
		}
		switch r.Kind {
		case KindNumber:
			f, _ := r.Num.Float64()
			op.dst.Radius = OperationRadius{Value: f}
		case KindPercentage:
			f, _ := r.Num.Float64()
			op.dst.Radius = OperationRadius{Percent: true, Value: f / 100}
		default:
			return fmt.Errorf("property %q: expected number or percentage, got %s", sec.at("radius"), r.Kind)
		}
	}
	return nil
}

func parseMachineStyle(root Section, v *VisualConfig) error {
	m, err := root.RequireBlock("machine")
	if err != nil {
		return err
	}
	if v.Machine.Legend, err = parseLegendToggle(m); err != nil {
		return err
	}
	tr, err := m.RequireBlock("trap")
	if err != nil {
		return err
	}
	if v.Machine.Trap.Name, err = tr.String("name"); err != nil {
		return err
	}
	if v.Machine.Trap.Radius, err = tr.Float("radius"); err != nil {
		return err
	}
	if v.Machine.Trap.Color, err = tr.Color("color"); err != nil {
		return err
	}
	sh, err := m.RequireBlock("shuttle")
	if err != nil {
		return err
	}
	if v.Machine.Shuttle.Name, err = sh.String("name"); err != nil {
		return err
	}
	if v.Machine.Shuttle.Color, err = sh.Color("color"); err != nil {
		return err
	}
	if v.Machine.Shuttle.Line, err = parseLine(sh); err != nil {
		return err
	}
	return nil
}

func parseCoordinate(root Section, v *VisualConfig) error {
	c, err := root.RequireBlock("coordinate")
	if err != nil {
		return err
	}

	tick, err := c.RequireBlock("tick")
	if err != nil {
		return err
	}
	if v.Coordinate.Tick.X, err = tick.Float("x"); err != nil {
		return err
	}
	if v.Coordinate.Tick.Y, err = tick.Float("y"); err != nil {
		return err
	}
	if v.Coordinate.Tick.Color, err = tick.Color("color"); err != nil {
		return err
	}
	if v.Coordinate.Tick.Line, err = parseLine(tick); err != nil {
		return err
	}

	num, err := c.RequireBlock("number")
	if err != nil {
		return err
	}
	if v.Coordinate.Number.Font, err = parseFont(num); err != nil {
		return err
	}
	x, err := num.RequireBlock("x")
	if err != nil {
		return err
	}
	if v.Coordinate.Number.X.Distance, err = x.Float("distance"); err != nil {
		return err
	}
	switch pos := x.StringOr("position", "bottom"); pos {
	case "bottom":
		v.Coordinate.Number.X.Position = VBottom
	case "top":
		v.Coordinate.Number.X.Position = VTop
	default:
		return fmt.Errorf("property %q: expected top or bottom, got %q", x.at("position"), pos)
	}
	y, err := num.RequireBlock("y")
	if err != nil {
		return err
	}
	if v.Coordinate.Number.Y.Distance, err = y.Float("distance"); err != nil {
		return err
	}
	switch pos := y.StringOr("position", "left"); pos {
	case "left":
		v.Coordinate.Number.Y.Position = HLeft
	case "right":
		v.Coordinate.Number.Y.Position = HRight
	default:
		return fmt.Errorf("property %q: expected left or right, got %q", y.at("position"), pos)
	}

	axis, err := c.RequireBlock("axis")
	if err != nil {
		return err
	}
	if v.Coordinate.Axis.X, err = axis.String("x"); err != nil {
		return err
	}
	if v.Coordinate.Axis.Y, err = axis.String("y"); err != nil {
		return err
	}
	return nil
}

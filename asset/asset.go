package asset

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"

	"github.com/hutsulruslan/arplace"
	"github.com/hutsulruslan/arplace/scene"
)

// Template is an immutable loaded asset definition.
//
// A template owns a prototype node tree that is never placed directly;
// every placement clones it via Instantiate so instances are independent
// of the template and of each other.
type Template struct {
	name  string
	proto *scene.Node
}

// Name returns the template's name.
func (t *Template) Name() string { return t.name }

// Instantiate returns a fresh copy of the template's node tree with new
// node identifiers. The copy shares no mutable state with the template.
func (t *Template) Instantiate() *scene.Node {
	return t.proto.Clone()
}

// modelFile is the on-disk model manifest format.
type modelFile struct {
	Name  string      `json:"name"`
	Nodes []modelNode `json:"nodes"`
}

type modelNode struct {
	Name        string     `json:"name"`
	Position    [3]float64 `json:"position"`
	Orientation [4]float64 `json:"orientation"` // w, x, y, z; zero means identity
	HalfExtent  [3]float64 `json:"halfExtent"`
	Color       string     `json:"color"` // #RRGGBB or #RRGGBBAA
}

// Decode parses a JSON model manifest into a Template.
func Decode(data []byte) (*Template, error) {
	var mf modelFile
	if err := json.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("asset: parse model: %w", err)
	}
	if mf.Name == "" {
		return nil, fmt.Errorf("asset: model has no name")
	}
	if len(mf.Nodes) == 0 {
		return nil, fmt.Errorf("asset: model %q has no nodes", mf.Name)
	}

	root := scene.NewNode(mf.Name, scene.KindGroup)
	for i, mn := range mf.Nodes {
		name := mn.Name
		if name == "" {
			name = fmt.Sprintf("%s.%d", mf.Name, i)
		}
		n := scene.NewNode(name, scene.KindMesh)

		pose := arplace.PoseAt(arplace.V3(mn.Position[0], mn.Position[1], mn.Position[2]))
		if q := (arplace.Quat{W: mn.Orientation[0], X: mn.Orientation[1], Y: mn.Orientation[2], Z: mn.Orientation[3]}); q != (arplace.Quat{}) {
			pose.Orientation = q.Normalize()
		}
		n.SetPose(pose)

		n.HalfExtent = arplace.V3(mn.HalfExtent[0], mn.HalfExtent[1], mn.HalfExtent[2])

		c, err := parseColor(mn.Color)
		if err != nil {
			return nil, fmt.Errorf("asset: model %q node %q: %w", mf.Name, name, err)
		}
		n.Color = c

		root.AddChild(n)
	}

	return &Template{name: mf.Name, proto: root}, nil
}

// Load reads and decodes a model manifest from disk.
func Load(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("asset: read model: %w", err)
	}
	return Decode(data)
}

// defaultColor is used when a node specifies no color.
var defaultColor = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF}

// parseColor parses "#RRGGBB" or "#RRGGBBAA". Empty input yields the
// default gray.
func parseColor(s string) (color.RGBA, error) {
	if s == "" {
		return defaultColor, nil
	}
	if s[0] != '#' || (len(s) != 7 && len(s) != 9) {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}

	var c color.RGBA
	c.A = 0xFF
	var err error
	switch len(s) {
	case 7:
		_, err = fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B)
	case 9:
		_, err = fmt.Sscanf(s, "#%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
	}
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	return c, nil
}

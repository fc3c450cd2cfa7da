package render

import (
	"image/color"
	"math"

	"github.com/hutsulruslan/arplace"
	"github.com/hutsulruslan/arplace/scene"
)

// reticleSegments is the number of line segments used to approximate the
// reticle ring.
const reticleSegments = 48

// OverlayRenderer draws the scene graph as a line overlay: the reticle as
// a surface-aligned ring, mesh nodes as wireframe boxes.
//
// This is the software path. It writes pixels directly into a CPU target
// and has no GPU dependency; the gpu build of the package provides an
// accelerated alternative with the same Draw contract.
type OverlayRenderer struct {
	camera *Camera
}

// NewOverlayRenderer creates a software overlay renderer drawing through
// the given camera.
func NewOverlayRenderer(camera *Camera) *OverlayRenderer {
	return &OverlayRenderer{camera: camera}
}

// Camera returns the renderer's camera.
func (r *OverlayRenderer) Camera() *Camera { return r.camera }

// Draw renders every visible node of the graph onto the target.
//
// The target must support CPU access; GPU-only targets are skipped. The
// graph is read but never modified.
func (r *OverlayRenderer) Draw(g *scene.Graph, target RenderTarget) {
	if g == nil || target == nil || target.Pixels() == nil {
		return
	}
	g.Visit(func(n *scene.Node, world arplace.Pose) {
		switch n.Kind() {
		case scene.KindReticle:
			r.drawReticle(n, world, target)
		case scene.KindMesh:
			r.drawBox(n, world, target)
		}
	})
}

// drawReticle draws the marker as a ring in the node's local XZ plane,
// so the ring lies flat on the estimated surface.
func (r *OverlayRenderer) drawReticle(n *scene.Node, world arplace.Pose, target RenderTarget) {
	radius := n.HalfExtent.X
	if radius <= 0 {
		return
	}

	var prevX, prevY float64
	prevOK := false
	for i := 0; i <= reticleSegments; i++ {
		a := 2 * math.Pi * float64(i) / reticleSegments
		p := world.Transform(arplace.V3(radius*math.Cos(a), 0, radius*math.Sin(a)))
		x, y, ok := r.camera.Project(p)
		if ok && prevOK {
			drawLine(target, prevX, prevY, x, y, n.Color)
		}
		prevX, prevY, prevOK = x, y, ok
	}
}

// boxEdges lists the 12 edges of a unit box as corner index pairs.
// Corner i has coordinates (±1, ±1, ±1) with bit 0 = X, 1 = Y, 2 = Z.
var boxEdges = [12][2]int{
	{0, 1}, {2, 3}, {4, 5}, {6, 7}, // X-aligned
	{0, 2}, {1, 3}, {4, 6}, {5, 7}, // Y-aligned
	{0, 4}, {1, 5}, {2, 6}, {3, 7}, // Z-aligned
}

// drawBox draws the node's bounding box as a wireframe.
func (r *OverlayRenderer) drawBox(n *scene.Node, world arplace.Pose, target RenderTarget) {
	he := n.HalfExtent
	if he.X <= 0 && he.Y <= 0 && he.Z <= 0 {
		return
	}

	var px, py [8]float64
	var pok [8]bool
	for i := 0; i < 8; i++ {
		corner := arplace.V3(
			he.X*sign(i&1 != 0),
			he.Y*sign(i&2 != 0),
			he.Z*sign(i&4 != 0),
		)
		px[i], py[i], pok[i] = r.camera.Project(world.Transform(corner))
	}

	for _, e := range boxEdges {
		a, b := e[0], e[1]
		if pok[a] && pok[b] {
			drawLine(target, px[a], py[a], px[b], py[b], n.Color)
		}
	}
}

func sign(positive bool) float64 {
	if positive {
		return 1
	}
	return -1
}

// drawLine rasterizes a line segment into the target's pixel buffer.
func drawLine(target RenderTarget, x0, y0, x1, y1 float64, c color.RGBA) {
	ix0, iy0 := int(math.Round(x0)), int(math.Round(y0))
	ix1, iy1 := int(math.Round(x1)), int(math.Round(y1))

	dx := abs(ix1 - ix0)
	dy := -abs(iy1 - iy0)
	sx := step(ix0, ix1)
	sy := step(iy0, iy1)
	err := dx + dy

	for {
		setPixel(target, ix0, iy0, c)
		if ix0 == ix1 && iy0 == iy1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			ix0 += sx
		}
		if e2 <= dx {
			err += dx
			iy0 += sy
		}
	}
}

func setPixel(target RenderTarget, x, y int, c color.RGBA) {
	if x < 0 || y < 0 || x >= target.Width() || y >= target.Height() {
		return
	}
	pix := target.Pixels()
	i := y*target.Stride() + x*4
	pix[i] = c.R
	pix[i+1] = c.G
	pix[i+2] = c.B
	pix[i+3] = c.A
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func step(from, to int) int {
	if from < to {
		return 1
	}
	return -1
}

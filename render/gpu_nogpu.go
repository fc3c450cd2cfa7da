//go:build nogpu

package render

import (
	"fmt"

	"github.com/hutsulruslan/arplace/scene"
)

// GPUOverlay is unavailable in nogpu builds.
type GPUOverlay struct {
	camera *Camera
}

// NewGPUOverlay always fails in nogpu builds; use the software
// OverlayRenderer instead.
func NewGPUOverlay(camera *Camera) (*GPUOverlay, error) {
	return nil, fmt.Errorf("overlay: built without GPU support")
}

// Camera returns the renderer's camera.
func (o *GPUOverlay) Camera() *Camera { return o.camera }

// SetDeviceProvider always fails in nogpu builds.
func (o *GPUOverlay) SetDeviceProvider(provider any) error {
	return fmt.Errorf("overlay: built without GPU support")
}

// Draw always fails in nogpu builds.
func (o *GPUOverlay) Draw(g *scene.Graph, target RenderTarget) error {
	return fmt.Errorf("overlay: built without GPU support")
}

// Close is a no-op in nogpu builds.
func (o *GPUOverlay) Close() {}

// Package render draws the placement overlay: the reticle and the placed
// instances, projected from the tracked scene graph onto a render target.
//
// Rendering is split the same way the rest of the module is: the loop owns
// the scene state, this package only reads it. The software OverlayRenderer
// draws into a CPU pixmap and is the default; a GPU overlay path compiles
// its shader with naga and runs on a wgpu HAL device when one is available
// (or supplied by the host via a DeviceHandle), falling back to software
// otherwise.
package render

//go:build !nogpu

package render

import (
	_ "embed"
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"time"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"

	"github.com/hutsulruslan/arplace"
	"github.com/hutsulruslan/arplace/scene"
)

//go:embed shaders/overlay.wgsl
var overlayShaderSource string

// overlaySegment is the GPU-side line segment layout. Must match the
// Segment struct in overlay.wgsl.
type overlaySegment struct {
	X0, Y0, X1, Y1         float32
	ColorR, ColorG, ColorB float32
	ColorA                 float32
}

// overlayFrameParams is the per-dispatch uniform. Must match the Params
// struct in overlay.wgsl.
type overlayFrameParams struct {
	TargetWidth  uint32
	TargetHeight uint32
	SegmentIndex uint32
	_            uint32
}

// GPUOverlay renders the overlay with a wgpu/hal compute shader.
//
// Projected line segments are uploaded once per frame and composited
// over the target's pixels on the GPU. The shader is WGSL compiled to
// SPIR-V with naga at startup.
//
// The overlay can either create its own standalone device or share one
// from a host via SetDeviceProvider.
type GPUOverlay struct {
	mu sync.Mutex

	camera *Camera

	instance hal.Instance
	device   hal.Device
	queue    hal.Queue

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.ComputePipeline

	externalDevice bool // shared device: don't destroy on Close
	ready          bool
}

// NewGPUOverlay creates a GPU overlay renderer with a standalone device.
// Callers should fall back to the software OverlayRenderer on error.
func NewGPUOverlay(camera *Camera) (*GPUOverlay, error) {
	o := &GPUOverlay{camera: camera}
	if err := o.initGPU(); err != nil {
		return nil, err
	}
	return o, nil
}

// Camera returns the renderer's camera.
func (o *GPUOverlay) Camera() *Camera { return o.camera }

func (o *GPUOverlay) initGPU() error {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return fmt.Errorf("vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("create instance: %w", err)
	}
	o.instance = instance
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		return fmt.Errorf("no GPU adapters found")
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		return fmt.Errorf("open device: %w", err)
	}
	o.device = openDev.Device
	o.queue = openDev.Queue
	if err := o.createPipeline(); err != nil {
		o.device.Destroy()
		o.device = nil
		o.queue = nil
		return fmt.Errorf("create pipeline: %w", err)
	}
	o.ready = true
	arplace.Logger().Info("gpu overlay initialized", "adapter", selected.Info.Name)
	return nil
}

// SetDeviceProvider switches the overlay to a shared GPU device from an
// external provider (e.g. a gpucontext host). The provider must implement
// HalDevice() any and HalQueue() any returning hal.Device and hal.Queue.
func (o *GPUOverlay) SetDeviceProvider(provider any) error {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return fmt.Errorf("overlay: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return fmt.Errorf("overlay: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return fmt.Errorf("overlay: provider HalQueue is not hal.Queue")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	// Destroy own resources if we created them.
	o.destroyPipeline()
	if !o.externalDevice && o.device != nil {
		o.device.Destroy()
	}
	if o.instance != nil {
		o.instance.Destroy()
		o.instance = nil
	}

	o.device = device
	o.queue = queue
	o.externalDevice = true

	if err := o.createPipeline(); err != nil {
		o.ready = false
		return fmt.Errorf("overlay: create pipeline with shared device: %w", err)
	}
	o.ready = true
	arplace.Logger().Info("gpu overlay switched to shared device")
	return nil
}

func (o *GPUOverlay) createPipeline() error {
	spirvBytes, err := naga.Compile(overlayShaderSource)
	if err != nil {
		return fmt.Errorf("compile overlay shader: %w", err)
	}
	// SPIR-V is little-endian 32-bit words.
	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = binary.LittleEndian.Uint32(spirvBytes[i*4:])
	}

	shader, err := o.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "overlay",
		Source: hal.ShaderSource{SPIRV: spirvCode},
	})
	if err != nil {
		return fmt.Errorf("create overlay shader module: %w", err)
	}
	o.shader = shader

	bindLayout, err := o.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "overlay_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{Binding: 0, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}},
			{Binding: 1, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage}},
			{Binding: 2, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage}},
		},
	})
	if err != nil {
		return fmt.Errorf("create overlay bind group layout: %w", err)
	}
	o.bindLayout = bindLayout

	pipeLayout, err := o.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label: "overlay_pipe_layout", BindGroupLayouts: []hal.BindGroupLayout{o.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("create overlay pipeline layout: %w", err)
	}
	o.pipeLayout = pipeLayout

	pipeline, err := o.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label: "overlay_pipeline", Layout: o.pipeLayout,
		Compute: hal.ComputeState{Module: o.shader, EntryPoint: "main"},
	})
	if err != nil {
		return fmt.Errorf("create overlay compute pipeline: %w", err)
	}
	o.pipeline = pipeline

	return nil
}

func (o *GPUOverlay) destroyPipeline() {
	if o.device == nil {
		return
	}
	if o.pipeline != nil {
		o.device.DestroyComputePipeline(o.pipeline)
		o.pipeline = nil
	}
	if o.pipeLayout != nil {
		o.device.DestroyPipelineLayout(o.pipeLayout)
		o.pipeLayout = nil
	}
	if o.bindLayout != nil {
		o.device.DestroyBindGroupLayout(o.bindLayout)
		o.bindLayout = nil
	}
	if o.shader != nil {
		o.device.DestroyShaderModule(o.shader)
		o.shader = nil
	}
}

// Close releases GPU resources. Shared devices are left alive.
func (o *GPUOverlay) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ready = false
	o.destroyPipeline()
	if !o.externalDevice && o.device != nil {
		o.device.Destroy()
	}
	o.device = nil
	o.queue = nil
	if o.instance != nil {
		o.instance.Destroy()
		o.instance = nil
	}
}

// Draw composites the graph's overlay onto the target via the GPU.
//
// The target must support CPU access: segment projection happens on the
// CPU and the composited pixels are read back into the target buffer.
func (o *GPUOverlay) Draw(g *scene.Graph, target RenderTarget) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.ready {
		return fmt.Errorf("overlay: GPU not initialized")
	}
	if g == nil || target == nil || target.Pixels() == nil {
		return nil
	}

	segments := o.collectSegments(g)
	if len(segments) == 0 {
		return nil
	}
	return o.dispatch(segments, target)
}

// collectSegments projects every visible node into screen-space line
// segments, mirroring the software renderer's geometry.
func (o *GPUOverlay) collectSegments(g *scene.Graph) []overlaySegment {
	var segs []overlaySegment
	add := func(x0, y0, x1, y1 float64, n *scene.Node) {
		segs = append(segs, overlaySegment{
			X0: float32(x0), Y0: float32(y0), X1: float32(x1), Y1: float32(y1),
			ColorR: float32(n.Color.R) / 255, ColorG: float32(n.Color.G) / 255,
			ColorB: float32(n.Color.B) / 255, ColorA: float32(n.Color.A) / 255,
		})
	}

	g.Visit(func(n *scene.Node, world arplace.Pose) {
		switch n.Kind() {
		case scene.KindReticle:
			radius := n.HalfExtent.X
			if radius <= 0 {
				return
			}
			var prevX, prevY float64
			prevOK := false
			for i := 0; i <= reticleSegments; i++ {
				a := 2 * math.Pi * float64(i) / reticleSegments
				p := world.Transform(arplace.V3(radius*math.Cos(a), 0, radius*math.Sin(a)))
				x, y, ok := o.camera.Project(p)
				if ok && prevOK {
					add(prevX, prevY, x, y, n)
				}
				prevX, prevY, prevOK = x, y, ok
			}
		case scene.KindMesh:
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
				px[i], py[i], pok[i] = o.camera.Project(world.Transform(corner))
			}
			for _, e := range boxEdges {
				a, b := e[0], e[1]
				if pok[a] && pok[b] {
					add(px[a], py[a], px[b], py[b], n)
				}
			}
		}
	})
	return segs
}

// dispatch uploads the segments and target pixels, runs one compute pass
// per segment with implicit storage barriers between passes, then reads
// the composited pixels back into the target.
func (o *GPUOverlay) dispatch(segments []overlaySegment, target RenderTarget) error {
	w, h := uint32(target.Width()), uint32(target.Height()) //nolint:gosec // dimensions always fit uint32
	pixelBufSize := uint64(w * h * 4)
	segBytes := packSegments(segments)

	segBuf, err := o.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "overlay_segments", Size: uint64(len(segBytes)),
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create segments buffer: %w", err)
	}
	defer o.device.DestroyBuffer(segBuf)

	pixelBuf, err := o.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "overlay_pixels", Size: pixelBufSize,
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopySrc | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create pixels buffer: %w", err)
	}
	defer o.device.DestroyBuffer(pixelBuf)

	stagingBuf, err := o.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "overlay_staging", Size: pixelBufSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create staging buffer: %w", err)
	}
	defer o.device.DestroyBuffer(stagingBuf)

	o.queue.WriteBuffer(segBuf, 0, segBytes)
	o.queue.WriteBuffer(pixelBuf, 0, target.Pixels()[:pixelBufSize])

	uniformBufs, bindGroups, err := o.createPerSegmentBindings(len(segments), w, h, segBuf, segBytes, pixelBuf, pixelBufSize)
	if err != nil {
		o.cleanupBindings(uniformBufs, bindGroups)
		return err
	}
	defer o.cleanupBindings(uniformBufs, bindGroups)

	return o.encodePasses(bindGroups, pixelBuf, stagingBuf, w, h, pixelBufSize, target)
}

// createPerSegmentBindings creates one uniform buffer and bind group per
// segment; all bind groups share the segments and pixels buffers.
func (o *GPUOverlay) createPerSegmentBindings(
	n int, w, h uint32,
	segBuf hal.Buffer, segBytes []byte,
	pixelBuf hal.Buffer, pixelBufSize uint64,
) ([]hal.Buffer, []hal.BindGroup, error) {
	paramSize := uint64(unsafe.Sizeof(overlayFrameParams{}))
	uniformBufs := make([]hal.Buffer, 0, n)
	bindGroups := make([]hal.BindGroup, 0, n)

	for i := 0; i < n; i++ {
		params := overlayFrameParams{
			TargetWidth: w, TargetHeight: h,
			SegmentIndex: uint32(i), //nolint:gosec // segment index fits uint32
		}
		paramsBytes := structToBytes(unsafe.Pointer(&params), unsafe.Sizeof(params)) //nolint:gosec // safe struct access

		ub, err := o.device.CreateBuffer(&hal.BufferDescriptor{
			Label: "overlay_params", Size: paramSize,
			Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			return uniformBufs, bindGroups, fmt.Errorf("create uniform buffer %d: %w", i, err)
		}
		uniformBufs = append(uniformBufs, ub)
		o.queue.WriteBuffer(ub, 0, paramsBytes)

		bg, err := o.device.CreateBindGroup(&hal.BindGroupDescriptor{
			Label: "overlay_bind", Layout: o.bindLayout,
			Entries: []gputypes.BindGroupEntry{
				{Binding: 0, Resource: gputypes.BufferBinding{Buffer: ub.NativeHandle(), Offset: 0, Size: paramSize}},
				{Binding: 1, Resource: gputypes.BufferBinding{Buffer: segBuf.NativeHandle(), Offset: 0, Size: uint64(len(segBytes))}},
				{Binding: 2, Resource: gputypes.BufferBinding{Buffer: pixelBuf.NativeHandle(), Offset: 0, Size: pixelBufSize}},
			},
		})
		if err != nil {
			return uniformBufs, bindGroups, fmt.Errorf("create bind group %d: %w", i, err)
		}
		bindGroups = append(bindGroups, bg)
	}

	return uniformBufs, bindGroups, nil
}

func (o *GPUOverlay) cleanupBindings(uniformBufs []hal.Buffer, bindGroups []hal.BindGroup) {
	for _, bg := range bindGroups {
		if bg != nil {
			o.device.DestroyBindGroup(bg)
		}
	}
	for _, ub := range uniformBufs {
		if ub != nil {
			o.device.DestroyBuffer(ub)
		}
	}
}

// encodePasses records one compute pass per segment in a single command
// encoder, copies the result to the staging buffer and reads it back.
func (o *GPUOverlay) encodePasses(
	bindGroups []hal.BindGroup, pixelBuf, stagingBuf hal.Buffer,
	w, h uint32, pixelBufSize uint64, target RenderTarget,
) error {
	encoder, err := o.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "overlay_encoder"})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("overlay"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	for _, bg := range bindGroups {
		pass := encoder.BeginComputePass(&hal.ComputePassDescriptor{Label: "overlay_pass"})
		pass.SetPipeline(o.pipeline)
		pass.SetBindGroup(0, bg, nil)
		pass.Dispatch((w+7)/8, (h+7)/8, 1)
		pass.End()
	}

	encoder.CopyBufferToBuffer(pixelBuf, stagingBuf, []hal.BufferCopy{
		{SrcOffset: 0, DstOffset: 0, Size: pixelBufSize},
	})
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer o.device.FreeCommandBuffer(cmdBuf)

	fence, err := o.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer o.device.DestroyFence(fence)
	if err := o.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	fenceOK, err := o.device.Wait(fence, 1, 5*time.Second)
	if err != nil || !fenceOK {
		return fmt.Errorf("wait for GPU: ok=%v err=%w", fenceOK, err)
	}

	readback := target.Pixels()[:pixelBufSize]
	if err := o.queue.ReadBuffer(stagingBuf, 0, readback); err != nil {
		return fmt.Errorf("readback: %w", err)
	}
	return nil
}

// packSegments serializes segments into a byte slice for GPU upload.
func packSegments(segments []overlaySegment) []byte {
	segSize := int(unsafe.Sizeof(overlaySegment{}))
	out := make([]byte, segSize*len(segments))
	for i := range segments {
		src := structToBytes(unsafe.Pointer(&segments[i]), unsafe.Sizeof(segments[i])) //nolint:gosec // safe struct access
		copy(out[i*segSize:], src)
	}
	return out
}

func structToBytes(ptr unsafe.Pointer, size uintptr) []byte {
	return unsafe.Slice((*byte)(ptr), size) //nolint:gosec // safe struct serialization
}

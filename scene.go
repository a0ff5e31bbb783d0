package hexfolio

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const defaultCommandCap = 1024

// Scene owns two node trees, the camera, the frame clock and the render
// buffers. Root is drawn through the camera; UI is drawn in screen space on
// top of it.
type Scene struct {
	root   *Node
	ui     *Node
	camera *Camera
	clock  Clock
	debug  bool

	// ClearColor fills the screen before drawing when its alpha is non-zero.
	ClearColor Color

	width, height float64
	updateFunc    func() error

	// Render state
	commands []RenderCommand
	sortBuf  []RenderCommand
	updates  []*Node

	// Input state
	pointer    pointerState
	hitBuf     []*Node
	touchBuf   []ebiten.TouchID
	keyBuf     []ebiten.Key
	keyHandler func(ebiten.Key)

	injectQueue []injectedEvent

	// ScreenshotDir is where Screenshot writes PNGs. Defaults to
	// "screenshots".
	ScreenshotDir   string
	screenshotQueue []string
}

// NewScene creates a scene with empty world and UI roots.
func NewScene() *Scene {
	return &Scene{
		root:     NewContainer("root"),
		ui:       NewContainer("ui"),
		camera:   newCamera(Rect{}),
		commands: make([]RenderCommand, 0, defaultCommandCap),
		sortBuf:  make([]RenderCommand, 0, defaultCommandCap),
	}
}

// Root returns the world-space root, drawn through the camera.
func (s *Scene) Root() *Node {
	return s.root
}

// UI returns the screen-space root, drawn after the world.
func (s *Scene) UI() *Node {
	return s.ui
}

// Camera returns the scene camera.
func (s *Scene) Camera() *Camera {
	return s.camera
}

// Clock returns the scene's frame clock.
func (s *Scene) Clock() *Clock {
	return &s.clock
}

// SetViewport records the drawable size in pixels and keeps the camera
// viewport in sync with it.
func (s *Scene) SetViewport(w, h float64) {
	s.width, s.height = w, h
	s.camera.SyncViewport(w, h)
}

// Viewport returns the drawable size set by SetViewport.
func (s *Scene) Viewport() (w, h float64) {
	return s.width, s.height
}

// SetUpdateFunc sets a callback run at the end of every Update.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// Update processes input and advances one tick at ebiten's TPS.
func (s *Scene) Update() error {
	s.processInput()
	return s.Step(1.0 / float64(ebiten.TPS()))
}

// Step advances the clock by dt seconds, refreshes world transforms and runs
// every node's OnUpdate callback, then the scene update func.
func (s *Scene) Step(dt float64) error {
	ft := s.clock.Advance(dt)

	updateWorldTransform(s.root, identityTransform, 1, false)
	updateWorldTransform(s.ui, identityTransform, 1, false)

	// Collect first: callbacks may add, remove or dispose nodes.
	s.updates = s.updates[:0]
	s.updates = collectUpdaters(s.root, s.updates)
	s.updates = collectUpdaters(s.ui, s.updates)
	for _, n := range s.updates {
		if fn := n.OnUpdate; fn != nil && !n.disposed {
			fn(ft)
		}
	}
	clear(s.updates)

	if s.updateFunc != nil {
		return s.updateFunc()
	}
	return nil
}

func collectUpdaters(n *Node, buf []*Node) []*Node {
	if n.OnUpdate != nil {
		buf = append(buf, n)
	}
	for _, child := range n.children {
		buf = collectUpdaters(child, buf)
	}
	return buf
}

// Draw renders the world through the camera, then the UI tree.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}
	s.drawTree(screen, s.root, s.camera.computeViewMatrix())
	s.drawTree(screen, s.ui, identityTransform)
	s.flushScreenshots(screen)
}

func (s *Scene) drawTree(target *ebiten.Image, root *Node, view [6]float64) {
	s.commands = s.commands[:0]

	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	treeOrder := 0
	s.traverse(root, view, identityTransform, 1, false, &treeOrder)

	if s.debug {
		stats.traverseTime = time.Since(t0)
		t0 = time.Now()
	}

	s.sortCommands()

	if s.debug {
		stats.sortTime = time.Since(t0)
		stats.commandCount = len(s.commands)
		t0 = time.Now()
	}

	s.submitBatches(target)

	if s.debug {
		stats.submitTime = time.Since(t0)
		stats.vertexCount = countVertices(s.commands)
		s.debugLog(root.Name, stats)
	}
}

// SetDebugMode enables per-frame timing logs on stderr and disposed-node
// checks in tree operations.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recent SetDebugMode so node operations, which
// have no Scene pointer, can check it.
var globalDebug bool

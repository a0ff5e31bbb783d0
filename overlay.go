package hexfolio

// ModalState is the stage of a Modal.
type ModalState uint8

const (
	ModalClosed ModalState = iota
	ModalOpening
	ModalOpen
	ModalClosingTrack
	ModalClosingHandoff
)

var modalStateNames = [...]string{"closed", "opening", "open", "closing-track", "closing-handoff"}

func (s ModalState) String() string {
	if int(s) < len(modalStateNames) {
		return modalStateNames[s]
	}
	return "unknown"
}

// modalZIndex keeps the modal above the page in the UI tree.
const modalZIndex = 1000

// Modal is the detail overlay driven by a Selector. It grows out of the
// selected card, and on close flies back onto the card's live position and
// hands off to a ghost before the card is revealed again. Its node's
// OnUpdate advances the state machine once per frame.
type Modal struct {
	scene    *Scene
	selector *Selector
	cfg      ModalConfig

	node     *Node
	backdrop *Node
	shell    *Node
	fill     *Node
	content  *Node
	ghost    *Node

	fillMesh  meshBuilder
	ghostMesh meshBuilder
	fillSize  [3]float64
	ghostSize [2]float64

	state   ModalState
	sel     Selection
	box     Rect
	opening *OpeningAnimator
	closing *ClosingAnimator

	vw, vh   float64
	disposed bool

	// OnStateChange runs after every state transition.
	OnStateChange func(ModalState)
}

// NewModal builds the modal nodes under the scene's UI root and subscribes
// to selector.
func NewModal(scene *Scene, selector *Selector, cfg ModalConfig) *Modal {
	cfg = cfg.WithDefaults()
	m := &Modal{scene: scene, selector: selector, cfg: cfg}

	m.node = NewContainer("modal")
	m.node.ZIndex = modalZIndex
	m.node.Visible = false

	m.backdrop = NewRect("modal_backdrop", 1, 1, cfg.BackdropColor)
	m.backdrop.OnClick = func(ClickContext) { selector.CloseProject() }

	m.ghost = NewMesh("modal_ghost", nil, nil, nil)
	m.ghost.Visible = false

	m.shell = NewContainer("modal_shell")
	// Clicks inside the shell must not reach the backdrop.
	m.shell.OnClick = func(ClickContext) {}
	m.fill = NewMesh("modal_fill", nil, nil, nil)
	m.content = NewContainer("modal_content")
	m.shell.AddChild(m.fill)
	m.shell.AddChild(m.content)

	m.node.AddChild(m.backdrop)
	m.node.AddChild(m.ghost)
	m.node.AddChild(m.shell)
	m.node.OnUpdate = m.update
	scene.UI().AddChild(m.node)

	selector.OnSelect = m.open
	selector.OnClose = m.requestClose
	return m
}

// State returns the current state.
func (m *Modal) State() ModalState { return m.state }

// Content returns the node detail views should be added to. It is laid out
// in the shell's local space, with the origin at the shell's top-left.
func (m *Modal) Content() *Node { return m.content }

// Shell returns the modal's shell node.
func (m *Modal) Shell() *Node { return m.shell }

// Ghost returns the ghost node that stands in for the card at the end of a
// close.
func (m *Modal) Ghost() *Node { return m.ghost }

// Opening returns the running opening animator, or nil.
func (m *Modal) Opening() *OpeningAnimator { return m.opening }

// Closing returns the running closing animator, or nil.
func (m *Modal) Closing() *ClosingAnimator { return m.closing }

// Box returns the screen box the shell covers this frame.
func (m *Modal) Box() Rect {
	if m.closing != nil {
		return m.closing.ShellRect()
	}
	return m.box
}

func (m *Modal) setState(s ModalState) {
	if m.state == s {
		return
	}
	debugf("modal %v -> %v", m.state, s)
	m.state = s
	if m.OnStateChange != nil {
		m.OnStateChange(s)
	}
}

func (m *Modal) open(sel Selection) {
	if m.disposed || m.state != ModalClosed {
		return
	}
	m.sel = sel
	m.vw, m.vh = m.scene.Viewport()
	m.opening = NewOpeningAnimator(sel.OriginRect, m.vw, m.vh, m.cfg)

	m.node.Visible = true
	m.ghost.Visible = false
	m.shell.SetAlpha(1)
	m.content.SetAlpha(0)
	m.backdrop.SetScale(m.vw, m.vh)
	m.backdrop.SetAlpha(0)
	m.layoutShell(m.opening.Box(), m.opening.Radius())
	m.setState(ModalOpening)
}

func (m *Modal) requestClose(Selection) {
	if m.disposed || (m.state != ModalOpening && m.state != ModalOpen) {
		return
	}
	// An early close keeps the content's partial fade-in.
	contentAlpha := 1.0
	if m.opening != nil {
		contentAlpha = m.opening.Opacity()
	}
	m.opening = nil

	base, ok := MeasureStable(NewNodeElement(m.scene, m.shell, m.box.Width, m.box.Height))
	if !ok {
		base = m.box
	}
	m.closing = NewClosingAnimator(base, m.sel.Origin, m.cfg)
	m.content.SetAlpha(contentAlpha)
	m.setState(ModalClosingTrack)
}

func (m *Modal) update(ft FrameTime) {
	if m.disposed {
		return
	}
	vw, vh := m.scene.Viewport()
	resized := vw != m.vw || vh != m.vh
	m.vw, m.vh = vw, vh
	if resized {
		m.backdrop.SetScale(vw, vh)
	}

	switch m.state {
	case ModalOpening:
		if resized {
			m.opening.Retarget(vw, vh)
		}
		done := m.opening.Update(ft.Delta)
		m.layoutShell(m.opening.Box(), m.opening.Radius())
		m.content.SetAlpha(m.opening.Opacity())
		m.backdrop.SetAlpha(m.opening.Progress())
		if done {
			m.opening = nil
			m.setState(ModalOpen)
		}
	case ModalOpen:
		if resized {
			m.layoutShell(ExpandedBounds(vw, vh, m.cfg), m.cfg.ExpandedRadius)
		}
	case ModalClosingTrack, ModalClosingHandoff:
		done := m.closing.Update(ft.Delta)
		m.poseClosing()
		if m.closing.Phase() == CloseHandoff {
			m.setState(ModalClosingHandoff)
		}
		if done {
			m.finish()
		}
	}
}

// layoutShell places the untransformed shell on box.
func (m *Modal) layoutShell(box Rect, radius float64) {
	m.box = box
	m.shell.SetPosition(box.X, box.Y)
	m.shell.SetScale(1, 1)
	m.shell.HitShape = HitRect{Width: box.Width, Height: box.Height}
	size := [3]float64{box.Width, box.Height, radius}
	if size != m.fillSize {
		m.fillSize = size
		setRoundedRect(m.fill, &m.fillMesh, box.Width, box.Height, radius, m.cfg.ShellColor)
	}
}

func (m *Modal) poseClosing() {
	c := m.closing
	tr, sx, sy := c.Transform()
	base := c.Base()
	m.shell.SetPosition(base.X+tr.X, base.Y+tr.Y)
	m.shell.SetScale(sx, sy)

	shellOp, ghostOp := c.Opacities()
	m.shell.SetAlpha(shellOp)
	m.backdrop.SetAlpha(1 - c.Progress())

	if !c.Tracking() {
		m.ghost.Visible = false
		return
	}
	live := c.Live()
	m.ghost.Visible = true
	m.ghost.SetPosition(live.X, live.Y)
	m.ghost.SetAlpha(ghostOp)
	if size := [2]float64{live.Width, live.Height}; size != m.ghostSize {
		m.ghostSize = size
		setRoundedRect(m.ghost, &m.ghostMesh, live.Width, live.Height, m.cfg.OriginRadius, m.cfg.GhostColor)
	}
}

// finish ends a close: the overlay hides and the selection is cleared so the
// origin card shows again.
func (m *Modal) finish() {
	m.closing = nil
	m.node.Visible = false
	m.ghost.Visible = false
	m.setState(ModalClosed)
	m.selector.MarkOriginRevealed()
}

// Dispose cancels any running animation, reveals the origin and removes the
// modal from the scene. The update callback is dropped synchronously.
func (m *Modal) Dispose() {
	if m.disposed {
		return
	}
	m.disposed = true
	m.opening = nil
	m.closing = nil
	m.node.OnUpdate = nil
	m.selector.OnSelect = nil
	m.selector.OnClose = nil
	if _, ok := m.selector.Current(); ok {
		m.selector.MarkOriginRevealed()
	}
	m.node.Dispose()
	m.state = ModalClosed
}

// IsDisposed reports whether Dispose has been called.
func (m *Modal) IsDisposed() bool { return m.disposed }

func setRoundedRect(n *Node, b *meshBuilder, w, h, radius float64, c Color) {
	b.reset()
	if w > 0 && h > 0 {
		b.roundedRect(w, h, radius, c)
	}
	n.Vertices = b.verts
	n.Indices = b.inds
	n.InvalidateMeshAABB()
}

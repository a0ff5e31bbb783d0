package hexfolio

import "github.com/hajimehoshi/ebiten/v2"

// injectedEvent is one synthetic pointer sample in screen coordinates.
type injectedEvent struct {
	x, y    float64
	pressed bool
	key     ebiten.Key
	isKey   bool
}

// InjectPress queues a pointer press at screen (x, y).
func (s *Scene) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, injectedEvent{x: x, y: y, pressed: true})
}

// InjectMove queues a pointer move at screen (x, y) with the pointer up.
func (s *Scene) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, injectedEvent{x: x, y: y})
}

// InjectRelease queues a pointer release at screen (x, y).
func (s *Scene) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, injectedEvent{x: x, y: y})
}

// InjectClick queues a press and a release at (x, y), consumed on two
// consecutive frames.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectKey queues a key press delivered to the OnKeyPress handler.
func (s *Scene) InjectKey(k ebiten.Key) {
	s.injectQueue = append(s.injectQueue, injectedEvent{key: k, isKey: true})
}

// processInjectedInput pops one queued event and dispatches it. It reports
// whether an event was consumed, in which case real input is skipped.
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	if evt.isKey {
		if s.keyHandler != nil {
			s.keyHandler(evt.key)
		}
		return true
	}
	s.processPointer(evt.x, evt.y, evt.pressed)
	return true
}

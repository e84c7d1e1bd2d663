package viewer

import "math"

// EventKind identifies an input event
type EventKind int

const (
	PointerDown EventKind = iota
	PointerMove
	PointerUp
	Wheel
	TouchStart
	TouchMove
	TouchEnd
	Key
	Resize
	HostClosed
)

// Event is one input delivered by a host. Positions are canvas coordinates.
// For touch events Touches holds the touches still on the surface.
type Event struct {
	Kind    EventKind
	X, Y    float64
	DeltaY  float64
	Touches []Point
	Key     string
	Width   float64
	Height  float64
}

// Action is what the viewer must do after an event
type Action int

const (
	ActionNone Action = iota
	ActionRedraw
	ActionClose
)

// Apply updates the state for one event
func (s *State) Apply(ev Event) Action {
	switch ev.Kind {
	case PointerDown:
		s.Dragging = true
		s.last = Point{ev.X, ev.Y}
		return ActionNone

	case PointerMove:
		if !s.Dragging {
			return ActionNone
		}
		s.Pan(ev.X-s.last.X, ev.Y-s.last.Y)
		s.last = Point{ev.X, ev.Y}
		return ActionRedraw

	case PointerUp:
		s.Dragging = false
		return ActionNone

	case Wheel:
		switch {
		case ev.DeltaY < 0:
			s.ZoomBy(Point{ev.X, ev.Y}, WheelInFactor)
		case ev.DeltaY > 0:
			s.ZoomBy(Point{ev.X, ev.Y}, WheelOutFactor)
		default:
			return ActionNone
		}
		return ActionRedraw

	case TouchStart:
		return s.touchStart(ev.Touches)

	case TouchMove:
		return s.touchMove(ev.Touches)

	case TouchEnd:
		s.Pinch = nil
		s.Dragging = false
		if len(ev.Touches) == 1 {
			s.Dragging = true
			s.last = ev.Touches[0]
		}
		return ActionNone

	case Key:
		return s.key(ev.Key)

	case Resize:
		s.Resize(ev.Width, ev.Height)
		return ActionRedraw

	case HostClosed:
		return ActionClose
	}
	return ActionNone
}

func (s *State) touchStart(touches []Point) Action {
	switch len(touches) {
	case 0:
		return ActionNone
	case 1:
		s.Pinch = nil
		s.Dragging = true
		s.last = touches[0]
	default:
		s.Dragging = false
		s.Pinch = &Pinch{
			Distance:  distance(touches[0], touches[1]),
			Center:    midpoint(touches[0], touches[1]),
			BaseScale: s.Scale,
		}
	}
	return ActionNone
}

func (s *State) touchMove(touches []Point) Action {
	switch {
	case len(touches) >= 2 && s.Pinch != nil:
		if s.Pinch.Distance == 0 {
			return ActionNone
		}
		ratio := distance(touches[0], touches[1]) / s.Pinch.Distance
		s.ZoomAt(s.Pinch.Center, s.Pinch.BaseScale*ratio)
		return ActionRedraw
	case len(touches) == 1 && s.Dragging:
		s.Pan(touches[0].X-s.last.X, touches[0].Y-s.last.Y)
		s.last = touches[0]
		return ActionRedraw
	}
	return ActionNone
}

func (s *State) key(key string) Action {
	switch key {
	case "+", "=":
		s.ZoomBy(s.Center(), KeyZoomFactor)
	case "-", "_":
		s.ZoomBy(s.Center(), 1/KeyZoomFactor)
	case "0":
		s.Reset()
	case "Escape":
		return ActionClose
	default:
		return ActionNone
	}
	return ActionRedraw
}

func distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

func midpoint(a, b Point) Point {
	return Point{(a.X + b.X) / 2, (a.Y + b.Y) / 2}
}

package viewer

import "errors"

// Mode is how the viewer is presented
type Mode int

const (
	ModeOverlay Mode = iota
	ModePopup
)

func (m Mode) String() string {
	if m == ModePopup {
		return "popup"
	}
	return "overlay"
}

// ErrPopupBlocked is returned by popup factories when no window could be created
var ErrPopupBlocked = errors.New("popup window blocked")

// ChooseMode picks the overlay below threshold and the popup at or above it
func ChooseMode(viewportWidth, threshold float64) Mode {
	if viewportWidth < threshold {
		return ModeOverlay
	}
	return ModePopup
}

// Launcher creates the host for a viewer session
type Launcher struct {
	Threshold float64
	Popup     func() (Host, error)
	Overlay   func() Host
}

// Host returns the host for the given viewport width. A popup that cannot be
// created falls back to the overlay without reporting an error.
func (l Launcher) Host(viewportWidth float64) (Host, Mode) {
	if ChooseMode(viewportWidth, l.Threshold) == ModePopup && l.Popup != nil {
		if host, err := l.Popup(); err == nil && host != nil {
			return host, ModePopup
		}
	}
	return l.Overlay(), ModeOverlay
}

// Sessions keeps at most one viewer open over a Launcher
type Sessions struct {
	Launcher Launcher
	Loader   Loader
	// Dispose tears down a host once its session has closed
	Dispose func(Host)

	active *Viewer
}

// Start closes the running session and disposes its host before asking the
// launcher for the next one. A popup factory that hands back an already open
// window therefore never gets a window that is about to be torn down.
func (s *Sessions) Start(viewportWidth float64) (*Viewer, Mode) {
	if s.active != nil {
		s.active.Close()
		s.active = nil
	}

	host, mode := s.Launcher.Host(viewportWidth)
	var v *Viewer
	v = New(host, s.Loader, Options{OnClose: func() {
		if s.Dispose != nil {
			s.Dispose(host)
		}
		if s.active == v {
			s.active = nil
		}
	}})
	s.active = v
	return v, mode
}

// Active returns the open session, nil when none
func (s *Sessions) Active() *Viewer {
	return s.active
}

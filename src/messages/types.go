package messages

// Message is the base interface for all input events delivered to the event loop
type Message interface {
	Type() string
}

// MessageType constants for type identification
const (
	TypePointerEnter   = "PointerEnter"
	TypePointerLeave   = "PointerLeave"
	TypePointerMotion  = "PointerMotion"
	TypePointerPress   = "PointerPress"
	TypePointerRelease = "PointerRelease"
	TypeKeyPressed     = "KeyPressed"
	TypeSurfaceScale   = "SurfaceScale"
	TypeClose          = "Close"
)

// Key names the keys the selector reacts to. Everything else is dropped by
// the frontend before it reaches the loop.
type Key string

const (
	KeyEscape Key = "Escape"
	KeyTab    Key = "Tab"
	KeyReturn Key = "Return"
)

// PointerEnter - the pointer entered a surface; X/Y are surface-local
type PointerEnter struct {
	Surface string
	X, Y    float64
}

func (m PointerEnter) Type() string { return TypePointerEnter }

// PointerLeave - the pointer left a surface
type PointerLeave struct {
	Surface string
}

func (m PointerLeave) Type() string { return TypePointerLeave }

// PointerMotion - pointer moved; X/Y are surface-local
type PointerMotion struct {
	Surface string
	X, Y    float64
}

func (m PointerMotion) Type() string { return TypePointerMotion }

// PointerPress - primary button pressed; X/Y are surface-local
type PointerPress struct {
	Surface string
	X, Y    float64
}

func (m PointerPress) Type() string { return TypePointerPress }

// PointerRelease - primary button released
type PointerRelease struct {
	Surface string
	X, Y    float64
}

func (m PointerRelease) Type() string { return TypePointerRelease }

// KeyPressed - a key went down on any surface
type KeyPressed struct {
	Key Key
}

func (m KeyPressed) Type() string { return TypeKeyPressed }

// SurfaceScale - the frontend learned how many pixels one surface unit covers
type SurfaceScale struct {
	Surface string
	Scale   float64
}

func (m SurfaceScale) Type() string { return TypeSurfaceScale }

// Close - the frontend window was closed by the compositor or the user
type Close struct{}

func (m Close) Type() string { return TypeClose }

package plot

import "math"

const (
	ZoomOutFactor = 1.15
	ZoomInFactor  = 0.85
)

// InputKind identifies a pointer, touch or wheel event.
type InputKind uint8

const (
	PointerDown InputKind = iota
	PointerMove
	PointerUp
	TouchStart
	TouchMove
	TouchEnd
	Wheel
	numInputKinds
)

func (k InputKind) String() string {
	switch k {
	case PointerDown:
		return "pointer down"
	case PointerMove:
		return "pointer move"
	case PointerUp:
		return "pointer up"
	case TouchStart:
		return "touch start"
	case TouchMove:
		return "touch move"
	case TouchEnd:
		return "touch end"
	case Wheel:
		return "wheel"
	default:
		return "unknown"
	}
}

// InputEvent is a host-independent input event. X is only meaningful when
// HasX is set; hosts clear HasX for events that carry no coordinate.
type InputEvent struct {
	Kind InputKind
	X    float64
	HasX bool
	// ContainerWidth is the width of the chart container in the same unit
	// as X.
	ContainerWidth float64
	// WheelDelta is the vertical scroll amount. Positive values scroll
	// down.
	WheelDelta float64
}

// GestureState is the state of the drag state machine.
type GestureState uint8

const (
	Idle GestureState = iota
	Dragging
)

func (s GestureState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Gesture is the drag state of one container.
type Gesture struct {
	State GestureState
	// LastX is the reference coordinate of the drag. It is unset until
	// the drag has seen an event with a coordinate.
	LastX    float64
	anchored bool
}

// CommandKind identifies a viewport mutation requested by a gesture.
type CommandKind uint8

const (
	CommandNone CommandKind = iota
	CommandPan
	CommandZoom
	CommandReset
)

// Command is a viewport mutation.
type Command struct {
	Kind   CommandKind
	Delta  int
	Focal  int
	Factor float64
	// PreventDefault asks the host to swallow the event that produced
	// the command.
	PreventDefault bool
}

// Transition advances the gesture g by ev against the current viewport v.
// It is pure: the returned command must be applied by the caller.
func Transition(g Gesture, ev InputEvent, v Viewport) (Gesture, Command) {
	switch ev.Kind {
	case PointerDown, TouchStart:
		return Gesture{State: Dragging, LastX: ev.X, anchored: ev.HasX}, Command{}
	case PointerUp, TouchEnd:
		return Gesture{State: Idle}, Command{}
	case PointerMove, TouchMove:
		if g.State != Dragging || !ev.HasX {
			return g, Command{}
		}
		if !g.anchored {
			g.LastX, g.anchored = ev.X, true
			return g, Command{}
		}
		delta := panDelta(ev.X-g.LastX, ev.ContainerWidth, v.Width())
		if delta == 0 {
			return g, Command{}
		}
		g.LastX = ev.X
		return g, Command{Kind: CommandPan, Delta: delta}
	case Wheel:
		cmd := Command{PreventDefault: true}
		// A zero delta carries no direction, so it does not zoom in.
		if ev.WheelDelta == 0 || math.IsNaN(ev.WheelDelta) || v.Empty() {
			return g, cmd
		}
		cmd.Kind = CommandZoom
		cmd.Focal = v.Mid()
		cmd.Factor = ZoomInFactor
		if ev.WheelDelta > 0 {
			cmd.Factor = ZoomOutFactor
		}
		return g, cmd
	}
	return g, Command{}
}

// panDelta converts a horizontal pointer movement into a shift in samples.
// Dragging right reveals older samples.
func panDelta(dx, containerWidth float64, visible int) int {
	if containerWidth <= 0 || math.IsNaN(dx) || math.IsInf(dx, 0) {
		return 0
	}
	return round(-dx / containerWidth * float64(visible))
}

// Controller feeds input events through the gesture state machine and
// applies the resulting commands to a chart.
type Controller struct {
	Chart   *Chart
	gesture Gesture
	// OnChange is invoked after a command changed the viewport.
	OnChange func(Viewport)
}

// State returns the current gesture state.
func (c *Controller) State() GestureState { return c.gesture.State }

// Handle processes ev and returns the command it produced.
func (c *Controller) Handle(ev InputEvent) Command {
	if c.Chart == nil {
		return Command{}
	}
	var cmd Command
	c.gesture, cmd = Transition(c.gesture, ev, c.Chart.Viewport())
	if c.Chart.Apply(cmd) && c.OnChange != nil {
		c.OnChange(c.Chart.Viewport())
	}
	return cmd
}

// Reset returns the controller to Idle without touching the viewport.
func (c *Controller) Reset() {
	c.gesture = Gesture{}
}

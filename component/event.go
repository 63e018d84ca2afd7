package component

// Event is any input delivered to a component tree.
type Event interface {
	isEvent()
}

// SwipeDirection is the direction the finger moved.
type SwipeDirection int

const (
	SwipeUp SwipeDirection = iota
	SwipeDown
	SwipeLeft
	SwipeRight
)

func (d SwipeDirection) String() string {
	switch d {
	case SwipeUp:
		return "up"
	case SwipeDown:
		return "down"
	case SwipeLeft:
		return "left"
	default:
		return "right"
	}
}

// Swipe is a completed swipe gesture.
type Swipe struct {
	Direction SwipeDirection
}

// Button is a press of a physical or on-screen button.
type Button struct {
	Name string
}

// Timer fires after a component requested it.
type Timer struct {
	Token int
}

func (Swipe) isEvent()  {}
func (Button) isEvent() {}
func (Timer) isEvent()  {}

package engine

import "github.com/samuraislice/slicer/internal/geom"

// SplitEvent is published once when a shape is cut in two.
type SplitEvent struct {
	ID string
	// Shape is the original, now cut, shape. Its two pieces are
	// Shape.Children().
	Shape *Shape
	// Point is where the second cut landed.
	Point    geom.Point
	PlayerID string
}

type SplitHandler func(SplitEvent)

// Bus delivers split events to subscribers in subscription order. It is
// owned by the game loop and injected into shapes; like the rest of the
// engine it is not safe for concurrent use.
type Bus struct {
	nextID   int
	handlers []subscription
}

type subscription struct {
	id int
	fn SplitHandler
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn and returns a function that removes it.
func (b *Bus) Subscribe(fn SplitHandler) (unsubscribe func()) {
	b.nextID++
	id := b.nextID
	b.handlers = append(b.handlers, subscription{id: id, fn: fn})
	return func() {
		for i, s := range b.handlers {
			if s.id == id {
				b.handlers = append(b.handlers[:i:i], b.handlers[i+1:]...)
				return
			}
		}
	}
}

// Publish calls every current subscriber with ev. A nil bus drops the
// event.
func (b *Bus) Publish(ev SplitEvent) {
	if b == nil {
		return
	}
	handlers := append([]subscription(nil), b.handlers...)
	for _, s := range handlers {
		s.fn(ev)
	}
}

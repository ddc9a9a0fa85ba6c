package engine

const eventBufferSize = 64

// Subscription delivers engine events to one subscriber.
//
// Unlike a per-type channel fan-out, a single channel keeps events in strict
// arrival order: a stale TimeUpdate can never be observed after the seek
// confirmation that superseded it.
type Subscription struct {
	Events <-chan Event
	Done   <-chan struct{}

	events chan Event
	done   chan struct{}
}

// newSubscription creates a subscription with a buffered event channel.
func newSubscription() *Subscription {
	s := &Subscription{
		events: make(chan Event, eventBufferSize),
		done:   make(chan struct{}),
	}
	s.Events = s.events
	s.Done = s.done
	return s
}

// close signals the subscriber to stop.
func (s *Subscription) close() {
	close(s.done)
}

// send delivers e in arrival order. TimeUpdates are shed when the buffer is
// full since the next one supersedes them; all other events block until
// there is room or the subscription is closed.
func (s *Subscription) send(e Event) {
	if _, droppable := e.(TimeUpdate); droppable {
		select {
		case s.events <- e:
		default:
		}
		return
	}
	select {
	case s.events <- e:
	case <-s.done:
	}
}

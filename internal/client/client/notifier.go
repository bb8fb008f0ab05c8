package client

import "sync"

// notifier fans auth events out to subscribers. Every subscription owns a
// goroutine and an unbounded queue, so publish never blocks on a handler and a
// handler may call back into the client.
type notifier struct {
	mu     sync.Mutex
	subs   map[uint64]*subscription
	nextID uint64
	closed bool
}

type subscription struct {
	handler func(AuthEvent)

	mu    sync.Mutex
	queue []AuthEvent

	wake    chan struct{}
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

func newNotifier() *notifier {
	return &notifier{subs: make(map[uint64]*subscription)}
}

// subscribe starts a dispatcher for handler. The returned function stops it
// and waits for an in-flight handler call to return; it must not be called
// from inside the handler itself.
func (n *notifier) subscribe(handler func(AuthEvent)) func() {
	s := &subscription{
		handler: handler,
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}

	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return func() {}
	}
	id := n.nextID
	n.nextID++
	n.subs[id] = s
	n.mu.Unlock()

	go s.run()

	return func() {
		n.mu.Lock()
		delete(n.subs, id)
		n.mu.Unlock()
		s.stop()
	}
}

func (n *notifier) publish(ev AuthEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, s := range n.subs {
		s.enqueue(ev)
	}
}

// close stops every subscription. Later subscribe calls are no-ops.
func (n *notifier) close() {
	n.mu.Lock()
	subs := n.subs
	n.subs = make(map[uint64]*subscription)
	n.closed = true
	n.mu.Unlock()

	for _, s := range subs {
		s.stop()
	}
}

func (s *subscription) enqueue(ev AuthEvent) {
	s.mu.Lock()
	s.queue = append(s.queue, ev)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *subscription) pop() (AuthEvent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		return AuthEvent{}, false
	}
	ev := s.queue[0]
	s.queue[0] = AuthEvent{}
	s.queue = s.queue[1:]
	return ev, true
}

func (s *subscription) run() {
	defer close(s.stopped)
	for {
		select {
		case <-s.done:
			return
		case <-s.wake:
		}
		for {
			select {
			case <-s.done:
				return
			default:
			}
			ev, ok := s.pop()
			if !ok {
				break
			}
			s.handler(ev)
		}
	}
}

func (s *subscription) stop() {
	s.once.Do(func() { close(s.done) })
	<-s.stopped
}

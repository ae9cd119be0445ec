package geo

import "sync"

// Readiness is the memoized "is the mapping provider reachable" signal
// with subscribe/notify semantics. It is owned by the composition root
// and handed to whoever needs the flag; there is no package-level
// singleton.
type Readiness struct {
	mu      sync.Mutex
	settled bool
	ready   bool
	subs    map[chan bool]struct{}
}

func NewReadiness() *Readiness {
	return &Readiness{subs: map[chan bool]struct{}{}}
}

// Subscribe returns a channel that receives the readiness flag. If the
// probe already settled, the current value is delivered immediately.
func (r *Readiness) Subscribe() chan bool {
	ch := make(chan bool, 1)
	r.mu.Lock()
	if r.settled {
		ch <- r.ready
	} else {
		r.subs[ch] = struct{}{}
	}
	r.mu.Unlock()
	return ch
}

// Unsubscribe removes a pending subscriber.
func (r *Readiness) Unsubscribe(ch chan bool) {
	r.mu.Lock()
	delete(r.subs, ch)
	r.mu.Unlock()
}

// Settled reports the memoized value; ok is false until the first
// probe completes.
func (r *Readiness) Settled() (ready, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ready, r.settled
}

// settle records the probe outcome once and notifies all subscribers.
func (r *Readiness) settle(ready bool) {
	r.mu.Lock()
	if r.settled {
		r.mu.Unlock()
		return
	}
	r.settled = true
	r.ready = ready
	for ch := range r.subs {
		select {
		case ch <- ready:
		default:
			// drop if subscriber is slow
		}
		delete(r.subs, ch)
	}
	r.mu.Unlock()
}

// Package wrap instruments channel and stream endpoints transparently:
// every wrap.* call returns a value of the same shape it was given,
// recording sends, receives, yields and lifecycle transitions into the
// process-wide collector as a side effect.
package wrap

import "errors"

// ErrClosed is returned by Sender.Send once the receive side of a pair is
// gone.
var ErrClosed = errors.New("wrap: channel closed")

// Sender is the write half of a channel pair. It wraps a native Go channel
// rather than exposing it directly so that send failures (a closed
// underlying channel) surface as an error instead of a panic.
//
// closed is the close-signal counterpart of the ingress Sender an
// instrumented Tx hands to the caller: once the caller-facing Receiver is
// dropped (Receiver.Close), the send forwarder goroutine that used to drain
// this channel exits, so a plain ch<-v would block forever instead of
// failing. Selecting on closed alongside the send gives the "subsequent
// sends fail" half of the close-signal protocol without needing the
// receive-side drain/timeout plumbing a blocking-thread implementation
// would use. closed is nil on a real, unwrapped Sender (NewPair,
// NewUnboundedPair), where a nil channel in a select simply never fires.
type Sender[T any] struct {
	ch     chan<- T
	closed <-chan struct{}
}

// Send delivers v, translating a send-on-closed-channel panic or a fired
// close signal into ErrClosed.
func (s Sender[T]) Send(v T) (err error) {
	select {
	case <-s.closed:
		return ErrClosed
	default:
	}
	defer func() {
		if recover() != nil {
			err = ErrClosed
		}
	}()
	select {
	case s.ch <- v:
		return nil
	case <-s.closed:
		return ErrClosed
	}
}

// Close closes the underlying channel. Safe to call at most once per
// Sender, same as a native close(ch).
func (s Sender[T]) Close() {
	close(s.ch)
}

// Cap reports the underlying channel's buffer capacity.
func (s Sender[T]) Cap() int {
	return cap(s.ch)
}

// Receiver is the read half of a channel pair.
type Receiver[T any] struct {
	ch          <-chan T
	closeSignal func()
}

// Recv returns the next value, ok=false once the channel is closed and
// drained.
func (r Receiver[T]) Recv() (T, bool) {
	v, ok := <-r.ch
	return v, ok
}

// Close signals that the caller is done receiving. On a wrapped egress
// Receiver this stops the recv forwarder from attempting further
// deliveries; on a plain, unwrapped Receiver it is a no-op, since a raw Go
// channel pair has no abandonment signal to give.
func (r Receiver[T]) Close() {
	if r.closeSignal != nil {
		r.closeSignal()
	}
}

// Pair bundles a channel's two halves, the shape every wrap.* function
// both accepts and returns.
type Pair[T any] struct {
	Tx Sender[T]
	Rx Receiver[T]
}

// NewPair constructs a real, unwrapped bounded pair backed by a native Go
// channel of the given capacity. Pass capacity 0 for an unbuffered
// (oneshot-style) pair.
func NewPair[T any](capacity int) Pair[T] {
	ch := make(chan T, capacity)
	return Pair[T]{Tx: Sender[T]{ch: ch}, Rx: Receiver[T]{ch: ch}}
}

// NewUnboundedPair constructs a real pair with no fixed capacity, backed by
// a growable internal queue goroutine: the idiomatic Go substitute for a
// crossbeam-style unbounded channel, since no native Go channel can hold an
// unbounded number of buffered items.
func NewUnboundedPair[T any]() Pair[T] {
	in := make(chan T)
	out := make(chan T)
	go func() {
		var queue []T
		for {
			if len(queue) == 0 {
				v, ok := <-in
				if !ok {
					close(out)
					return
				}
				queue = append(queue, v)
				continue
			}
			select {
			case v, ok := <-in:
				if !ok {
					for _, item := range queue {
						out <- item
					}
					close(out)
					return
				}
				queue = append(queue, v)
			case out <- queue[0]:
				queue = queue[1:]
			}
		}
	}()
	return Pair[T]{Tx: Sender[T]{ch: in}, Rx: Receiver[T]{ch: out}}
}

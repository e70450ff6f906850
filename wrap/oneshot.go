package wrap

import (
	"github.com/pawurb/channels-console-go/collector"
	"github.com/pawurb/channels-console-go/stats"
)

// Oneshot wraps a single-value channel pair: at most one value ever flows
// through it. Notified is emitted after a successful forward; Closed only
// if no value was ever transported.
func Oneshot[T any](real Pair[T], source string, opts ...Option) Pair[T] {
	return wrapOneshot[T](real, source, false, opts...)
}

// OneshotLog is Oneshot with debug rendering of the transported value.
func OneshotLog[T any](real Pair[T], source string, opts ...Option) Pair[T] {
	return wrapOneshot[T](real, source, true, opts...)
}

func wrapOneshot[T any](real Pair[T], source string, logging bool, opts ...Option) Pair[T] {
	cfg := applyOptions(opts)

	ingress := make(chan T)
	egress := make(chan T)
	sig := newCloseSignal()

	id := collector.Global().NextID()
	collector.Global().Emit(collector.Created{
		ID:       id,
		Source:   source,
		Label:    cfg.label,
		Kind:     stats.KindChannel,
		Channel:  stats.Oneshot,
		TypeName: typeName[T](),
		TypeSize: typeSize[T](),
	})

	emitClosed := onceEmitter(func() { collector.Global().Emit(collector.Closed{ID: id}) })
	emitNotified := onceEmitter(func() { collector.Global().Emit(collector.Notified{ID: id}) })

	// The send side forwards at most one value. Notified fires here, right
	// after the real send succeeds: the value has been handed off whether or
	// not the receiver ever consumes it. Exits that will never deliver a
	// value close the real sender so the recv goroutine's blocked Recv wakes
	// up instead of leaking.
	go func() {
		select {
		case msg, ok := <-ingress:
			if !ok {
				real.Tx.Close()
				emitClosed()
				return
			}
			if err := real.Tx.Send(msg); err != nil {
				emitClosed()
				return
			}
			collector.Global().Emit(collector.MessageSent{ID: id, Timestamp: elapsed(), Log: debugLog(msg, logging)})
			emitNotified()
		case <-sig.done():
			real.Tx.Close()
			emitClosed()
		}
	}()

	go func() {
		msg, ok := real.Rx.Recv()
		if !ok {
			close(egress)
			emitClosed()
			return
		}
		select {
		case egress <- msg:
			collector.Global().Emit(collector.MessageReceived{ID: id, Timestamp: elapsed()})
		case <-sig.done():
		}
	}()

	return Pair[T]{
		Tx: Sender[T]{ch: ingress, closed: sig.done()},
		Rx: Receiver[T]{ch: egress, closeSignal: sig.trigger},
	}
}

package wrap

import (
	"fmt"

	"github.com/pawurb/channels-console-go/collector"
	"github.com/pawurb/channels-console-go/stats"
)

// Channel wraps a bounded channel pair transparently.
func Channel[T any](real Pair[T], source string, opts ...Option) Pair[T] {
	return wrapBounded[T](real, source, false, opts...)
}

// ChannelLog is Channel with per-message debug rendering (%+v) attached to
// every logged send; received log entries carry no message.
func ChannelLog[T any](real Pair[T], source string, opts ...Option) Pair[T] {
	return wrapBounded[T](real, source, true, opts...)
}

// Unbounded wraps an unbounded channel pair (see NewUnboundedPair)
// transparently. Unbounded endpoints never transition to State Full.
func Unbounded[T any](real Pair[T], source string, opts ...Option) Pair[T] {
	return wrapUnbounded[T](real, source, false, opts...)
}

// UnboundedLog is Unbounded with per-message debug rendering.
func UnboundedLog[T any](real Pair[T], source string, opts ...Option) Pair[T] {
	return wrapUnbounded[T](real, source, true, opts...)
}

func wrapBounded[T any](real Pair[T], source string, logging bool, opts ...Option) Pair[T] {
	cfg := applyOptions(opts)
	capacity := real.Tx.Cap()
	if cfg.hasCapOpt && cfg.capacity != capacity {
		panic(fmt.Sprintf("wrap: declared capacity %d does not match real channel capacity %d at %s", cfg.capacity, capacity, source))
	}
	return wrapPair[T](real, source, cfg.label, stats.Bounded(capacity), logging)
}

func wrapUnbounded[T any](real Pair[T], source string, logging bool, opts ...Option) Pair[T] {
	cfg := applyOptions(opts)
	return wrapPair[T](real, source, cfg.label, stats.Unbounded, logging)
}

func wrapPair[T any](real Pair[T], source, label string, channelType stats.ChannelType, logging bool) Pair[T] {
	capacity := 0
	if channelType.Variant == stats.VariantBounded {
		capacity = channelType.Capacity
	}
	ingress := make(chan T, capacity)
	egress := make(chan T, capacity)
	sig := newCloseSignal()

	id := collector.Global().NextID()
	collector.Global().Emit(collector.Created{
		ID:       id,
		Source:   source,
		Label:    label,
		Kind:     stats.KindChannel,
		Channel:  channelType,
		TypeName: typeName[T](),
		TypeSize: typeSize[T](),
	})

	emitClosed := onceEmitter(func() { collector.Global().Emit(collector.Closed{ID: id}) })

	// The forwarder's copy of the real sender carries the close signal so a
	// send blocked on a full real channel aborts once the recv forwarder is
	// gone, instead of waiting on a drain that will never come.
	realTx := real.Tx
	realTx.closed = sig.done()

	go sendForwarder[T](id, ingress, realTx, sig, logging, emitClosed)
	go recvForwarder[T](id, real.Rx, egress, sig, logging, emitClosed)

	return Pair[T]{
		Tx: Sender[T]{ch: ingress, closed: sig.done()},
		Rx: Receiver[T]{ch: egress, closeSignal: sig.trigger},
	}
}

// sendForwarder drains ingress into the real sender. Every exit path
// closes the real sender: that is what wakes the recv forwarder out of a
// blocked real.Recv when the user closes the wrapped Receiver with nothing
// in flight. The only send failure possible here is the close signal
// firing mid-send (nothing else ever closes the real channel), so closing
// after an error is safe.
func sendForwarder[T any](id uint64, ingress <-chan T, real Sender[T], sig *closeSignal, logging bool, emitClosed func()) {
	defer emitClosed()
	for {
		select {
		case msg, ok := <-ingress:
			if !ok {
				real.Close()
				return
			}
			if err := real.Send(msg); err != nil {
				real.Close()
				return
			}
			collector.Global().Emit(collector.MessageSent{ID: id, Timestamp: elapsed(), Log: debugLog(msg, logging)})
		case <-sig.done():
			real.Close()
			return
		}
	}
}

func recvForwarder[T any](id uint64, real Receiver[T], egress chan<- T, sig *closeSignal, logging bool, emitClosed func()) {
	defer emitClosed()
	for {
		msg, ok := real.Recv()
		if !ok {
			close(egress)
			return
		}
		select {
		case egress <- msg:
			collector.Global().Emit(collector.MessageReceived{ID: id, Timestamp: elapsed()})
		case <-sig.done():
			return
		}
	}
}

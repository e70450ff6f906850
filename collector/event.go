package collector

import "github.com/pawurb/channels-console-go/stats"

// Event is the ordered stream of lifecycle and data events the collector
// applies to its endpoint table.
type Event interface {
	isEvent()
}

type Created struct {
	ID       uint64
	Source   string
	Label    string // "" if not user-supplied
	Kind     stats.Kind
	Channel  stats.ChannelType // meaningful when Kind == KindChannel
	TypeName string
	TypeSize uint64
}

type MessageSent struct {
	ID        uint64
	Log       *string
	Timestamp uint64
}

type MessageReceived struct {
	ID        uint64
	Timestamp uint64
}

type Closed struct{ ID uint64 }

type Notified struct{ ID uint64 }

type Yielded struct {
	ID        uint64
	Log       *string
	Timestamp uint64
}

type Completed struct{ ID uint64 }

func (Created) isEvent()         {}
func (MessageSent) isEvent()     {}
func (MessageReceived) isEvent() {}
func (Closed) isEvent()          {}
func (Notified) isEvent()        {}
func (Yielded) isEvent()         {}
func (Completed) isEvent()       {}

package conversation

// Snapshot is a read-only view of the session. Entries is a private copy.
type Snapshot struct {
	Entries       []Entry
	AwaitingReply bool
	// Turns counts turns started in this session.
	Turns int
}

// Observer is notified after every log append and every change of the
// awaiting flag. Calls happen outside the controller's lock, on the
// goroutine that caused the change.
type Observer interface {
	OnChange(Snapshot)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Snapshot)

func (f ObserverFunc) OnChange(s Snapshot) { f(s) }

package auth

// EventKind names a session transition.
type EventKind int

const (
	EventLoggedIn EventKind = iota
	EventLoggedOut
	EventExpired
)

func (k EventKind) String() string {
	switch k {
	case EventLoggedIn:
		return "logged_in"
	case EventLoggedOut:
		return "logged_out"
	case EventExpired:
		return "expired"
	}
	return "unknown"
}

// Event is delivered on Manager.Events.
type Event struct {
	Kind EventKind
	// WasAuthenticated is set when the transition ended a live session.
	WasAuthenticated bool
	// DuringLogin is set when the rejected request was the login itself.
	DuringLogin bool
}

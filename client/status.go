package client

// Status is the session state machine. Transitions are owned by the Client:
// Loading moves to Authenticated or Unauthenticated after the one startup
// re-validation; Unauthenticated moves through Authenticating during a
// credential exchange and settles on its outcome.
type Status int

const (
	StatusLoading Status = iota
	StatusAuthenticating
	StatusAuthenticated
	StatusUnauthenticated
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusAuthenticating:
		return "authenticating"
	case StatusAuthenticated:
		return "authenticated"
	case StatusUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Decision is what a protected surface should do given the current Status.
type Decision int

const (
	// DecisionWait means the session state is not yet known; show nothing
	// and do not redirect.
	DecisionWait Decision = iota
	// DecisionRender means the caller holds a live session.
	DecisionRender
	// DecisionRedirect means send the caller to the login surface.
	DecisionRedirect
)

func (d Decision) String() string {
	switch d {
	case DecisionWait:
		return "wait"
	case DecisionRender:
		return "render"
	case DecisionRedirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Decide maps a session Status to a gate Decision. Pure function; callers
// re-evaluate it on every navigation rather than caching the result.
// Loading and Authenticating both wait: a transient state never causes a
// redirect, so a user mid-exchange is not bounced to login.
func Decide(s Status) Decision {
	switch s {
	case StatusLoading, StatusAuthenticating:
		return DecisionWait
	case StatusAuthenticated:
		return DecisionRender
	default:
		return DecisionRedirect
	}
}

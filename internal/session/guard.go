package session

// Route identifies a navigable view.
type Route int

const (
	// RouteLanding is the public landing view and the fallback target.
	RouteLanding Route = iota
	// RouteAuth holds the login, signup and password-reset forms.
	RouteAuth
	// RouteContacts is the paginated contact list. Protected.
	RouteContacts
	// RouteProfile shows the logged-in user's account. Protected.
	RouteProfile
	// RouteUnknown is any route the client does not recognize.
	RouteUnknown
)

// String returns the route name for logs.
func (r Route) String() string {
	switch r {
	case RouteAuth:
		return "auth"
	case RouteContacts:
		return "contacts"
	case RouteProfile:
		return "profile"
	case RouteUnknown:
		return "unknown"
	default:
		return "landing"
	}
}

// Protected reports whether the route requires an authenticated session.
func (r Route) Protected() bool {
	return r == RouteContacts || r == RouteProfile
}

// Decision is the guard's verdict for one navigation attempt.
type Decision struct {
	// Allow is true when the requested route may render as-is.
	Allow bool
	// Redirect is the route to show instead when Allow is false.
	Redirect Route
}

// Resolve decides whether the given state may enter the given route.
// Pure: same inputs, same decision, no side effects.
func Resolve(state State, route Route) Decision {
	if route == RouteUnknown {
		return Decision{Redirect: RouteLanding}
	}
	if route.Protected() && state != Authenticated {
		return Decision{Redirect: RouteAuth}
	}
	return Decision{Allow: true}
}

package tui

// protected views need a session.
var protected = map[view]bool{
	viewDashboard: true,
}

// guard resolves the view to show: a protected view without a session becomes
// the login view.
func guard(v view, authenticated bool) view {
	if protected[v] && !authenticated {
		return viewLogin
	}
	return v
}

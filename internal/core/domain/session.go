package domain

// SessionView is what a protected page sees of the current session: the
// identity, if any, and whether the load attempt is still outstanding.
type SessionView struct {
	IsLoading bool
	Identity  *Identity
}

// HasPermission reports whether the loaded identity holds one of required.
// It is false while nothing is loaded and for an empty required set.
func (v SessionView) HasPermission(required ...Role) bool {
	if v.Identity == nil {
		return false
	}
	for _, r := range required {
		if v.Identity.Role == r {
			return true
		}
	}
	return false
}

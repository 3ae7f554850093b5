package models

// PermissionManager answers access-control queries for a single request.
type PermissionManager interface {
	// Can reports whether action is allowed on resource.
	Can(action, resource string) bool
	// Accessible lists the identifiers of resource the user may access.
	Accessible(resource string) []string
}

// AllowAll grants every action and reports no accessible resources.
type AllowAll struct{}

// Can always returns true.
func (AllowAll) Can(string, string) bool { return true }

// Accessible always returns an empty, non-nil list.
func (AllowAll) Accessible(string) []string { return []string{} }

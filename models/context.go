package models

// UserContext pairs the request's user with its permission manager.
// It is built fresh for every request and dropped when the handler returns.
type UserContext struct {
	User              User              `json:"user"`
	PermissionManager PermissionManager `json:"-"`
}

// NewUserContext creates a UserContext; a nil manager defaults to AllowAll.
func NewUserContext(user User, pm PermissionManager) *UserContext {
	if pm == nil {
		pm = AllowAll{}
	}
	return &UserContext{
		User:              user,
		PermissionManager: pm,
	}
}

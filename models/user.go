package models

// User is the identity carried by an authenticated request.
// It is decoded from token credentials and never looked up in a store.
type User struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// NewUser creates a new User instance
func NewUser(id int, name string) *User {
	return &User{
		ID:   id,
		Name: name,
	}
}

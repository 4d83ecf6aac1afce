package entity

// Profile is the role specialization attached to a User: exactly one of
// *Business or *Customer.
type Profile interface {
	Role() Role
	isProfile()
}

// Identity is a User together with its persisted profile and category tags.
type Identity struct {
	User       User
	Profile    Profile
	Categories []Category
}

// Role is derived from the stored profile, never supplied by the caller.
func (i *Identity) Role() Role {
	if i.Profile == nil {
		return ""
	}
	return i.Profile.Role()
}

func (i *Identity) Business() (*Business, bool) {
	b, ok := i.Profile.(*Business)
	return b, ok
}

func (i *Identity) Customer() (*Customer, bool) {
	c, ok := i.Profile.(*Customer)
	return c, ok
}

package entity

type Role string

const (
	RoleBusiness Role = "business"
	RoleCustomer Role = "customer"
)

func (r Role) Valid() bool {
	return r == RoleBusiness || r == RoleCustomer
}

type User struct {
	BaseNoDelete
	Email        string  `db:"email"`
	Username     string  `db:"username"`
	PasswordHash string  `db:"password_hash"`
	PhoneNumber  *string `db:"phone_number"`
	Address      *string `db:"address"`
	ProfilePhoto *string `db:"profile_photo"`
}

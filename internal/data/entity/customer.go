package entity

import "github.com/google/uuid"

type Customer struct {
	BaseNoDelete
	UserID        uuid.UUID `db:"user_id"`
	MaritalStatus *string   `db:"marital_status"`
	Age           *int      `db:"age"`
	PriceRange    *string   `db:"price_range"`
	Gender        *string   `db:"gender"`
}

func (*Customer) Role() Role { return RoleCustomer }

func (*Customer) isProfile() {}

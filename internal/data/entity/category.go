package entity

import "github.com/google/uuid"

type Category struct {
	BaseSimple
	Key  string `db:"key"`
	Name string `db:"name"`
}

type UserCategory struct {
	UserID     uuid.UUID `db:"user_id"`
	CategoryID uuid.UUID `db:"category_id"`
}

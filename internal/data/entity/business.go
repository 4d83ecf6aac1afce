package entity

import "github.com/google/uuid"

type Business struct {
	BaseNoDelete
	UserID         uuid.UUID `db:"user_id"`
	BranchName     string    `db:"branch_name"`
	HotLine        *string   `db:"hot_line"`
	Address        *string   `db:"address"`
	TargetedGender *string   `db:"targeted_gender"`
	CoverPhoto     *string   `db:"cover_photo"`
	StartHour      *string   `db:"start_hour"` // HH:MM
	CloseHour      *string   `db:"close_hour"` // HH:MM
	OpeningDays    *string   `db:"opening_days"`
}

func (*Business) Role() Role { return RoleBusiness }

func (*Business) isProfile() {}

package request

// UpdateIdentityRequest replaces only the fields that are present. A present
// categories array, even an empty one, replaces the whole tag set.
type UpdateIdentityRequest struct {
	Email       *string                `json:"email,omitempty" validate:"omitnil,email,max=255"`
	Username    *string                `json:"username,omitempty" validate:"omitnil,min=3,max=50"`
	Password    *string                `json:"password,omitempty" validate:"omitnil,min=6,max=72"`
	PhoneNumber *string                `json:"phone_number,omitempty" validate:"omitempty,min=6,max=32"`
	Address     *string                `json:"address,omitempty" validate:"omitempty,max=500"`
	Categories  *[]string              `json:"categories,omitempty"`
	Business    *BusinessProfileUpdate `json:"business,omitempty"`
	Customer    *CustomerProfileUpdate `json:"customer,omitempty"`
}

type BusinessProfileUpdate struct {
	BranchName     *string `json:"branch_name,omitempty" validate:"omitnil,min=1,max=255"`
	HotLine        *string `json:"hot_line,omitempty" validate:"omitempty,max=32"`
	Address        *string `json:"address,omitempty" validate:"omitempty,max=500"`
	TargetedGender *string `json:"targeted_gender,omitempty" validate:"omitempty,max=16"`
	StartHour      *string `json:"start_hour,omitempty" validate:"omitempty,datetime=15:04"`
	CloseHour      *string `json:"close_hour,omitempty" validate:"omitempty,datetime=15:04"`
	OpeningDays    *string `json:"opening_days,omitempty" validate:"omitempty,max=255"`
}

type CustomerProfileUpdate struct {
	MaritalStatus *string `json:"marital_status,omitempty" validate:"omitempty,max=32"`
	Age           *int    `json:"age,omitempty" validate:"omitempty,min=0,max=150"`
	PriceRange    *string `json:"price_range,omitempty" validate:"omitempty,max=32"`
	Gender        *string `json:"gender,omitempty" validate:"omitempty,max=16"`
}

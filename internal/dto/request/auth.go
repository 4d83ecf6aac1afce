package request

// SignupRequest carries exactly one of Business or Customer.
type SignupRequest struct {
	Email       string                  `json:"email" validate:"required,email,max=255"`
	Username    string                  `json:"username" validate:"required,min=3,max=50"`
	Password    string                  `json:"password" validate:"required,min=6,max=72"`
	PhoneNumber *string                 `json:"phone_number,omitempty" validate:"omitempty,min=6,max=32"`
	Address     *string                 `json:"address,omitempty" validate:"omitempty,max=500"`
	Categories  []string                `json:"categories,omitempty" validate:"omitempty,dive,uuid"`
	Business    *BusinessProfileRequest `json:"business,omitempty"`
	Customer    *CustomerProfileRequest `json:"customer,omitempty"`
}

type BusinessProfileRequest struct {
	BranchName     string  `json:"branch_name" validate:"required,max=255"`
	HotLine        *string `json:"hot_line,omitempty" validate:"omitempty,max=32"`
	Address        *string `json:"address,omitempty" validate:"omitempty,max=500"`
	TargetedGender *string `json:"targeted_gender,omitempty" validate:"omitempty,max=16"`
	StartHour      *string `json:"start_hour,omitempty" validate:"omitempty,datetime=15:04"`
	CloseHour      *string `json:"close_hour,omitempty" validate:"omitempty,datetime=15:04"`
	OpeningDays    *string `json:"opening_days,omitempty" validate:"omitempty,max=255"`
}

type CustomerProfileRequest struct {
	MaritalStatus *string `json:"marital_status,omitempty" validate:"omitempty,max=32"`
	Age           *int    `json:"age,omitempty" validate:"omitempty,min=0,max=150"`
	PriceRange    *string `json:"price_range,omitempty" validate:"omitempty,max=32"`
	Gender        *string `json:"gender,omitempty" validate:"omitempty,max=16"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

package request

type CategoryRequest struct {
	Key  string `json:"key" validate:"required,max=100,slug"`
	Name string `json:"name" validate:"required,max=255"`
}

package response

type ContactResponse struct {
	ContactName string `json:"contact_name"`
	Status      string `json:"status"`
}

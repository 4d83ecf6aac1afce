package request

// FileUpload is an image read from a multipart form.
type FileUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

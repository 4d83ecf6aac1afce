package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

var contactTemplate = template.Must(template.New("contact").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>New contact message</h2>
  <p><strong>Name:</strong> {{.Name}}</p>
  <p><strong>Email:</strong> {{.Email}}</p>
  <p style="white-space: pre-wrap;">{{.Message}}</p>
</body>
</html>`))

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Thanks for reaching out, {{.Name}}!</h2>
  <p>We have received your message and will get back to you within 24-48 hours.</p>
</body>
</html>`))

var welcomeTemplate = template.Must(template.New("welcome").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Welcome, {{.Username}}!</h2>
  {{if .Business}}<p>Your business account is ready. Start publishing offers for your customers.</p>
  {{else}}<p>Your account is ready. Browse businesses and redeem their offers.</p>{{end}}
</body>
</html>`))

type ContactData struct {
	Name    string
	Email   string
	Message string
}

type WelcomeData struct {
	Username string
	Business bool
}

func RenderContact(data ContactData) (string, error) {
	return render(contactTemplate, data)
}

func RenderConfirmation(name string) (string, error) {
	return render(confirmationTemplate, struct{ Name string }{name})
}

func RenderWelcome(data WelcomeData) (string, error) {
	return render(welcomeTemplate, data)
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s template: %w", t.Name(), err)
	}
	return buf.String(), nil
}

package mail

import (
	"bytes"
	"html/template"
)

// Email is a rendered message body.
type Email struct {
	Subject string
	HTML    string
}

// TemplateData carries the variables the account emails interpolate.
type TemplateData struct {
	BaseURL  string
	Username string
	Check    string
}

var confirmTmpl = template.Must(template.New("confirm").Parse(`
<p>Hello {{.Username}},</p>
<p>Welcome aboard. Please confirm your account by following the link below:</p>
<p><a href="{{.BaseURL}}/confirm/{{.Check}}">{{.BaseURL}}/confirm/{{.Check}}</a></p>
<p>If you did not sign up, you can safely ignore this message.</p>
`))

var recoverTmpl = template.Must(template.New("recover").Parse(`
<p>Hello {{.Username}},</p>
<p>A password recovery was requested for your account. Follow the link below to continue:</p>
<p><a href="{{.BaseURL}}/recover/{{.Check}}">{{.BaseURL}}/recover/{{.Check}}</a></p>
<p>If you did not request a recovery, you can safely ignore this message.</p>
`))

// ConfirmTemplate renders the account confirmation email.
func ConfirmTemplate(d TemplateData) (Email, error) {
	return render("Confirm your account", confirmTmpl, d)
}

// RecoverTemplate renders the password recovery email.
func RecoverTemplate(d TemplateData) (Email, error) {
	return render("Recover your password", recoverTmpl, d)
}

func render(subject string, t *template.Template, d TemplateData) (Email, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, d); err != nil {
		return Email{}, err
	}
	return Email{Subject: subject, HTML: buf.String()}, nil
}

package mailer

import (
	"bytes"
	"fmt"
	htmpl "html/template"
	"time"
)

const verifyEmailHTML = `<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif; background: #f6f6f6; padding: 24px;">
    <div style="max-width: 480px; margin: 0 auto; background: #ffffff; border-radius: 8px; padding: 32px;">
      <h2 style="margin-top: 0;">Verify your email</h2>
      <p>Use the code below to verify your email address. It expires in 10 minutes.</p>
      <p style="font-size: 32px; letter-spacing: 8px; font-weight: bold; text-align: center;">{{.Code}}</p>
      <p style="color: #888; font-size: 12px;">If you did not request this, you can ignore this email.</p>
      <p style="color: #888; font-size: 12px;">&copy; {{.Year}} Listinker</p>
    </div>
  </body>
</html>`

// TemplateVerifyEmail names the email-verification code template.
const TemplateVerifyEmail = "verify_email"

var verifyEmailTmpl = htmpl.Must(htmpl.New(TemplateVerifyEmail).Parse(verifyEmailHTML))

// Render produces subject, text and html bodies for a named template.
func Render(template string, data map[string]any) (subject, text, html string, err error) {
	switch template {
	case TemplateVerifyEmail:
		code, _ := data["Code"].(string)
		payload := struct {
			Code string
			Year int
		}{Code: code, Year: time.Now().Year()}
		var buf bytes.Buffer
		if err := verifyEmailTmpl.Execute(&buf, payload); err != nil {
			return "", "", "", err
		}
		subject = "Email Verification OTP"
		text = "Your verification code is " + code
		html = buf.String()
		return subject, text, html, nil
	default:
		return "", "", "", fmt.Errorf("unknown email template %q", template)
	}
}

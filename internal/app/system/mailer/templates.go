// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// WelcomeEmailData holds data for the subscription welcome email.
type WelcomeEmailData struct {
	SiteName  string
	FirstName string
}

// BuildWelcomeEmail creates the welcome email sent on newsletter
// subscription, with both HTML and text bodies.
func BuildWelcomeEmail(data WelcomeEmailData) Email {
	return Email{
		To:       "", // Set by caller
		Subject:  fmt.Sprintf("Welcome to the %s Newsletter!", data.SiteName),
		TextBody: buildWelcomeText(data),
		HTMLBody: buildWelcomeHTML(data),
	}
}

func buildWelcomeText(data WelcomeEmailData) string {
	var buf bytes.Buffer
	if data.FirstName != "" {
		buf.WriteString(fmt.Sprintf("Hi %s,\n\n", data.FirstName))
	}
	buf.WriteString(fmt.Sprintf("Thank you for subscribing to the %s newsletter. You'll receive updates about:\n\n", data.SiteName))
	buf.WriteString("- Latest AI/ML projects and tutorials\n")
	buf.WriteString("- Computer vision developments\n")
	buf.WriteString("- Community events and collaborations\n")
	buf.WriteString("- Exclusive learning resources\n\n")
	buf.WriteString(fmt.Sprintf("Best regards,\nThe %s Team\n", data.SiteName))
	return buf.String()
}

func buildWelcomeHTML(data WelcomeEmailData) string {
	tmpl := template.Must(template.New("welcome").Parse(welcomeHTMLTemplate))
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, data)
	return buf.String()
}

const welcomeHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Welcome</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f3f4f6;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; background-color: #ffffff; border-radius: 8px;">
          <tr>
            <td style="padding: 32px 32px 24px; text-align: center; border-bottom: 1px solid #e5e7eb;">
              <h1 style="margin: 0; font-size: 24px; font-weight: 600; color: #4f46e5;">Welcome to {{.SiteName}}!</h1>
            </td>
          </tr>
          <tr>
            <td style="padding: 24px 32px;">
              {{if .FirstName}}<p style="margin: 0 0 16px; color: #111827;">Hi {{.FirstName}},</p>{{end}}
              <p style="margin: 0 0 16px; color: #111827;">Thank you for subscribing to our newsletter. You'll receive updates about:</p>
              <ul style="margin: 0 0 16px; color: #111827;">
                <li>Latest AI/ML projects and tutorials</li>
                <li>Computer vision developments</li>
                <li>Community events and collaborations</li>
                <li>Exclusive learning resources</li>
              </ul>
              <p style="margin: 0; color: #111827;">Best regards,<br>The {{.SiteName}} Team</p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`

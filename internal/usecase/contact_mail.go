package usecase

import (
	"html/template"
	"strings"
	"time"

	"contact-form-backend/internal/domain"
	"contact-form-backend/pkg/email"
)

const (
	confirmationSubject = "Thank you for contacting us!"
	notificationSubject = "New Contact Form Submission - "

	// contactDateLayout renders dates as month/day/year.
	contactDateLayout = "01/02/2006"
)

// confirmationTemplate is the HTML body sent to the person who filled in the form
const confirmationTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 20px; background-color: #f4f4f4; }
        .container { max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px; }
        .header { background-color: #2c3e50; color: white; padding: 20px; text-align: center; border-radius: 5px; margin-bottom: 20px; }
        .content { line-height: 1.6; color: #333; }
        .footer { margin-top: 30px; padding-top: 20px; border-top: 2px solid #eee; text-align: center; color: #666; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Contact Confirmation</h1>
        </div>
        <div class="content">
            <p>Dear {{.ContactName}},</p>
            <p>Thank you for contacting us! We have received your message and will respond to you as soon as possible.</p>
            <p>We appreciate your interest in our services and will get back to you within 24-48 hours.</p>
            <p>If you have any urgent questions, please feel free to call us directly.</p>
            <p>Best regards,<br>The Customer Service Team</p>
        </div>
        <div class="footer">
            <p><small>This is an automated confirmation email. Please do not reply to this message.</small></p>
        </div>
    </div>
</body>
</html>`

// notificationTemplate is the HTML body sent to the site owner
const notificationTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 20px; background-color: #f8f9fa; }
        .container { max-width: 600px; margin: 0 auto; background-color: white; padding: 20px; border-radius: 5px; }
        .header { background-color: #007bff; color: white; padding: 15px; margin-bottom: 20px; border-radius: 3px; }
        ul { list-style-type: none; padding: 0; }
        li { padding: 10px; margin: 5px 0; background-color: #f8f9fa; border-left: 4px solid #007bff; }
        .label { font-weight: bold; color: #333; }
        .value { margin-left: 10px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h2>New Contact Form Submission</h2>
        </div>
        <p><strong>Date of Contact:</strong> {{.Date}}</p>
        <h3>Contact Information:</h3>
        <ul>
            <li><span class="label">Contact Name:</span><span class="value">{{.ContactName}}</span></li>
            <li><span class="label">Email Address:</span><span class="value">{{.ContactEmail}}</span></li>
            <li><span class="label">Reason for Contact:</span><span class="value">{{.ContactReason}}</span></li>
            <li><span class="label">Comments:</span><span class="value">{{.Comments}}</span></li>
        </ul>
    </div>
</body>
</html>`

var (
	confirmationTmpl = template.Must(template.New("confirmation").Parse(confirmationTemplate))
	notificationTmpl = template.Must(template.New("notification").Parse(notificationTemplate))
)

// mailFields are the template values. Submission values were escaped by the
// sanitizer before validation, so they are embedded as trusted HTML rather
// than escaped a second time.
type mailFields struct {
	Date          string
	ContactName   template.HTML
	ContactEmail  template.HTML
	ContactReason template.HTML
	Comments      template.HTML
}

func newMailFields(sub domain.Submission, now time.Time) mailFields {
	return mailFields{
		Date:          now.Format(contactDateLayout),
		ContactName:   template.HTML(sub.ContactName()),
		ContactEmail:  template.HTML(sub.ContactEmail()),
		ContactReason: template.HTML(sub.ContactReason()),
		Comments:      template.HTML(lineBreaks(sub.Comments())),
	}
}

// ComposeConfirmation builds the email thanking the customer.
func ComposeConfirmation(sub domain.Submission) email.Message {
	return email.Message{
		To:      sub.ContactEmail(),
		Subject: confirmationSubject,
		Body:    render(confirmationTmpl, newMailFields(sub, time.Time{})),
		HTML:    true,
	}
}

// ComposeNotification builds the email telling the site owner about a new
// submission received at now.
func ComposeNotification(sub domain.Submission, adminEmail string, now time.Time) email.Message {
	return email.Message{
		To:      adminEmail,
		Subject: notificationSubject + now.Format(contactDateLayout),
		Body:    render(notificationTmpl, newMailFields(sub, now)),
		HTML:    true,
	}
}

// lineBreaks turns newlines into <br> tags, keeping the newline for readability
// of the raw source.
func lineBreaks(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.ReplaceAll(s, "\n", "<br>\n")
}

// render executes a parsed template. The templates are constants and the
// fields are plain strings, so execution can only fail on a programming error.
func render(tmpl *template.Template, data mailFields) string {
	var body strings.Builder
	if err := tmpl.Execute(&body, data); err != nil {
		panic("usecase: render " + tmpl.Name() + ": " + err.Error())
	}
	return body.String()
}

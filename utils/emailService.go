package utils

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"lms/config"
)

var (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

// SendEmail sends an HTML email through Sendgrid
func SendEmail(to []string, subject string, htmlBody string) error {
	p := sgmail.NewPersonalization()
	p.Subject = subject
	for _, addr := range to {
		p.AddTos(sgmail.NewEmail("", addr))
	}

	m := sgmail.NewV3Mail()
	m.SetFrom(sgmail.NewEmail(config.AppConfig.EmailName, config.AppConfig.EmailSender))
	m.AddPersonalizations(p)
	m.AddContent(sgmail.NewContent("text/html", htmlBody))

	req := sendgrid.GetRequest(config.AppConfig.SendgridApiKey, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m)

	res, err := sendgrid.API(req)
	if err != nil {
		log.Printf("Error sending email to %v: %v", to, err)
		return err
	}
	if res.StatusCode >= http.StatusBadRequest {
		log.Printf("Error sending email to %v - status: %d - body: %s", to, res.StatusCode, res.Body)
		return fmt.Errorf("sendgrid returned status %d", res.StatusCode)
	}
	return nil
}

// HTML wrapper shared by all notification emails
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #00004D; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #00004D; line-height: 1.6; }
			.content h2 { color: #00004D; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #d7b56d; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>%s</h1>
			</div>
			<div class="content">
				%s
			</div>
			<div class="footer">
				This is an automated message from the training portal. Please do not reply.
			</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}

// SendTrainingAssignedEmail notifies a user of a new training assignment
func SendTrainingAssignedEmail(email, name, trainingName string, deadline *time.Time) error {
	due := "as soon as possible"
	if deadline != nil {
		due = "by " + deadline.Format("02 Jan 2006")
	}
	body := fmt.Sprintf(`
		<h2>Hello %s,</h2>
		<p>A new training has been assigned to you.</p>
		<div class="info-box">
			<strong>%s</strong><br/>
			Please complete it %s.
		</div>
		<p>Log in to the training portal to get started.</p>`, name, trainingName, due)

	return SendEmail([]string{email}, "New Training Assigned: "+trainingName, getEmailTemplate("Training Assigned", body))
}

// SendTrainingCompletedEmail notifies the admin desk that a user finished a
// training. Payload matches the notifier contract: name, empId, trainingName,
// branch, email.
func SendTrainingCompletedEmail(email, name, empID, trainingName, branch string) error {
	body := fmt.Sprintf(`
		<h2>Training Completed</h2>
		<div class="info-box">
			<strong>%s</strong> (%s)<br/>
			Branch: %s<br/>
			Training: %s
		</div>
		<p>Congratulations on completing your training!</p>`, name, empID, branch, trainingName)

	return SendEmail([]string{email}, "Training Completed: "+trainingName, getEmailTemplate("Training Completed", body))
}

// SendDeadlineReminderEmail reminds a user about an approaching deadline
func SendDeadlineReminderEmail(email, name, trainingName string, deadline time.Time) error {
	body := fmt.Sprintf(`
		<h2>Hello %s,</h2>
		<p>This is a reminder that your training is due soon.</p>
		<div class="info-box">
			<strong>%s</strong><br/>
			Due: %s
		</div>
		<p>Please complete it before the deadline.</p>`, name, trainingName, deadline.Format("02 Jan 2006"))

	return SendEmail([]string{email}, "Reminder: "+trainingName+" is due soon", getEmailTemplate("Training Reminder", body))
}

package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/gomail.v2"
)

func SendEmail(to, subject, body string) error {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Error loading .env file. Using environment variables directly.")
	}

	if os.Getenv("SMTP_HOST") == "" {
		// Mock send: the OTP is already written to the server log.
		log.Printf("SMTP not configured, skipping email to %s (%s)", to, subject)
		return nil
	}

	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("EMAIL_USER"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(
		os.Getenv("SMTP_HOST"),
		port,
		os.Getenv("EMAIL_USER"),
		os.Getenv("EMAIL_PASS"),
	)

	return d.DialAndSend(m)
}

// SendOTPEmail delivers a verification code to a doctor.
func SendOTPEmail(to, name, otp string, validMinutes int) error {
	subject := "Your NabhaCare verification code"
	body := fmt.Sprintf(`
		<p>Dear Dr. %s,</p>
		<p>Your one-time verification code is:</p>
		<h2>%s</h2>
		<p>The code expires in %d minutes. If you did not request it, you can ignore this email.</p>
		<p>Best regards,</p>
		<p>NabhaCare Team</p>
	`, name, otp, validMinutes)

	return SendEmail(to, subject, body)
}

// SendStatusEmail notifies a doctor of an admin verification decision.
func SendStatusEmail(to, name, status string) error {
	subject := fmt.Sprintf("NabhaCare account update: %s", status)
	body := fmt.Sprintf(`
		<p>Dear Dr. %s,</p>
		<p>Your NabhaCare profile verification status is now <strong>%s</strong>.</p>
		<p>Best regards,</p>
		<p>NabhaCare Team</p>
	`, name, status)

	return SendEmail(to, subject, body)
}

package mailing

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"strconv"
	"time"

	"Meal-Preorder-Backend/internal/utils"

	"github.com/shopspring/decimal"
	"gopkg.in/gomail.v2"
)

type MailConfig struct {
	AppURL       string
	SMTPHost     string
	SMTPPort     string
	SMTPSender   string
	SMTPEmail    string
	SMTPPassword string
}

func LoadMailConfig() MailConfig {
	return MailConfig{
		AppURL:       utils.GetConfig("APP_URL"),
		SMTPHost:     utils.GetConfig("SMTP_HOST"),
		SMTPPort:     utils.GetConfig("SMTP_PORT"),
		SMTPSender:   utils.GetConfig("SMTP_SENDER_NAME"),
		SMTPEmail:    utils.GetConfig("SMTP_AUTH_EMAIL"),
		SMTPPassword: utils.GetConfig("SMTP_AUTH_PASSWORD"),
	}
}

var ErrMailNotConfigured = errors.New("smtp is not configured")

type (
	PurchaseApprovedMail struct {
		Email       string
		Name        string
		PackageName string
		Turns       int
		Price       decimal.Decimal
		PurchasedAt time.Time
	}

	// Notifier delivers user facing notifications. Callers treat failures as
	// non-fatal.
	Notifier interface {
		SendOTP(ctx context.Context, toEmail, name, otp string) error
		NotifyPurchaseApproved(ctx context.Context, mail PurchaseApprovedMail) error
	}

	smtpNotifier struct {
		config MailConfig
	}
)

func NewNotifier() Notifier {
	return &smtpNotifier{config: LoadMailConfig()}
}

func send(emailConfig MailConfig, toEmail string, subject string, body string) error {
	if emailConfig.SMTPHost == "" || emailConfig.SMTPEmail == "" {
		return ErrMailNotConfigured
	}

	mailer := gomail.NewMessage()
	mailer.SetAddressHeader("From", emailConfig.SMTPEmail, emailConfig.SMTPSender)
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)
	port, err := strconv.Atoi(emailConfig.SMTPPort)
	if err != nil {
		return err
	}
	dialer := gomail.NewDialer(
		emailConfig.SMTPHost,
		port,
		emailConfig.SMTPEmail,
		emailConfig.SMTPPassword,
	)

	return dialer.DialAndSend(mailer)
}

var (
	otpTemplate = template.Must(template.New("otp").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Hello {{.Name}}!</h2>
  <p>Use the code below to verify your account. It is valid for 10 minutes.</p>
  <div style="font-size: 32px; font-weight: bold; letter-spacing: 8px;">{{.OTP}}</div>
  <p>If you did not request this code, ignore this email.</p>
</div>`))

	purchaseTemplate = template.Must(template.New("purchase").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Hello {{.Name}}!</h2>
  <p>Your meal package purchase has been confirmed.</p>
  <p><strong>Package:</strong> {{.PackageName}}</p>
  <p><strong>Turns:</strong> {{.Turns}}</p>
  <p><strong>Price:</strong> {{.Price}} VND</p>
  <p><strong>Time:</strong> {{.Time}}</p>
  <p>Open your profile to see the packages you can order with.</p>
</div>`))
)

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (n *smtpNotifier) SendOTP(ctx context.Context, toEmail, name, otp string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := render(otpTemplate, map[string]string{"Name": name, "OTP": otp})
	if err != nil {
		return err
	}
	return send(n.config, toEmail, "Account verification code", body)
}

func (n *smtpNotifier) NotifyPurchaseApproved(ctx context.Context, mail PurchaseApprovedMail) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := render(purchaseTemplate, map[string]any{
		"Name":        mail.Name,
		"PackageName": mail.PackageName,
		"Turns":       mail.Turns,
		"Price":       mail.Price.StringFixedBank(0),
		"Time":        utils.CivilTime(mail.PurchasedAt).Format("02/01/2006 15:04:05"),
	})
	if err != nil {
		return err
	}
	return send(n.config, mail.Email, "Meal package purchase confirmed", body)
}

package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/google/uuid"

	"github.com/fitness-fanatics/fitness-api/internal/logging"
)

// Service sends the transactional mails of the credential flows over
// SMTP. Sending is synchronous; callers treat a send failure as a
// failure of the whole operation.
type Service struct {
	smtpHost     string
	smtpPort     string
	smtpUser     string
	smtpPassword string
	fromEmail    string
	frontendURL  string

	activationTmpl *template.Template
	resetTmpl      *template.Template
}

func NewService(smtpHost, smtpPort, smtpUser, smtpPassword, frontendURL string) *Service {
	return &Service{
		smtpHost:     smtpHost,
		smtpPort:     smtpPort,
		smtpUser:     smtpUser,
		smtpPassword: smtpPassword,
		fromEmail:    smtpUser,
		frontendURL:  frontendURL,

		activationTmpl: template.Must(template.New("activation").Parse(activationTemplate)),
		resetTmpl:      template.Must(template.New("passwordReset").Parse(passwordResetTemplate)),
	}
}

// SendActivationEmail mails the account activation link. The token in
// the link carries the staged registration and is valid for 15 minutes.
func (s *Service) SendActivationEmail(ctx context.Context, toEmail, token string) error {
	logger := logging.GetLoggerFromContext(ctx)

	activationLink := fmt.Sprintf("%s/user/activation/%s", s.frontendURL, token)

	body, err := s.render(s.activationTmpl, map[string]string{"Link": activationLink})
	if err != nil {
		logger.Error("failed to render activation email template", "error", err)
		return fmt.Errorf("render template: %w", err)
	}

	if err := s.sendEmail(toEmail, "Activate your Fitness Fanatics account", body); err != nil {
		logger.Error("failed to send activation email", "email", toEmail, "error", err)
		return fmt.Errorf("send email: %w", err)
	}

	logger.Info("activation email sent", "email", toEmail)
	return nil
}

// SendPasswordResetEmail mails the password reset link. The link embeds
// the user's ID and a reset token valid for 15 minutes.
func (s *Service) SendPasswordResetEmail(ctx context.Context, toEmail string, userID uuid.UUID, token string) error {
	logger := logging.GetLoggerFromContext(ctx)

	resetLink := fmt.Sprintf("%s/password-reset/%s/%s", s.frontendURL, userID, token)

	body, err := s.render(s.resetTmpl, map[string]string{"Link": resetLink})
	if err != nil {
		logger.Error("failed to render password reset email template", "error", err)
		return fmt.Errorf("render template: %w", err)
	}

	if err := s.sendEmail(toEmail, "Reset your Fitness Fanatics password", body); err != nil {
		logger.Error("failed to send password reset email", "email", toEmail, "error", err)
		return fmt.Errorf("send email: %w", err)
	}

	logger.Info("password reset email sent", "email", toEmail)
	return nil
}

func (s *Service) render(tmpl *template.Template, data map[string]string) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return buf.String(), nil
}

func (s *Service) sendEmail(to, subject, body string) error {
	auth := smtp.PlainAuth("", s.smtpUser, s.smtpPassword, s.smtpHost)

	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s\r\n",
		s.fromEmail, to, subject, body,
	))

	addr := fmt.Sprintf("%s:%s", s.smtpHost, s.smtpPort)
	return smtp.SendMail(addr, auth, s.fromEmail, []string{to}, msg)
}

const activationTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body {
            font-family: Arial, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
        }
        .header {
            background-color: #16A34A;
            color: white;
            padding: 20px;
            text-align: center;
            border-radius: 5px 5px 0 0;
        }
        .content {
            background-color: #f9f9f9;
            padding: 30px;
            border-radius: 0 0 5px 5px;
        }
        .button {
            display: inline-block;
            background-color: #16A34A;
            color: white !important;
            padding: 12px 30px;
            text-decoration: none;
            border-radius: 5px;
            margin: 20px 0;
        }
        .footer {
            margin-top: 30px;
            font-size: 12px;
            color: #666;
            text-align: center;
        }
    </style>
</head>
<body>
    <div class="header">
        <h1>Welcome to Fitness Fanatics!</h1>
    </div>
    <div class="content">
        <h2>Activate your account</h2>
        <p>Thank you for signing up! Please click the button below to activate your account. Your account is created once you do.</p>

        <a href="{{.Link}}" class="button" style="color: white !important;">Activate Account</a>

        <p>Or copy and paste this link into your browser:</p>
        <p style="word-break: break-all; color: #16A34A;">{{.Link}}</p>

        <p style="margin-top: 30px;">If you didn't sign up, you can safely ignore this email. No account will be created.</p>
    </div>
    <div class="footer">
        <p>This link will expire in 15 minutes.</p>
        <p>&copy; 2026 Fitness Fanatics. All rights reserved.</p>
    </div>
</body>
</html>
`

const passwordResetTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body {
            font-family: Arial, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
        }
        .header {
            background-color: #16A34A;
            color: white;
            padding: 20px;
            text-align: center;
            border-radius: 5px 5px 0 0;
        }
        .content {
            background-color: #f9f9f9;
            padding: 30px;
            border-radius: 0 0 5px 5px;
        }
        .button {
            display: inline-block;
            background-color: #16A34A;
            color: white !important;
            padding: 12px 30px;
            text-decoration: none;
            border-radius: 5px;
            margin: 20px 0;
        }
        .footer {
            margin-top: 30px;
            font-size: 12px;
            color: #666;
            text-align: center;
        }
    </style>
</head>
<body>
    <div class="header">
        <h1>Password Reset Request</h1>
    </div>
    <div class="content">
        <h2>Reset your password</h2>
        <p>You requested to reset your password. Click the button below to choose a new one.</p>

        <a href="{{.Link}}" class="button" style="color: white !important;">Reset Password</a>

        <p>Or copy and paste this link into your browser:</p>
        <p style="word-break: break-all; color: #16A34A;">{{.Link}}</p>

        <p style="margin-top: 30px;">If you didn't request a password reset, you can safely ignore this email. Your password will remain unchanged.</p>
    </div>
    <div class="footer">
        <p>This link will expire in 15 minutes.</p>
        <p>&copy; 2026 Fitness Fanatics. All rights reserved.</p>
    </div>
</body>
</html>
`

package mail

import (
	"fmt"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendRankingFailureAlert emails the operator when a scheduled ranking
// aggregation run fails.
func SendRankingFailureAlert(periodType string, runErr error) error {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	to := os.Getenv("ALERT_EMAIL_TO")
	fromEmail := os.Getenv("EMAIL_FROM")

	if apiKey == "" || to == "" {
		return fmt.Errorf("alert mail not configured (SENDGRID_API_KEY / ALERT_EMAIL_TO)")
	}

	subject := fmt.Sprintf("[Stamp Rally] %s ranking aggregation failed", periodType)
	plainTextContent := fmt.Sprintf("The scheduled %s ranking aggregation failed:\n\n%v\n\nRe-running the job is safe: it fully recomputes and replaces the period's leaderboard.", periodType, runErr)
	htmlContent := fmt.Sprintf(`
        <html>
        <body>
            <h2>Ranking aggregation failed</h2>
            <p>The scheduled <strong>%s</strong> run failed:</p>
            <pre>%v</pre>
            <p>Re-running the job is safe: it fully recomputes and replaces the period's leaderboard.</p>
        </body>
        </html>
    `, periodType, runErr)

	from := mail.NewEmail("Stamp Rally", fromEmail)
	toEmail := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, toEmail, plainTextContent, htmlContent)

	client := sendgrid.NewSendClient(apiKey)
	response, err := client.Send(message)

	if err != nil {
		return fmt.Errorf("failed to send alert email: %w", err)
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: %d - %s", response.StatusCode, response.Body)
	}

	return nil
}

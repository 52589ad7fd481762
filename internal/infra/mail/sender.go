package mail

import (
	"bytes"
	"fmt"
	"text/template"

	"gopkg.in/gomail.v2"

	"github.com/smartleadhq/smart-leads/internal/infra/queue"
)

const leadNotificationTemplate = `
<p>Hi Sales Team,</p>
<p>A new verified lead just landed in your pipeline:</p>
<ul>
  <li><strong>Name:</strong> {{.Name}}</li>
  <li><strong>Most likely country:</strong> {{.Country}}</li>
  <li><strong>Confidence:</strong> {{.ConfidenceScore}}%</li>
  <li><strong>Forwarded at:</strong> {{.ForwardedAt}}</li>
</ul>
<p>— Smart Lead API</p>
`

func NewSender(host string, port int, user, password, from, salesTeam string) *Sender {
	return &Sender{
		Host:      host,
		Port:      port,
		User:      user,
		Password:  password,
		From:      from,
		SalesTeam: salesTeam,
	}
}

func (s *Sender) NotifyLeadSynced(payload queue.LeadSyncedPayload) error {
	data := LeadNotificationData{
		Name:            payload.Name,
		Country:         payload.MostLikelyCountry,
		ConfidenceScore: payload.ConfidenceScore,
		ForwardedAt:     payload.ForwardedAt.Format("2006-01-02 15:04:05 MST"),
	}

	t, err := template.New("lead-notification").Parse(leadNotificationTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse notification template: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render notification template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", s.SalesTeam)
	m.SetHeader("Subject", fmt.Sprintf("New verified lead: %s (%s)", payload.Name, payload.MostLikelyCountry))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send notification email: %w", err)
	}

	return nil
}

package notify

import (
	"context"
	"fmt"
	"html"

	"github.com/resend/resend-go/v2"

	"gemcal/internal/event"
)

// ResendNotifier emails a copy of each event confirmation via the Resend API
type ResendNotifier struct {
	client      *resend.Client
	fromAddress string
	recipient   string
}

// NewResendNotifier creates a new Resend email notifier
func NewResendNotifier(apiKey, from, recipient string) *ResendNotifier {
	if apiKey == "" {
		return nil
	}
	return &ResendNotifier{
		client:      resend.NewClient(apiKey),
		fromAddress: from,
		recipient:   recipient,
	}
}

// IsConfigured returns true if the notifier has server-side config
func (r *ResendNotifier) IsConfigured() bool {
	return r != nil && r.client != nil && r.fromAddress != "" && r.recipient != ""
}

// Send emails the event confirmation and calendar link to the recipient
func (r *ResendNotifier) Send(ctx context.Context, ev *event.Event, link string) error {
	if r.recipient == "" {
		return fmt.Errorf("no recipient specified")
	}

	subject := fmt.Sprintf("New Event: %s", ev.Title)
	params := &resend.SendEmailRequest{
		From:    r.fromAddress,
		To:      []string{r.recipient},
		Subject: subject,
		Html:    r.formatEmailHTML(ev, link),
	}

	_, err := r.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("resend send failed: %w", err)
	}

	fmt.Printf("Email notification sent to %s for event: %s\n", r.recipient, ev.Title)
	return nil
}

// Name returns the notifier name
func (r *ResendNotifier) Name() string {
	return "resend"
}

// formatEmailHTML creates the HTML email body
func (r *ResendNotifier) formatEmailHTML(ev *event.Event, link string) string {
	timeStr := ev.Start.Format("Monday, January 2, 2006 at 15:04")
	endStr := ""
	if ev.Start.Format("2006-01-02") == ev.End.Format("2006-01-02") {
		endStr = ev.End.Format("15:04")
	} else {
		endStr = ev.End.Format("Monday, January 2, 2006 at 15:04")
	}

	locationHTML := ""
	if ev.Location != "" {
		locationHTML = fmt.Sprintf(`<p><strong>Location:</strong> %s</p>`, html.EscapeString(ev.Location))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="margin: 0 0 16px 0;">%s</h2>
  <p><strong>When:</strong> %s - %s</p>
  %s
  <p><a href="%s" style="display: inline-block; padding: 10px 20px; background: #1a73e8; color: white; border-radius: 4px; text-decoration: none;">Add to Google Calendar</a></p>
</body>
</html>`,
		html.EscapeString(ev.Title), timeStr, endStr, locationHTML, link)
}

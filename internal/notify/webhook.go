package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Notifier posts short import-result messages to a chat webhook (Google Chat /
// Slack style: a JSON body with a "text" field). Best-effort: a failed
// notification never fails the run that triggered it.
type Notifier struct {
	webhookURL string
	client     *http.Client
}

func New(webhookURL string) *Notifier {
	return &Notifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Enabled reports whether a webhook URL is configured.
func (n *Notifier) Enabled() bool {
	return n != nil && n.webhookURL != ""
}

func (n *Notifier) Send(text string) {
	if !n.Enabled() {
		return
	}

	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return
	}

	resp, err := n.client.Post(n.webhookURL, "application/json", bytes.NewReader(payload))
	if err != nil {
		logrus.WithError(err).Warn("webhook notification failed")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logrus.WithField("status", resp.StatusCode).Warn("webhook notification rejected")
	}
}

// SendImportResult formats and sends the standard post-import message.
func (n *Notifier) SendImportResult(location, date string, imported, unmatched int, status string) {
	if date == "" {
		date = "unknown date"
	}
	n.Send(fmt.Sprintf(
		"Utak import for %s (%s): %d products updated, %d unmatched, status %s",
		location, date, imported, unmatched, status,
	))
}

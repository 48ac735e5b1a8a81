package notifier

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/Mathdino/cardapio-backend/models"
)

// TwilioWhatsAppNotifier sends order messages through Twilio's WhatsApp
// channel.
type TwilioWhatsAppNotifier struct {
	accountSID string
	authToken  string
	fromNumber string
	httpClient *http.Client
}

// NewTwilioWhatsAppNotifier builds a notifier from environment variables.
func NewTwilioWhatsAppNotifier() (*TwilioWhatsAppNotifier, error) {
	sid := os.Getenv("TWILIO_ACCOUNT_SID")
	token := os.Getenv("TWILIO_AUTH_TOKEN")
	from := os.Getenv("TWILIO_WHATSAPP_FROM")

	if sid == "" {
		return nil, fmt.Errorf("TWILIO_ACCOUNT_SID not set")
	}
	if token == "" {
		return nil, fmt.Errorf("TWILIO_AUTH_TOKEN not set")
	}
	if from == "" {
		return nil, fmt.Errorf("TWILIO_WHATSAPP_FROM not set")
	}

	return &TwilioWhatsAppNotifier{
		accountSID: sid,
		authToken:  token,
		fromNumber: from,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// NotifyOrderCreated sends the formatted order summary to the store's
// WhatsApp number.
func (t *TwilioWhatsAppNotifier) NotifyOrderCreated(ctx context.Context, store *models.Store, order *models.Order) (SendResult, error) {
	apiURL := fmt.Sprintf(
		"https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json",
		t.accountSID,
	)

	formData := url.Values{}
	formData.Set("To", whatsappAddress(store.WhatsAppNumber))
	formData.Set("From", whatsappAddress(t.fromNumber))
	formData.Set("Body", FormatOrderMessage(order))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL,
		strings.NewReader(formData.Encode()))
	if err != nil {
		return SendResult{}, fmt.Errorf("failed to create request: %w", err)
	}

	req.SetBasicAuth(t.accountSID, t.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return SendResult{}, fmt.Errorf("twilio request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return SendResult{}, fmt.Errorf("twilio error %s: %s", resp.Status, string(respBody))
	}

	return SendResult{
		MessageID: fmt.Sprintf("twilio-%d", time.Now().UnixNano()),
		SentAt:    time.Now(),
	}, nil
}

// whatsappAddress prefixes a number for Twilio's WhatsApp transport.
func whatsappAddress(number string) string {
	if strings.HasPrefix(number, "whatsapp:") {
		return number
	}
	return "whatsapp:" + number
}

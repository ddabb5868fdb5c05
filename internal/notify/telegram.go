// Package notify sends order status messages to buyers through the Telegram
// Bot API.
//
// Delivery is best effort and at most once: there is no retry and no
// delivery confirmation. Callers log the returned error and must never roll
// back or fail the triggering operation because of it.
package notify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Client struct {
	Token      string
	APIBase    string // e.g. "https://api.telegram.org"
	HTTPClient *http.Client
}

func New(token, apiBase string) *Client {
	return &Client{
		Token:   token,
		APIBase: apiBase,
		// Bounded timeout so a slow Telegram API cannot hang the
		// admin request that triggered the notification.
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// SendOrderStatus tells the buyer that their order changed status. With no
// configured token it is a no-op.
func (c *Client) SendOrderStatus(ctx context.Context, chatID string, orderID int, status string) error {
	if c.Token == "" {
		return nil
	}

	form := url.Values{
		"chat_id": {chatID},
		"text":    {fmt.Sprintf("Order #%d has been %s!", orderID, status)},
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", strings.TrimSuffix(c.APIBase, "/"), c.Token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram sendMessage: unexpected status %s", resp.Status)
	}
	return nil
}

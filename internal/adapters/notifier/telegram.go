package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"arbscanner/internal/domain"

	"golang.org/x/time/rate"
)

const defaultTelegramURL = "https://api.telegram.org"

// Telegram allows roughly one message per second into a single chat.
const sendsPerSecond = 1

type TelegramNotifier struct {
	http    *http.Client
	baseURL string
	token   string
	chatID  string
	limiter *rate.Limiter
}

type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

func (n *TelegramNotifier) Notify(ctx context.Context, alert domain.Alert) error {
	if err := n.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("telegram rate limiter: %w", err)
	}

	payload, err := json.Marshal(sendMessageRequest{
		ChatID:                n.chatID,
		Text:                  FormatAlert(alert),
		ParseMode:             "HTML",
		DisableWebPagePreview: true,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal telegram message: %w", err)
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, n.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.http.Do(req)
	if err != nil {
		// the request URL embeds the bot token
		return fmt.Errorf("failed to send telegram message: %s", strings.ReplaceAll(err.Error(), n.token, "***"))
	}
	defer resp.Body.Close()

	var body sendMessageResponse
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	_ = json.Unmarshal(raw, &body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !body.OK {
		return fmt.Errorf("telegram rejected message with status %d: %s", resp.StatusCode, body.Description)
	}
	return nil
}

// FormatAlert renders the message body sent to the chat.
func FormatAlert(a domain.Alert) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>Arbitrage alert: %s</b>\n", a.Asset)
	fmt.Fprintf(&b, "Net profit: <b>%.3f%%</b> (gross %.3f%%)\n", a.NetProfitPct, a.GrossSpreadPct)
	fmt.Fprintf(&b, "Buy on %s @ %.2f\n", a.BuyExchange, a.BuyPrice)
	fmt.Fprintf(&b, "Sell on %s @ %.2f\n", a.SellExchange, a.SellPrice)
	fmt.Fprintf(&b, "At %s", a.Timestamp.UTC().Format(time.RFC3339))
	if a.DashboardURL != "" {
		fmt.Fprintf(&b, "\n<a href=\"%s\">Open dashboard</a>", a.DashboardURL)
	}
	return b.String()
}

// NewTelegramNotifier returns a notifier bound to one bot token and chat.
// baseURL may be empty to use the public Bot API.
func NewTelegramNotifier(httpClient *http.Client, baseURL, token, chatID string) *TelegramNotifier {
	if baseURL == "" {
		baseURL = defaultTelegramURL
	}
	return &TelegramNotifier{
		http:    httpClient,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		chatID:  chatID,
		limiter: rate.NewLimiter(rate.Limit(sendsPerSecond), 1),
	}
}

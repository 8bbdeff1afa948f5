package telegram

import (
	"context"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/maxaizer/job-digest/internal/clients"
	"github.com/pkg/errors"
)

// Client delivers a digest as an HTML document to one chat.
type Client struct {
	token    string
	chatID   int64
	endpoint string
	now      func() time.Time

	mu  sync.Mutex
	bot *tgbotapi.BotAPI
}

func NewClient(token string, chatID int64) *Client {
	return &Client{token: token, chatID: chatID, endpoint: tgbotapi.APIEndpoint, now: time.Now}
}

// SetAPIEndpoint overrides the bot API endpoint, in tgbotapi.APIEndpoint format.
func (c *Client) SetAPIEndpoint(endpoint string) {
	c.endpoint = endpoint
}

func (c *Client) Send(ctx context.Context, subject, htmlBody string) error {
	if c.token == "" || c.chatID == 0 {
		return errors.Wrap(clients.ErrMissingCredentials, "telegram needs a bot token and a chat id")
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	bot, err := c.getBot()
	if err != nil {
		return err
	}

	document := tgbotapi.NewDocument(c.chatID, tgbotapi.FileBytes{
		Name:  "digest-" + c.now().Format(time.DateOnly) + ".html",
		Bytes: []byte(htmlBody),
	})
	document.Caption = subject

	if _, err = bot.Send(document); err != nil {
		return errors.Wrap(err, "failed to send digest document")
	}
	return nil
}

func (c *Client) getBot() (*tgbotapi.BotAPI, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.bot != nil {
		return c.bot, nil
	}

	bot, err := tgbotapi.NewBotAPIWithAPIEndpoint(c.token, c.endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "failed to init telegram bot")
	}

	c.bot = bot
	return bot, nil
}

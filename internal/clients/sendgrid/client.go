package sendgrid

import (
	"context"
	"net/http"

	"github.com/maxaizer/job-digest/internal/clients"
	"github.com/pkg/errors"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const sendEndpoint = "/v3/mail/send"

type Client struct {
	apiKey string
	from   string
	to     []string
	host   string
}

func NewClient(apiKey, from string, to []string) *Client {
	return &Client{apiKey: apiKey, from: from, to: to}
}

// SetHost points the client at another API host, "" means the public SendGrid API.
func (c *Client) SetHost(host string) {
	c.host = host
}

func (c *Client) Send(ctx context.Context, subject, htmlBody string) error {
	if c.apiKey == "" || c.from == "" || len(c.to) == 0 {
		return errors.Wrap(clients.ErrMissingCredentials, "sendgrid needs an api key, a sender and recipients")
	}

	message := mail.NewV3Mail()
	message.SetFrom(mail.NewEmail("", c.from))
	message.Subject = subject

	personalization := mail.NewPersonalization()
	for _, to := range c.to {
		personalization.AddTos(mail.NewEmail("", to))
	}
	message.AddPersonalizations(personalization)
	message.AddContent(mail.NewContent("text/html", htmlBody))

	request := sendgrid.GetRequest(c.apiKey, sendEndpoint, c.host)
	request.Method = http.MethodPost
	request.Body = mail.GetRequestBody(message)

	response, err := sendgrid.MakeRequestWithContext(ctx, request)
	if err != nil {
		return errors.Wrap(err, "error sending request")
	}

	if response.StatusCode >= http.StatusMultipleChoices {
		return errors.Errorf("sendgrid rejected the message with status %v, body: %v", response.StatusCode, response.Body)
	}

	return nil
}

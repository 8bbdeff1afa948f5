package smtp

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/maxaizer/job-digest/internal/clients"
	"github.com/pkg/errors"
)

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type Client struct {
	host     string
	port     int
	username string
	password string
	from     string
	to       []string
	send     sendFunc
}

func NewClient(host string, port int, username, password, from string, to []string) *Client {
	return &Client{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		to:       to,
		send:     smtp.SendMail,
	}
}

func (c *Client) Send(ctx context.Context, subject, htmlBody string) error {
	if c.host == "" || c.port == 0 || c.username == "" || c.password == "" {
		return errors.Wrap(clients.ErrMissingCredentials, "smtp needs host, port, username and password")
	}
	if c.from == "" || len(c.to) == 0 {
		return errors.Wrap(clients.ErrMissingCredentials, "smtp needs a sender and recipients")
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	auth := smtp.PlainAuth("", c.username, c.password, c.host)
	addr := net.JoinHostPort(c.host, strconv.Itoa(c.port))

	err := c.send(addr, auth, c.from, c.to, buildMessage(c.from, c.to, subject, htmlBody))
	return errors.Wrapf(err, "failed to send mail via %s", addr)
}

func buildMessage(from string, to []string, subject, htmlBody string) []byte {
	var message bytes.Buffer

	headers := [][2]string{
		{"From", from},
		{"To", strings.Join(to, ", ")},
		{"Subject", mime.QEncoding.Encode("utf-8", subject)},
		{"MIME-Version", "1.0"},
		{"Content-Type", "text/html; charset=UTF-8"},
	}
	for _, header := range headers {
		message.WriteString(fmt.Sprintf("%s: %s\r\n", header[0], header[1]))
	}

	message.WriteString("\r\n")
	message.WriteString(htmlBody)
	return message.Bytes()
}

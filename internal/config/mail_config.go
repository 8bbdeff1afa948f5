package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type MailTransport string

const (
	TransportSendGrid MailTransport = "sendgrid"
	TransportSMTP     MailTransport = "smtp"
	TransportTelegram MailTransport = "telegram"
)

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type TelegramConfig struct {
	Token  string `mapstructure:"token"`
	ChatID int64  `mapstructure:"chat_id"`
}

type MailConfig struct {
	Transport      MailTransport  `mapstructure:"transport"`
	From           string         `mapstructure:"from"`
	To             []string       `mapstructure:"to"`
	SendGridAPIKey string         `mapstructure:"sendgrid_api_key"`
	SMTP           SMTPConfig     `mapstructure:"smtp"`
	Telegram       TelegramConfig `mapstructure:"telegram"`
}

func (config *MailConfig) setDefaults() {
	if config.Transport == "" {
		config.Transport = TransportSendGrid
	}
	if config.SMTP.Port == 0 {
		config.SMTP.Port = 587
	}
}

// validate checks the shape only, credentials are checked by the transport at send time.
func (config MailConfig) validate() error {
	switch config.Transport {
	case TransportSendGrid, TransportSMTP, TransportTelegram:
		return nil
	default:
		return fmt.Errorf("unknown mail transport: %v", config.Transport)
	}
}

func (config MailConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindEnv(v, [][2]string{
		{"mail.transport", "MAIL_TRANSPORT"},
		{"mail.from", "MAIL_FROM"},
		{"mail.to", "MAIL_TO"},
		{"mail.sendgrid_api_key", "SENDGRID_API_KEY"},
		{"mail.smtp.host", "SMTP_HOST"},
		{"mail.smtp.port", "SMTP_PORT"},
		{"mail.smtp.username", "SMTP_USERNAME"},
		{"mail.smtp.password", "SMTP_PASSWORD"},
		{"mail.telegram.token", "TELEGRAM_TOKEN"},
		{"mail.telegram.chat_id", "TELEGRAM_CHAT_ID"},
	})
}

package smtp

import (
	"fmt"
	"io"
	"mime"
	"net"
	"strings"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	SendEMail(from, to, message, subject string) error
}

type Config struct {
	User       string
	Password   string
	Host       string
	Port       string
	TLSEnabled bool
}

func NewInstance(cfg Config) Provider {
	return &impl{
		cfg:      cfg,
		sendMail: smtp.SendMail,
		sendTLS:  smtp.SendMailTLS,
	}
}

type sendFunc func(addr string, a sasl.Client, from string, to []string, r io.Reader) error

type impl struct {
	cfg      Config
	sendMail sendFunc
	sendTLS  sendFunc
}

func (i impl) configured() bool {
	return i.cfg.User != "" && i.cfg.Host != "" && i.cfg.Port != ""
}

func (i impl) SendEMail(from, to, message, subject string) error {
	logger := log.WithField("sender", from).WithField("recipient", to)
	if !i.configured() {
		logger.Warn("письмо не отправлено, тк не настроен smtp клиент")
		return nil
	}
	auth := sasl.NewPlainClient("", i.cfg.User, i.cfg.Password)
	body := strings.NewReader(buildMessage(i.cfg.User, from, to, subject, message))
	send := i.sendMail
	if i.cfg.TLSEnabled {
		send = i.sendTLS
	}
	if err := send(net.JoinHostPort(i.cfg.Host, i.cfg.Port), auth, i.cfg.User, []string{to}, body); err != nil {
		logger.WithError(err).Error("ошибка отправки сообщения")
		return err
	}
	logger.Info("письмо отправлено")
	return nil
}

// buildMessage письмо отправляется от имени учетной записи smtp, отправитель указывается в Reply-To
func buildMessage(account, from, to, subject, message string) string {
	headers := []string{
		"From: " + account,
		"To: " + to,
		"Subject: " + mime.QEncoding.Encode("utf-8", "Заявки на подбор - "+subject),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
	}
	if from != "" {
		headers = append(headers, "Reply-To: "+from)
	}
	return fmt.Sprintf("%s\r\n\r\n%s\r\n", strings.Join(headers, "\r\n"), strings.ReplaceAll(message, "\n", "\r\n"))
}

package sender

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"os"
	"path/filepath"
	"strings"
	texttemplate "text/template"

	"shop-service/config"

	gopkgmail "gopkg.in/gomail.v2"
)

type EmailNotification struct {
	To       string
	Subject  string
	Template string         // имя шаблона, например "password_reset"
	Data     map[string]any // данные для шаблона
}

type dialer interface {
	DialAndSend(m ...*gopkgmail.Message) error
}

type EmailSender struct {
	cfg    *config.NotifierConfig
	dialer dialer
}

func NewEmailSender(cfg *config.NotifierConfig) *EmailSender {
	d := gopkgmail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	d.SSL = cfg.SMTPSSL
	return &EmailSender{cfg: cfg, dialer: d}
}

func (s *EmailSender) SendEmail(n EmailNotification) error {
	m, err := s.buildMessage(n)
	if err != nil {
		return err
	}
	return s.dialer.DialAndSend(m)
}

func (s *EmailSender) buildMessage(n EmailNotification) (*gopkgmail.Message, error) {
	htmlBody, err := s.renderHTML(n.Template, n.Data)
	if err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	plainBody, err := s.renderPlain(n.Template, n.Data)
	if err != nil {
		return nil, fmt.Errorf("render plain: %w", err)
	}

	m := gopkgmail.NewMessage()
	m.SetHeader("From", s.cfg.SMTPFrom)
	m.SetHeader("To", n.To)
	m.SetHeader("Subject", n.Subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if strings.Contains(htmlBody, "cid:logo") {
		iconPath := filepath.Join(s.cfg.TMPLDir, "icon.png")
		if _, errStat := os.Stat(iconPath); errStat == nil {
			m.Embed(iconPath, gopkgmail.SetHeader(map[string][]string{"Content-ID": {"<logo>"}}))
		}
	}
	return m, nil
}

func (s *EmailSender) renderHTML(tmplName string, data map[string]any) (string, error) {
	content, err := s.readTemplate(tmplName, ".html")
	if err != nil {
		return "", err
	}
	tmpl, err := htmltemplate.New(tmplName).Parse(content)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// текстовую версию не экранируем, для неё html/template не нужен
func (s *EmailSender) renderPlain(tmplName string, data map[string]any) (string, error) {
	content, err := s.readTemplate(tmplName, ".txt")
	if err != nil {
		return "", err
	}
	tmpl, err := texttemplate.New(tmplName).Parse(content)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *EmailSender) readTemplate(name, ext string) (string, error) {
	// имя приходит из сообщения kafka, не даём выйти за каталог шаблонов
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return "", fmt.Errorf("invalid template name %q", name)
	}
	content, err := os.ReadFile(filepath.Join(s.cfg.TMPLDir, name+ext))
	if err != nil {
		return "", err
	}
	return string(content), nil
}

package sender

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"shop-service/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gopkgmail "gopkg.in/gomail.v2"
)

type fakeDialer struct {
	sent []*gopkgmail.Message
	err  error
}

func (d *fakeDialer) DialAndSend(m ...*gopkgmail.Message) error {
	if d.err != nil {
		return d.err
	}
	d.sent = append(d.sent, m...)
	return nil
}

func newTestSender(t *testing.T) (*EmailSender, *fakeDialer) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "password_reset.html"),
		[]byte(`<p>Здравствуйте, {{.Username}}! Код: <b>{{.Code}}</b></p>`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "password_reset.txt"),
		[]byte(`Код: {{.Code}}, действует {{.ExpiresIn}} минут`), 0o644))

	d := &fakeDialer{}
	s := &EmailSender{
		cfg:    &config.NotifierConfig{SMTPFrom: "shop@example.com", TMPLDir: dir},
		dialer: d,
	}
	return s, d
}

func TestEmailSender_RendersBothParts(t *testing.T) {
	s, d := newTestSender(t)

	err := s.SendEmail(EmailNotification{
		To:       "user@example.com",
		Subject:  "Сброс пароля",
		Template: "password_reset",
		Data:     map[string]any{"Username": "<anna>", "Code": "4821", "ExpiresIn": 15},
	})
	require.NoError(t, err)
	require.Len(t, d.sent, 1)

	m := d.sent[0]
	assert.Equal(t, []string{"user@example.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"shop@example.com"}, m.GetHeader("From"))

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)
	body := buf.String()
	assert.Contains(t, body, "4821")
	// html-часть экранирует данные
	assert.Contains(t, body, "&lt;anna&gt;")
}

func TestEmailSender_RenderPlain(t *testing.T) {
	s, _ := newTestSender(t)

	out, err := s.renderPlain("password_reset", map[string]any{"Code": "1111", "ExpiresIn": 15})
	require.NoError(t, err)
	assert.Equal(t, "Код: 1111, действует 15 минут", out)
}

func TestEmailSender_Errors(t *testing.T) {
	s, d := newTestSender(t)

	err := s.SendEmail(EmailNotification{To: "a@b.c", Template: "missing"})
	assert.Error(t, err)

	err = s.SendEmail(EmailNotification{To: "a@b.c", Template: "../password_reset"})
	assert.Error(t, err)
	assert.Empty(t, d.sent)

	d.err = errors.New("smtp down")
	err = s.SendEmail(EmailNotification{To: "a@b.c", Template: "password_reset", Data: map[string]any{}})
	assert.EqualError(t, err, "smtp down")
}

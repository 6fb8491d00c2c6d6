package email

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pastro-api/internal/application/ports"
	"github.com/jhoicas/pastro-api/pkg/config"
)

func TestSend_SinConfiguracionSeOmite(t *testing.T) {
	s := NewSMTPSender(config.SMTPConfig{Host: "smtp.example.com", Port: 587})
	res, err := s.Send(context.Background(), ports.Email{To: "a@x.com", Subject: "s", Text: "t"})
	require.NoError(t, err)
	assert.Equal(t, ports.Skipped, res)
}

func TestNewSMTPSender_TLSImplicitoEn465(t *testing.T) {
	s := NewSMTPSender(config.SMTPConfig{Host: "smtp.example.com", Port: 465, User: "u", Password: "p"})
	require.NotNil(t, s.dialer)
	assert.True(t, s.dialer.SSL)

	s = NewSMTPSender(config.SMTPConfig{Host: "smtp.example.com", Port: 587, User: "u", Password: "p"})
	assert.False(t, s.dialer.SSL)
	assert.Equal(t, "u", s.from())
}

func TestSend_ContextoVencido(t *testing.T) {
	s := NewSMTPSender(config.SMTPConfig{Host: "127.0.0.1", Port: 1, User: "u", Password: "p"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Send(ctx, ports.Email{To: "a@x.com"})
	assert.Error(t, err)
}

func TestBuildMessage(t *testing.T) {
	m := BuildMessage("Pastro <noreply@pastro.com>", ports.Email{
		To:      "owner@x.com",
		Subject: "Mirë se vini në Pastro",
		Text:    "Përshëndetje",
		HTML:    "<p>Përshëndetje</p>",
	})
	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)
	out := buf.String()

	assert.Contains(t, out, "To: owner@x.com")
	assert.Contains(t, out, "multipart/alternative")
	assert.Contains(t, out, "text/plain; charset=UTF-8")
	assert.Contains(t, out, "text/html; charset=UTF-8")
	assert.Contains(t, out, "=?UTF-8?")
}

func TestBuildMessage_ReplyTo(t *testing.T) {
	var buf bytes.Buffer
	_, err := BuildMessage("noreply@pastro.com", ports.Email{To: "owner@x.com", Subject: "s", Text: "t"}).WriteTo(&buf)
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "Reply-To:")

	buf.Reset()
	_, err = BuildMessage("noreply@pastro.com", ports.Email{To: "owner@x.com", ReplyTo: "klient@x.com", Subject: "s", Text: "t"}).WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Reply-To: klient@x.com")
}

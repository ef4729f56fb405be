package notify_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/jhoicas/clinic-stock-api/internal/infrastructure/notify"
	"github.com/jhoicas/clinic-stock-api/pkg/config"
)

type fakeSender struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m...)
	return nil
}

func TestSendEmail_ArmaMensaje(t *testing.T) {
	sender := &fakeSender{}
	n := notify.NewNotifierWithSender(sender, "alertas@clinica.org", "duena@clinica.org", zerolog.Nop())

	require.NoError(t, n.SendEmail(context.Background(), "ana@clinica.org", "Alerta de stock bajo: Amoxicilina", "Quedan 3"))

	require.Len(t, sender.sent, 1)
	m := sender.sent[0]
	assert.Equal(t, []string{"alertas@clinica.org"}, m.GetHeader("From"))
	assert.Equal(t, []string{"ana@clinica.org"}, m.GetHeader("To"))
	assert.Equal(t, []string{"Alerta de stock bajo: Amoxicilina"}, m.GetHeader("Subject"))
}

func TestSendEmail_ErrorDelSender(t *testing.T) {
	sender := &fakeSender{err: errors.New("smtp caído")}
	n := notify.NewNotifierWithSender(sender, "a@b.c", "", zerolog.Nop())

	err := n.SendEmail(context.Background(), "ana@clinica.org", "s", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp caído")
}

func TestSendEmail_ContextoCancelado(t *testing.T) {
	sender := &fakeSender{}
	n := notify.NewNotifierWithSender(sender, "a@b.c", "", zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, n.SendEmail(ctx, "ana@clinica.org", "s", "b"), context.Canceled)
	assert.Empty(t, sender.sent)
}

func TestNotifyOwner(t *testing.T) {
	sender := &fakeSender{}
	n := notify.NewNotifierWithSender(sender, "a@b.c", "duena@clinica.org", zerolog.Nop())

	require.NoError(t, n.NotifyOwner(context.Background(), "Sin stock: Insulina", "detalle"))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, []string{"duena@clinica.org"}, sender.sent[0].GetHeader("To"))
}

func TestSinSMTP_SoloLog(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewSMTPNotifier(config.SMTPConfig{}, "", zerolog.New(&buf))
	ctx := context.Background()

	require.NoError(t, n.SendEmail(ctx, "ana@clinica.org", "asunto", "cuerpo"))
	require.NoError(t, n.SendSMS(ctx, "+573001234567", "Amoxicilina bajo"))
	require.NoError(t, n.NotifyOwner(ctx, "titulo", "contenido"))

	out := buf.String()
	assert.Contains(t, out, "[EMAIL]")
	assert.Contains(t, out, `"to":"+573001234567"`)
	assert.Contains(t, out, "OWNER_EMAIL no configurado")
}

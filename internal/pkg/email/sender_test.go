package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSMTPSenderIsConfigured(t *testing.T) {
	assert.False(t, NewSMTPSender(Config{}).IsConfigured())
	assert.False(t, NewSMTPSender(Config{Host: "smtp.test"}).IsConfigured())
	assert.True(t, NewSMTPSender(Config{Host: "smtp.test", FromEmail: "no-reply@test"}).IsConfigured())
}

func TestSMTPSenderRequiresRecipient(t *testing.T) {
	sender := NewSMTPSender(Config{})

	err := sender.Send(&Email{Subject: "hello"})
	assert.Error(t, err)
}

func TestSMTPSenderDropsWhenUnconfigured(t *testing.T) {
	sender := NewSMTPSender(Config{})

	err := sender.Send(&Email{To: "user@test", Subject: "hello", HTMLBody: "<p>hi</p>"})
	assert.NoError(t, err)
}

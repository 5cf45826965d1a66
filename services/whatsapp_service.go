// services/whatsapp_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

var ErrMessagingDisabled = errors.New("whatsapp messaging is not configured")

// Messenger delivers a text message to a phone number.
type Messenger interface {
	Send(ctx context.Context, to, body string) (string, error)
}

type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// WhatsAppService sends messages through Twilio's WhatsApp channel, falling
// back to SMS for numbers that are not in E.164 form.
type WhatsAppService struct {
	api    messageCreator
	from   string
	logger *zap.Logger
}

func NewWhatsAppService(accountSID, authToken, from string, logger *zap.Logger) *WhatsAppService {
	if accountSID == "" || authToken == "" || from == "" {
		return &WhatsAppService{logger: logger}
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &WhatsAppService{api: client.Api, from: from, logger: logger}
}

// Enabled reports whether Twilio credentials were configured.
func (s *WhatsAppService) Enabled() bool {
	return s != nil && s.api != nil
}

// Send delivers body to the phone number to and returns the message SID.
func (s *WhatsAppService) Send(ctx context.Context, to, body string) (string, error) {
	if !s.Enabled() {
		return "", ErrMessagingDisabled
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetBody(body)
	if strings.HasPrefix(to, "+") {
		params.SetTo("whatsapp:" + to)
		params.SetFrom("whatsapp:" + s.from)
	} else {
		params.SetTo(to)
		params.SetFrom(s.from)
	}

	resp, err := s.api.CreateMessage(params)
	if err != nil {
		s.logger.Warn("message send failed", zap.String("to", to), zap.Error(err))
		return "", fmt.Errorf("send message: %w", err)
	}

	sid := ""
	if resp != nil && resp.Sid != nil {
		sid = *resp.Sid
	}
	s.logger.Info("message sent", zap.String("to", to), zap.String("sid", sid))
	return sid, nil
}

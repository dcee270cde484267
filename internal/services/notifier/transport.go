package notifier

import (
	"context"
	"fmt"

	awsclient "pbf-marketplace/internal/common/aws"
	"pbf-marketplace/internal/common/config"
	"pbf-marketplace/internal/models"
)

// Transport delivers one rendered message.
type Transport interface {
	Name() string
	Send(ctx context.Context, msg models.Message) error
}

// Verifier is implemented by transports that can check their credentials
// without sending anything.
type Verifier interface {
	Verify(ctx context.Context) error
}

// NewTransport builds the live transport named by cfg.Transport.
func NewTransport(ctx context.Context, cfg config.NotificationConfig, integrations config.IntegrationConfig) (Transport, error) {
	switch cfg.Transport {
	case "", config.TransportSMTP:
		smtpCfg := integrations.SMTP
		return NewSMTPTransport(SMTPConfig{
			Host:     smtpCfg.Host,
			Port:     smtpCfg.Port,
			Username: smtpCfg.Username,
			Password: smtpCfg.Password,
			UseTLS:   smtpCfg.UseTLS,
		}), nil

	case config.TransportSES:
		client, err := awsclient.NewSESClient(ctx, integrations.AWS.Region)
		if err != nil {
			return nil, err
		}
		return NewSESTransport(client), nil

	case config.TransportSNS:
		client, err := awsclient.NewSNSClient(ctx, integrations.AWS.Region)
		if err != nil {
			return nil, err
		}
		return NewSNSTransport(client, integrations.AWS.SNS.TopicARN), nil

	default:
		return nil, fmt.Errorf("unknown notification transport %q", cfg.Transport)
	}
}

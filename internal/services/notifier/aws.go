package notifier

import (
	"context"
	"errors"

	"pbf-marketplace/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// SESService is the part of the SES client the transport uses.
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SNSService is the part of the SNS client the transport uses.
type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type SESTransport struct {
	client SESService
}

func NewSESTransport(client SESService) *SESTransport {
	return &SESTransport{client: client}
}

func (t *SESTransport) Name() string { return "ses" }

func (t *SESTransport) Send(ctx context.Context, msg models.Message) error {
	_, err := t.client.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &sestypes.Destination{
			ToAddresses: []string{msg.To},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(msg.Subject)},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: aws.String(msg.Body)},
			},
		},
		Source: aws.String(msg.From),
	})
	return err
}

// SNSTransport publishes every message to one topic. Subscribers filter on
// the recipient attribute.
type SNSTransport struct {
	client   SNSService
	topicARN string
}

func NewSNSTransport(client SNSService, topicARN string) *SNSTransport {
	return &SNSTransport{client: client, topicARN: topicARN}
}

func (t *SNSTransport) Name() string { return "sns" }

// SNS rejects subjects longer than this.
const snsMaxSubject = 100

func (t *SNSTransport) Send(ctx context.Context, msg models.Message) error {
	if t.topicARN == "" {
		return errors.New("sns topic arn not configured")
	}

	subject := msg.Subject
	if r := []rune(subject); len(r) > snsMaxSubject {
		subject = string(r[:snsMaxSubject])
	}

	_, err := t.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(t.topicARN),
		Subject:  aws.String(subject),
		Message:  aws.String(msg.Body),
		MessageAttributes: map[string]snstypes.MessageAttributeValue{
			"recipient": {
				DataType:    aws.String("String"),
				StringValue: aws.String(msg.To),
			},
			"notification_id": {
				DataType:    aws.String("String"),
				StringValue: aws.String(msg.ID),
			},
		},
	})
	return err
}

// Package notify delivers saved-search alerts through SES email and SNS SMS.
package notify

import (
	"context"
	"fmt"

	"matchengine/internal/common/config"
	"matchengine/internal/common/errors"
	"matchengine/internal/common/logger"
	"matchengine/internal/common/metrics"
	"matchengine/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// Notifier sends one notification to its recipient, attempting every enabled
// channel before returning.
type Notifier interface {
	Send(ctx context.Context, n models.Notification) error
}

// Define interfaces for mocking
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// Sender delivers notifications over email and optionally SMS. Email is the
// primary channel; SMS is sent best-effort when a phone number is configured
// on the recipient lookup.
type Sender struct {
	config    *config.NotificationConfig
	logger    logger.Logger
	sesClient SESService
	snsClient SNSService
}

func NewSender(ctx context.Context, cfg *config.NotificationConfig, log logger.Logger) (*Sender, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return &Sender{
		config:    cfg,
		logger:    log.WithFields(map[string]interface{}{"component": "notifier"}),
		sesClient: ses.NewFromConfig(awsCfg),
		snsClient: sns.NewFromConfig(awsCfg),
	}, nil
}

// NewSenderWithClients wires explicit SES/SNS clients. Used by tests.
func NewSenderWithClients(cfg *config.NotificationConfig, log logger.Logger, sesClient SESService, snsClient SNSService) *Sender {
	return &Sender{
		config:    cfg,
		logger:    log.WithFields(map[string]interface{}{"component": "notifier"}),
		sesClient: sesClient,
		snsClient: snsClient,
	}
}

// Send delivers over email and, when the recipient has a phone number, over
// SMS as well. The email outcome decides the returned error; SMS failures are
// logged and never surface.
func (s *Sender) Send(ctx context.Context, n models.Notification) error {
	emailErr := s.sendEmailChannel(ctx, n)

	if n.RecipientPhone != "" {
		if err := s.SendSMS(ctx, n.RecipientPhone, n.Subject); err != nil {
			s.logger.Warn("sms send failed", map[string]interface{}{
				"error":       err,
				"recipientId": n.RecipientID,
			})
		}
	}

	return emailErr
}

func (s *Sender) sendEmailChannel(ctx context.Context, n models.Notification) error {
	if !s.config.Email.Enabled {
		s.logger.Debug("email channel disabled, dropping notification", map[string]interface{}{
			"recipientId": n.RecipientID,
		})
		metrics.NotificationsSent.WithLabelValues("email", "disabled").Inc()
		return nil
	}

	if n.RecipientEmail == "" {
		metrics.NotificationsSent.WithLabelValues("email", "skipped").Inc()
		return errors.NewNotificationSendFailedError(fmt.Errorf("recipient %s has no email address", n.RecipientID))
	}

	if err := s.sendEmail(ctx, n.RecipientEmail, n.Subject, n.Body); err != nil {
		s.logger.Error("email send failed", map[string]interface{}{
			"error":       err,
			"recipientId": n.RecipientID,
		})
		metrics.NotificationsSent.WithLabelValues("email", "failed").Inc()
		return errors.NewNotificationSendFailedError(err)
	}

	metrics.NotificationsSent.WithLabelValues("email", "sent").Inc()
	return nil
}

// SendSMS publishes a short text alert to a phone number. A no-op unless the
// SMS channel is enabled; failures never affect the email channel.
func (s *Sender) SendSMS(ctx context.Context, phone, message string) error {
	if !s.config.SMS.Enabled || phone == "" {
		metrics.NotificationsSent.WithLabelValues("sms", "disabled").Inc()
		return nil
	}

	_, err := s.snsClient.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(phone),
		Message:     aws.String(message),
	})
	if err != nil {
		metrics.NotificationsSent.WithLabelValues("sms", "failed").Inc()
		return errors.NewNotificationSendFailedError(err)
	}
	metrics.NotificationsSent.WithLabelValues("sms", "sent").Inc()
	return nil
}

func (s *Sender) sendEmail(ctx context.Context, to, subject, body string) error {
	_, err := s.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(s.config.Email.FromEmail),
	})
	return err
}

// internal/notify/notifier.go
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"chatnil/internal/common/config"
	"chatnil/internal/common/logger"
	"chatnil/internal/common/metrics"
	"chatnil/internal/models"
	"chatnil/internal/store"
)

// ==========================
// Channel Status
// ==========================

const (
	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"

	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

// Define interfaces for mocking
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// Notifier delivers decision notifications over email and SMS. Every
// send is best effort: failures are logged and recorded, never
// propagated to the caller, so a notification outage cannot block a
// scoring or override flow.
type Notifier struct {
	cfg       config.NotificationConfig
	sesClient SESService
	snsClient SNSService
	records   *store.NotificationStore
	logger    logger.Logger
}

func NewNotifier(cfg config.NotificationConfig, sesClient SESService, snsClient SNSService, records *store.NotificationStore, log logger.Logger) *Notifier {
	return &Notifier{
		cfg:       cfg,
		sesClient: sesClient,
		snsClient: snsClient,
		records:   records,
		logger:    log.WithFields(map[string]interface{}{"component": "notify"}),
	}
}

// ScoreReady tells the athlete their deal has been scored. Red
// decisions additionally go out over SMS because they block the deal.
func (n *Notifier) ScoreReady(ctx context.Context, athlete *models.AthleteProfile, deal *models.Deal, score *models.ComplianceScore) {
	data := map[string]interface{}{
		"brandName":  deal.BrandName,
		"dealType":   deal.DealType,
		"totalScore": fmt.Sprintf("%.1f", score.TotalScore),
		"status":     score.Status,
		"dealId":     deal.ID,
	}
	urgent := score.Status == models.StatusRed
	n.deliver(ctx, athlete, TypeScoreReady, data, urgent)
}

// ScoreOverridden tells the athlete an officer changed the decision.
func (n *Notifier) ScoreOverridden(ctx context.Context, athlete *models.AthleteProfile, deal *models.Deal, override *models.ScoreOverride) {
	data := map[string]interface{}{
		"brandName": deal.BrandName,
		"dealType":  deal.DealType,
		"status":    override.ToStatus,
		"dealId":    deal.ID,
	}
	n.deliver(ctx, athlete, TypeScoreOverridden, data, true)
}

// FMVUpdated tells the athlete their valuation was recalculated.
func (n *Notifier) FMVUpdated(ctx context.Context, athlete *models.AthleteProfile, estimate *models.FMVEstimate) {
	data := map[string]interface{}{
		"tier":      estimate.Tier,
		"fmvFactor": fmt.Sprintf("%.0f", estimate.Factor),
	}
	n.deliver(ctx, athlete, TypeFMVUpdated, data, false)
}

func (n *Notifier) deliver(ctx context.Context, athlete *models.AthleteProfile, notificationType string, data map[string]interface{}, urgent bool) {
	template, exists := templates[notificationType]
	if !exists {
		n.logger.Error("unknown notification type", map[string]interface{}{
			"type": notificationType,
		})
		return
	}

	subject := renderTemplate(template["subject"], data)
	body := renderTemplate(template["body"], data)

	if n.cfg.Email.Enabled && athlete.Email != "" {
		status := StatusSent
		if err := n.sendEmail(ctx, athlete.Email, subject, body); err != nil {
			status = StatusFailed
			n.logger.Error("email send failed", map[string]interface{}{
				"athleteId": athlete.ID,
				"type":      notificationType,
				"error":     err.Error(),
			})
		}
		metrics.NotificationsSent.WithLabelValues(ChannelEmail, status).Inc()
		n.record(ctx, athlete.ID, notificationType, ChannelEmail, status, data)
	}

	if n.cfg.SMS.Enabled && athlete.Phone != "" && urgent {
		status := StatusSent
		if err := n.sendSMS(ctx, athlete.Phone, body); err != nil {
			status = StatusFailed
			n.logger.Error("SMS send failed", map[string]interface{}{
				"athleteId": athlete.ID,
				"type":      notificationType,
				"error":     err.Error(),
			})
		}
		metrics.NotificationsSent.WithLabelValues(ChannelSMS, status).Inc()
		n.record(ctx, athlete.ID, notificationType, ChannelSMS, status, data)
	}
}

func (n *Notifier) sendEmail(ctx context.Context, to, subject, body string) error {
	_, err := n.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
				Html: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(n.cfg.Email.FromEmail),
	})
	return err
}

func (n *Notifier) sendSMS(ctx context.Context, to, message string) error {
	_, err := n.snsClient.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(to),
		Message:     aws.String(message),
	})
	return err
}

func (n *Notifier) record(ctx context.Context, athleteID, notificationType, channel, status string, payload map[string]interface{}) {
	if n.records == nil {
		return
	}
	notification := &models.Notification{
		RecipientID:   athleteID,
		RecipientType: "athlete",
		Type:          notificationType,
		Channel:       channel,
		Status:        status,
		Payload:       payload,
	}
	if status == StatusSent {
		notification.SentAt = time.Now().UTC()
	}
	n.records.Record(ctx, notification)
}

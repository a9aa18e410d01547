// internal/notify/notifier_test.go
package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatnil/internal/common/config"
	"chatnil/internal/common/logger"
	"chatnil/internal/models"
)

// ==========================
// Mock Services
// ==========================

type MockSESService struct {
	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

func (m *MockSESService) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	return m.SendEmailFunc(ctx, params, optFns...)
}

type MockSNSService struct {
	PublishFunc func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

func (m *MockSNSService) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	return m.PublishFunc(ctx, params, optFns...)
}

// ==========================
// Test Helper Functions
// ==========================

func createNotifyConfig() config.NotificationConfig {
	var cfg config.NotificationConfig
	cfg.Email.Enabled = true
	cfg.Email.FromEmail = "compliance@chatnil.example.com"
	cfg.SMS.Enabled = true
	return cfg
}

func createNotifyAthlete() *models.AthleteProfile {
	return &models.AthleteProfile{
		ID:        "athlete-1",
		FirstName: "Jordan",
		LastName:  "Avery",
		Email:     "jordan@example.com",
		Phone:     "+15125550123",
	}
}

func createScoredDeal() *models.Deal {
	return &models.Deal{
		ID:        "deal-1",
		BrandName: "Local Cards",
		DealType:  models.DealTypeAutograph,
	}
}

// ==========================
// Delivery Tests
// ==========================

func TestNotifier_ScoreReady_GreenSendsEmailOnly(t *testing.T) {
	var emailSent, smsSent bool
	sesMock := &MockSESService{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			emailSent = true
			assert.Equal(t, []string{"jordan@example.com"}, params.Destination.ToAddresses)
			assert.Contains(t, *params.Message.Subject.Data, "Local Cards")
			assert.Contains(t, *params.Message.Body.Text.Data, "green")
			return &ses.SendEmailOutput{}, nil
		},
	}
	snsMock := &MockSNSService{
		PublishFunc: func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
			smsSent = true
			return &sns.PublishOutput{}, nil
		},
	}

	notifier := NewNotifier(createNotifyConfig(), sesMock, snsMock, nil, logger.NewTestLogger(t))
	notifier.ScoreReady(context.Background(), createNotifyAthlete(), createScoredDeal(), &models.ComplianceScore{
		TotalScore: 92.5,
		Status:     models.StatusGreen,
	})

	assert.True(t, emailSent)
	assert.False(t, smsSent, "green decisions are not urgent")
}

func TestNotifier_ScoreReady_RedAlsoSendsSMS(t *testing.T) {
	var smsSent bool
	sesMock := &MockSESService{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			return &ses.SendEmailOutput{}, nil
		},
	}
	snsMock := &MockSNSService{
		PublishFunc: func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
			smsSent = true
			require.NotNil(t, params.PhoneNumber)
			assert.Equal(t, "+15125550123", *params.PhoneNumber)
			return &sns.PublishOutput{}, nil
		},
	}

	notifier := NewNotifier(createNotifyConfig(), sesMock, snsMock, nil, logger.NewTestLogger(t))
	notifier.ScoreReady(context.Background(), createNotifyAthlete(), createScoredDeal(), &models.ComplianceScore{
		TotalScore: 30,
		Status:     models.StatusRed,
	})

	assert.True(t, smsSent)
}

func TestNotifier_ScoreOverridden_AlwaysUrgent(t *testing.T) {
	var smsSent bool
	sesMock := &MockSESService{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			assert.Contains(t, *params.Message.Body.Text.Data, "yellow")
			return &ses.SendEmailOutput{}, nil
		},
	}
	snsMock := &MockSNSService{
		PublishFunc: func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
			smsSent = true
			return &sns.PublishOutput{}, nil
		},
	}

	notifier := NewNotifier(createNotifyConfig(), sesMock, snsMock, nil, logger.NewTestLogger(t))
	notifier.ScoreOverridden(context.Background(), createNotifyAthlete(), createScoredDeal(), &models.ScoreOverride{
		ToStatus: models.StatusYellow,
	})

	assert.True(t, smsSent)
}

func TestNotifier_SendFailureDoesNotPanic(t *testing.T) {
	sesMock := &MockSESService{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			return nil, errors.New("ses unavailable")
		},
	}
	snsMock := &MockSNSService{
		PublishFunc: func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
			return nil, errors.New("sns unavailable")
		},
	}

	notifier := NewNotifier(createNotifyConfig(), sesMock, snsMock, nil, logger.NewTestLogger(t))
	notifier.ScoreReady(context.Background(), createNotifyAthlete(), createScoredDeal(), &models.ComplianceScore{
		Status: models.StatusRed,
	})
}

func TestNotifier_ChannelsDisabled(t *testing.T) {
	var cfg config.NotificationConfig

	sesMock := &MockSESService{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			t.Fatal("email must not be sent when disabled")
			return nil, nil
		},
	}
	snsMock := &MockSNSService{
		PublishFunc: func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
			t.Fatal("SMS must not be sent when disabled")
			return nil, nil
		},
	}

	notifier := NewNotifier(cfg, sesMock, snsMock, nil, logger.NewTestLogger(t))
	notifier.FMVUpdated(context.Background(), createNotifyAthlete(), &models.FMVEstimate{
		Tier:   models.TierHigh,
		Factor: 85,
	})
}

// ==========================
// Template Tests
// ==========================

func TestRenderTemplate(t *testing.T) {
	out := renderTemplate("Deal {{dealId}} scored {{totalScore}} and {{missing}} is gone", map[string]interface{}{
		"dealId":     "deal-1",
		"totalScore": "92.5",
	})
	assert.Equal(t, "Deal deal-1 scored 92.5 and  is gone", out)
}

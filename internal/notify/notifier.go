// internal/notify/notifier.go
package notify

import (
	"context"
	"fmt"

	"credit-risk-service/internal/common/config"
	stderrors "credit-risk-service/internal/common/errors"
	"credit-risk-service/internal/common/logger"
	"credit-risk-service/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// Define interfaces for mocking
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// RiskNotifier alerts analysts when an assessment lands in the high tier.
// Each configured channel is attempted independently; one channel failing
// does not stop the other.
type RiskNotifier struct {
	cfg       config.NotificationConfig
	logger    logger.Logger
	sesClient SESService
	snsClient SNSService
}

func NewRiskNotifier(cfg config.NotificationConfig, sesClient SESService, snsClient SNSService, log logger.Logger) *RiskNotifier {
	return &RiskNotifier{
		cfg:       cfg,
		logger:    log.WithFields(map[string]interface{}{"component": "risk-notifier"}),
		sesClient: sesClient,
		snsClient: snsClient,
	}
}

// NotifyCompanyHighRisk sends a high-risk alert for a company assessment.
func (n *RiskNotifier) NotifyCompanyHighRisk(ctx context.Context, rec *models.CompanyAssessment) error {
	subject := fmt.Sprintf("High risk assessment: %s", rec.CompanyName)
	body := fmt.Sprintf(
		"Company %s was assessed as high risk on %s.\n\nAltman Z-score: %.4f (%s)\nTaffler T-score: %.4f (%s)\nCombined: %s\n\n%s",
		rec.CompanyName, rec.AssessmentDate.Format("2006-01-02"),
		rec.AltmanZScore, rec.AltmanRiskLevel,
		rec.TafflerZScore, rec.TafflerRiskLevel,
		rec.CombinedRiskLevel, rec.CombinedRecommendation,
	)
	return n.dispatch(ctx, subject, body)
}

// NotifyIndividualHighRisk sends a high-risk alert for an individual assessment.
func (n *RiskNotifier) NotifyIndividualHighRisk(ctx context.Context, rec *models.IndividualAssessment) error {
	subject := fmt.Sprintf("High risk assessment: %s", rec.FullName)
	body := fmt.Sprintf(
		"Individual %s was assessed as high risk on %s.\n\nCredit score: %.2f (%s)\n\n%s",
		rec.FullName, rec.AssessmentDate.Format("2006-01-02"),
		rec.CreditScore, rec.RiskLevel, rec.Recommendation,
	)
	return n.dispatch(ctx, subject, body)
}

func (n *RiskNotifier) dispatch(ctx context.Context, subject, body string) error {
	var lastErr error

	if n.cfg.AWS.SES.Enabled && n.sesClient != nil {
		if err := n.sendEmail(ctx, subject, body); err != nil {
			n.logger.Error("email alert failed", map[string]interface{}{"error": err})
			lastErr = stderrors.NewNotificationSendFailedError("email", err)
		}
	}

	if n.cfg.AWS.SNS.Enabled && n.snsClient != nil {
		if err := n.publishTopic(ctx, subject, body); err != nil {
			n.logger.Error("SNS alert failed", map[string]interface{}{"error": err})
			lastErr = stderrors.NewNotificationSendFailedError("sns", err)
		}
	}

	return lastErr
}

func (n *RiskNotifier) sendEmail(ctx context.Context, subject, body string) error {
	_, err := n.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: n.cfg.AWS.SES.ToEmails,
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(n.cfg.AWS.SES.FromEmail),
	})
	return err
}

func (n *RiskNotifier) publishTopic(ctx context.Context, subject, body string) error {
	_, err := n.snsClient.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(n.cfg.AWS.SNS.TopicARN),
		Subject:  aws.String(subject),
		Message:  aws.String(body),
	})
	return err
}

package sns

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/pr1me-admin/internal/config"
	"github.com/pr1me-admin/internal/infrastructure/awscfg"
)

// LoginAlert describes a completed admin sign-in.
type LoginAlert struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	SessionID string    `json:"session_id"`
	At        time.Time `json:"at"`
}

// Notifier publishes admin login alerts to an SNS topic.
type Notifier interface {
	NotifyLogin(ctx context.Context, a LoginAlert) error
}

type publisher interface {
	Publish(ctx context.Context, in *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type notifier struct {
	client   publisher
	topicARN string
}

// NewNotifier returns a topic publisher, or nil when no topic is configured.
func NewNotifier(cfg *config.Config) (Notifier, error) {
	if cfg.SNSLoginAlertTopicARN == "" {
		return nil, nil
	}
	awsCfg, err := awscfg.Load(context.Background(), cfg, cfg.SNSRegion)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	endpoint := awscfg.Endpoint(cfg)
	client := sns.NewFromConfig(awsCfg, func(o *sns.Options) {
		if endpoint != nil {
			o.BaseEndpoint = endpoint
		}
	})
	return &notifier{client: client, topicARN: cfg.SNSLoginAlertTopicARN}, nil
}

func (n *notifier) NotifyLogin(ctx context.Context, a LoginAlert) error {
	in, err := loginAlertInput(n.topicARN, a)
	if err != nil {
		return err
	}
	_, err = n.client.Publish(ctx, in)
	return err
}

func loginAlertInput(topicARN string, a LoginAlert) (*sns.PublishInput, error) {
	msg, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("marshal login alert: %w", err)
	}
	return &sns.PublishInput{
		TopicArn: aws.String(topicARN),
		Subject:  aws.String("Admin login"),
		Message:  aws.String(string(msg)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"event": {DataType: aws.String("String"), StringValue: aws.String("admin.login")},
			"role":  {DataType: aws.String("String"), StringValue: aws.String(a.Role)},
		},
	}, nil
}

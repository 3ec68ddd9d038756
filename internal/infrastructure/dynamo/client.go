package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/pr1me-admin/internal/config"
	"github.com/pr1me-admin/internal/infrastructure/awscfg"
)

// NewClient creates the DynamoDB client both binaries share. With
// AWS_ENDPOINT_URL set, all traffic goes to that endpoint (LocalStack).
func NewClient(ctx context.Context, cfg *config.Config) (*dynamodb.Client, error) {
	awsCfg, err := awscfg.Load(ctx, cfg, cfg.AWSRegion)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	endpoint := awscfg.Endpoint(cfg)
	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if endpoint != nil {
			o.BaseEndpoint = endpoint
		}
	}), nil
}

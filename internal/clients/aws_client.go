package clients

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	awsCfg   aws.Config
	awsErr   error
	awsOnce  sync.Once
	endpoint string
)

// GetAWSConfig loads the shared AWS config once per process. A non-empty
// awsEndpoint points every client at a local emulator.
func GetAWSConfig(ctx context.Context, region, awsEndpoint string) (aws.Config, error) {
	awsOnce.Do(func() {
		slog.Info("[AWSClient] Initializing AWS Config...",
			slog.String("region", region))
		cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
		if err != nil {
			awsErr = fmt.Errorf("[AWSClient] Failed to load AWS config: %w", err)
			return
		}

		awsCfg = cfg
		endpoint = awsEndpoint
		slog.Info("[AWSClient] AWS Config Initialized")
	})

	return awsCfg, awsErr
}

func GetDynamoDBClient(ctx context.Context, region, awsEndpoint string) (*dynamodb.Client, error) {
	cfg, err := GetAWSConfig(ctx, region, awsEndpoint)
	if err != nil {
		return nil, err
	}
	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	}), nil
}

func GetS3Client(ctx context.Context, region, awsEndpoint string) (*s3.Client, error) {
	cfg, err := GetAWSConfig(ctx, region, awsEndpoint)
	if err != nil {
		return nil, err
	}
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

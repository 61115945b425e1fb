package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
)

type ssmClient struct {
	api *ssm.Client
}

// NewSSM builds a Client over AWS Systems Manager Parameter Store. Region and
// profile may be empty; the default credential chain applies.
func NewSSM(ctx context.Context, region, profile string) (Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	if profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(profile))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("ssm: load aws config: %w", err)
	}
	return &ssmClient{api: ssm.NewFromConfig(cfg)}, nil
}

func (c *ssmClient) Publish(ctx context.Context, path, value string) error {
	_, err := c.api.PutParameter(ctx, &ssm.PutParameterInput{
		Name:      aws.String(path),
		Value:     aws.String(value),
		Type:      ssmtypes.ParameterTypeString,
		Overwrite: aws.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("ssm: put %s: %w", path, err)
	}
	return nil
}

func (c *ssmClient) Lookup(ctx context.Context, path string) (string, error) {
	out, err := c.api.GetParameter(ctx, &ssm.GetParameterInput{Name: aws.String(path)})
	if err != nil {
		var nf *ssmtypes.ParameterNotFound
		if errors.As(err, &nf) {
			return "", &NotFoundError{Path: path, Cause: ErrNotPublished}
		}
		return "", fmt.Errorf("ssm: get %s: %w", path, err)
	}
	if out.Parameter == nil || out.Parameter.Value == nil {
		return "", &NotFoundError{Path: path, Cause: ErrNotPublished}
	}
	return *out.Parameter.Value, nil
}

func (c *ssmClient) Close() error { return nil }

package stacks

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/plattolabs/stackforge/internal/errs"
	"github.com/plattolabs/stackforge/internal/naming"
)

// WebProps configures one static-site bucket per hosted brand.
type WebProps struct {
	Base
	Brands []string
}

// Web exposes the buckets. The CDN stack lives in another region and refers
// to them by their deterministic names, so the handle here mostly serves
// same-region grants and tests.
type Web struct {
	Stack
	Buckets map[string]awss3.Bucket
}

// WebBucketName is the deterministic physical bucket name for a hosted
// brand's static site. The CDN builder rebuilds the same name from the same
// naming context rather than taking a handle across regions.
func WebBucketName(ctx naming.Context, brand string) string {
	return ctx.ResourceName("web", brand)
}

func BuildWeb(scope constructs.Construct, p WebProps) (*Web, error) {
	if len(p.Brands) == 0 {
		return nil, errs.NewConfiguration("web.brands", "at least one hosted brand is required")
	}
	stack := newStack(scope, p.Base)
	buckets := make(map[string]awss3.Bucket, len(p.Brands))
	for _, brand := range p.Brands {
		buckets[brand] = awss3.NewBucket(stack, jsii.String("Site-"+brand), &awss3.BucketProps{
			BucketName:        jsii.String(WebBucketName(p.Ctx, brand)),
			BlockPublicAccess: awss3.BlockPublicAccess_BLOCK_ALL(),
			Encryption:        awss3.BucketEncryption_S3_MANAGED,
			RemovalPolicy:     awscdk.RemovalPolicy_RETAIN,
		})
	}
	return &Web{Stack: Stack{Cdk: stack}, Buckets: buckets}, nil
}

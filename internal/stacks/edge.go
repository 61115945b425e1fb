package stacks

import (
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudfront"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudfrontorigins"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/plattolabs/stackforge/internal/errs"
	"github.com/plattolabs/stackforge/internal/linkage"
)

// CdnSite is one hosted brand's distribution input. The bucket is referenced
// by name and region because it lives in the environment region while this
// stack is pinned to the certificate region.
type CdnSite struct {
	Brand        string
	Hostname     string
	BucketName   string
	BucketRegion string
}

// CdnProps configures one distribution per hosted brand.
type CdnProps struct {
	Base
	Sites []CdnSite
	Cert  *Cert
}

// Cdn exposes distributions by brand and publishes their domain attributes
// for the records unit, which runs in the zone-owning account.
type Cdn struct {
	Stack
	Distributions map[string]awscloudfront.Distribution
}

func BuildCdn(scope constructs.Construct, p CdnProps) (*Cdn, error) {
	if len(p.Sites) == 0 {
		return nil, errs.NewConfiguration("cdn.sites", "at least one hosted brand is required")
	}
	if p.Cert == nil {
		return nil, errs.NewConfiguration("cdn.cert", "certificate handle is required")
	}
	stack := newStack(scope, p.Base)
	dists := make(map[string]awscloudfront.Distribution, len(p.Sites))
	for _, site := range p.Sites {
		bucket := awss3.Bucket_FromBucketAttributes(stack, jsii.String("Site-"+site.Brand), &awss3.BucketAttributes{
			BucketName: jsii.String(site.BucketName),
			Region:     jsii.String(site.BucketRegion),
		})
		oai := awscloudfront.NewOriginAccessIdentity(stack, jsii.String("Oai-"+site.Brand), &awscloudfront.OriginAccessIdentityProps{
			Comment: jsii.String(site.Hostname),
		})
		dist := awscloudfront.NewDistribution(stack, jsii.String("Dist-"+site.Brand), &awscloudfront.DistributionProps{
			DefaultBehavior: &awscloudfront.BehaviorOptions{
				Origin: awscloudfrontorigins.NewS3Origin(bucket, &awscloudfrontorigins.S3OriginProps{
					OriginAccessIdentity: oai,
				}),
				ViewerProtocolPolicy: awscloudfront.ViewerProtocolPolicy_REDIRECT_TO_HTTPS,
			},
			DomainNames:       jsii.Strings(site.Hostname),
			Certificate:       p.Cert.Certificate,
			DefaultRootObject: jsii.String("index.html"),
		})
		dists[site.Brand] = dist

		publishParam(stack, "CdnDomain-"+site.Brand,
			p.Ctx.BrandParameterPath(linkage.NamespacePlatform, linkage.ServiceCDN, site.Brand, linkage.AttrDomain),
			dist.DistributionDomainName())
		publishParam(stack, "CdnId-"+site.Brand,
			p.Ctx.BrandParameterPath(linkage.NamespacePlatform, linkage.ServiceCDN, site.Brand, linkage.AttrDistributionID),
			dist.DistributionId())
	}
	return &Cdn{Stack: Stack{Cdk: stack}, Distributions: dists}, nil
}

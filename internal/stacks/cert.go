package stacks

import (
	"github.com/aws/aws-cdk-go/awscdk/v2/awscertificatemanager"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsroute53"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/plattolabs/stackforge/internal/errs"
	"github.com/plattolabs/stackforge/internal/linkage"
)

// CertProps configures the edge certificate. The stack is pinned to the
// certificate region, never the environment region, because the CDN only
// accepts certificates from there. ZoneID and ZoneName arrive as resolved
// strings since the zone usually lives in another account.
type CertProps struct {
	Base
	ZoneID   string
	ZoneName string
	Domains  []string
}

// Cert exposes the certificate for same-pass CDN consumption and publishes
// its ARN for everyone else.
type Cert struct {
	Stack
	Certificate awscertificatemanager.Certificate
}

func BuildCert(scope constructs.Construct, p CertProps) (*Cert, error) {
	if len(p.Domains) == 0 {
		return nil, errs.NewConfiguration("cert.domains", "at least one domain is required")
	}
	if p.ZoneID == "" || p.ZoneName == "" {
		return nil, errs.NewConfiguration("cert.zone", "zone-id and zone-name must be resolved")
	}
	stack := newStack(scope, p.Base)
	zone := awsroute53.HostedZone_FromHostedZoneAttributes(stack, jsii.String("Zone"), &awsroute53.HostedZoneAttributes{
		HostedZoneId: jsii.String(p.ZoneID),
		ZoneName:     jsii.String(p.ZoneName),
	})

	props := &awscertificatemanager.CertificateProps{
		DomainName: jsii.String(p.Domains[0]),
		Validation: awscertificatemanager.CertificateValidation_FromDns(zone),
	}
	if len(p.Domains) > 1 {
		props.SubjectAlternativeNames = jsii.Strings(p.Domains[1:]...)
	}
	cert := awscertificatemanager.NewCertificate(stack, jsii.String("Certificate"), props)

	publishParam(stack, "CertArn",
		p.Ctx.ParameterPath(linkage.NamespacePlatform, linkage.ServiceCert, linkage.AttrArn),
		cert.CertificateArn())

	return &Cert{Stack: Stack{Cdk: stack}, Certificate: cert}, nil
}

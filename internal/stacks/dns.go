package stacks

import (
	"github.com/aws/aws-cdk-go/awscdk/v2/awsroute53"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/plattolabs/stackforge/internal/errs"
	"github.com/plattolabs/stackforge/internal/linkage"
)

// DNSProps configures the root public zone at the primary target.
type DNSProps struct {
	Base
	Root string
}

// DNS exposes the zone for same-pass consumers; every other consumer goes
// through the published zone-id and zone-name paths.
type DNS struct {
	Stack
	Zone awsroute53.PublicHostedZone
}

func BuildDNS(scope constructs.Construct, p DNSProps) (*DNS, error) {
	if p.Root == "" {
		return nil, errs.NewConfiguration("domains.root", "must not be blank")
	}
	stack := newStack(scope, p.Base)
	zone := awsroute53.NewPublicHostedZone(stack, jsii.String("Zone"), &awsroute53.PublicHostedZoneProps{
		ZoneName: jsii.String(p.Root),
	})

	publishParam(stack, "ZoneId",
		p.Ctx.ParameterPath(linkage.NamespacePlatform, linkage.ServiceDNS, linkage.AttrZoneID),
		zone.HostedZoneId())
	publishParam(stack, "ZoneName",
		p.Ctx.ParameterPath(linkage.NamespacePlatform, linkage.ServiceDNS, linkage.AttrZoneName),
		zone.ZoneName())

	return &DNS{Stack: Stack{Cdk: stack}, Zone: zone}, nil
}

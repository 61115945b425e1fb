package stacks

import (
	"github.com/aws/aws-cdk-go/awscdk/v2/awscertificatemanager"
	"github.com/aws/aws-cdk-go/awscdk/v2/awselasticloadbalancingv2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsroute53"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/plattolabs/stackforge/internal/errs"
)

// WiringRule binds one brand's API hostname to its target group.
type WiringRule struct {
	Brand    string
	Hostname string
}

// WiringProps configures the unit that joins the load balancer to the
// per-brand routing: a regional certificate, the HTTPS listener, and one
// host-header rule per brand. Keeping this apart from cluster and routing is
// what lets those two units exist without each other.
type WiringProps struct {
	Base
	ZoneID   string
	ZoneName string
	Rules    []WiringRule
	Cluster  *Cluster
	Routing  *Routing
}

// Wiring exposes the HTTPS listener.
type Wiring struct {
	Stack
	Listener awselasticloadbalancingv2.ApplicationListener
}

func BuildWiring(scope constructs.Construct, p WiringProps) (*Wiring, error) {
	if p.Cluster == nil || p.Routing == nil {
		return nil, errs.NewConfiguration("wiring", "cluster and routing handles are required")
	}
	if len(p.Rules) == 0 {
		return nil, errs.NewConfiguration("wiring.rules", "at least one rule is required")
	}
	if p.ZoneID == "" || p.ZoneName == "" {
		return nil, errs.NewConfiguration("wiring.zone", "zone-id and zone-name must be resolved")
	}
	stack := newStack(scope, p.Base)
	zone := awsroute53.HostedZone_FromHostedZoneAttributes(stack, jsii.String("Zone"), &awsroute53.HostedZoneAttributes{
		HostedZoneId: jsii.String(p.ZoneID),
		ZoneName:     jsii.String(p.ZoneName),
	})

	// The edge certificate lives in the cdn region and cannot serve the
	// listener, so the wiring unit requests its own regional one.
	domains := make([]string, 0, len(p.Rules))
	for _, r := range p.Rules {
		domains = append(domains, r.Hostname)
	}
	certProps := &awscertificatemanager.CertificateProps{
		DomainName: jsii.String(domains[0]),
		Validation: awscertificatemanager.CertificateValidation_FromDns(zone),
	}
	if len(domains) > 1 {
		certProps.SubjectAlternativeNames = jsii.Strings(domains[1:]...)
	}
	cert := awscertificatemanager.NewCertificate(stack, jsii.String("RegionalCert"), certProps)

	// The listener construct must be scoped here, not under the load
	// balancer. It references the certificate and the target groups, so
	// parenting it in the cluster stack would point cluster at wiring and
	// routing while wiring and routing already point at cluster.
	listener := awselasticloadbalancingv2.NewApplicationListener(stack, jsii.String("Https"), &awselasticloadbalancingv2.ApplicationListenerProps{
		LoadBalancer: p.Cluster.Alb,
		Port:         jsii.Number(443),
		Certificates: &[]awselasticloadbalancingv2.IListenerCertificate{
			awselasticloadbalancingv2.ListenerCertificate_FromCertificateManager(cert),
		},
		DefaultAction: awselasticloadbalancingv2.ListenerAction_FixedResponse(jsii.Number(404), &awselasticloadbalancingv2.FixedResponseOptions{
			ContentType: jsii.String("text/plain"),
			MessageBody: jsii.String("unknown host"),
		}),
	})

	for i, r := range p.Rules {
		tg, ok := p.Routing.TargetGroups[r.Brand]
		if !ok {
			return nil, errs.NewConfiguration("wiring.rules", "no target group for brand %s", r.Brand)
		}
		listener.AddTargetGroups(jsii.String("Rule-"+r.Brand), &awselasticloadbalancingv2.AddApplicationTargetGroupsProps{
			Priority: jsii.Number(float64(i + 1)),
			Conditions: &[]awselasticloadbalancingv2.ListenerCondition{
				awselasticloadbalancingv2.ListenerCondition_HostHeaders(jsii.Strings(r.Hostname)),
			},
			TargetGroups: &[]awselasticloadbalancingv2.IApplicationTargetGroup{tg},
		})
	}

	return &Wiring{Stack: Stack{Cdk: stack}, Listener: listener}, nil
}

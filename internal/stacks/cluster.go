package stacks

import (
	"github.com/aws/aws-cdk-go/awscdk/v2/awselasticloadbalancingv2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/plattolabs/stackforge/internal/errs"
	"github.com/plattolabs/stackforge/internal/linkage"
)

// ClusterProps configures the shared environment load balancer.
type ClusterProps struct {
	Base
	Network *Network
}

// Cluster exposes the load balancer handle. The HTTPS listener is added
// later, once the regional certificate exists, so only the plain redirect
// listener lives here.
type Cluster struct {
	Stack
	Alb awselasticloadbalancingv2.ApplicationLoadBalancer
}

func BuildCluster(scope constructs.Construct, p ClusterProps) (*Cluster, error) {
	if p.Network == nil {
		return nil, errs.NewConfiguration("cluster.network", "network handle is required")
	}
	stack := newStack(scope, p.Base)
	alb := awselasticloadbalancingv2.NewApplicationLoadBalancer(stack, jsii.String("Alb"), &awselasticloadbalancingv2.ApplicationLoadBalancerProps{
		LoadBalancerName: jsii.String(p.Ctx.ResourceName("alb")),
		Vpc:              p.Network.Vpc,
		InternetFacing:   jsii.Bool(true),
	})
	alb.AddListener(jsii.String("Http"), &awselasticloadbalancingv2.BaseApplicationListenerProps{
		Port: jsii.Number(80),
		DefaultAction: awselasticloadbalancingv2.ListenerAction_Redirect(&awselasticloadbalancingv2.RedirectOptions{
			Port:      jsii.String("443"),
			Protocol:  jsii.String("HTTPS"),
			Permanent: jsii.Bool(true),
		}),
	})

	publishParam(stack, "AlbDnsName",
		p.Ctx.ParameterPath(linkage.NamespacePlatform, linkage.ServiceALB, linkage.AttrDNSName),
		alb.LoadBalancerDnsName())
	publishParam(stack, "AlbCanonicalZoneId",
		p.Ctx.ParameterPath(linkage.NamespacePlatform, linkage.ServiceALB, linkage.AttrCanonicalZoneID),
		alb.LoadBalancerCanonicalHostedZoneId())

	return &Cluster{Stack: Stack{Cdk: stack}, Alb: alb}, nil
}

package stacks

import (
	"github.com/aws/aws-cdk-go/awscdk/v2/awselasticloadbalancingv2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awselasticloadbalancingv2targets"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/plattolabs/stackforge/internal/errs"
)

// RoutingProps configures one lambda target group per brand. Listener rules
// are attached later by the wiring builder; keeping them out of this unit is
// what breaks the cycle between routing and the certificate.
type RoutingProps struct {
	Base
	Brands  []string
	Compute *Compute
}

// Routing exposes the target groups for wiring.
type Routing struct {
	Stack
	TargetGroups map[string]awselasticloadbalancingv2.ApplicationTargetGroup
}

func BuildRouting(scope constructs.Construct, p RoutingProps) (*Routing, error) {
	if p.Compute == nil {
		return nil, errs.NewConfiguration("routing.compute", "compute handle is required")
	}
	stack := newStack(scope, p.Base)
	groups := make(map[string]awselasticloadbalancingv2.ApplicationTargetGroup, len(p.Brands))
	for _, brand := range p.Brands {
		fn, ok := p.Compute.Functions[brand]
		if !ok {
			return nil, errs.NewConfiguration("routing.brands", "no function for brand %s", brand)
		}
		// Registering the concrete function handle would drop the invoke
		// permission into the compute stack, where it references the target
		// group arn while the group references the function arn. Importing
		// the function pins the permission to this stack so the references
		// between routing and compute flow one way.
		imported := awslambda.Function_FromFunctionAttributes(stack, jsii.String("Fn-"+brand), &awslambda.FunctionAttributes{
			FunctionArn:     fn.FunctionArn(),
			SameEnvironment: jsii.Bool(true),
		})
		groups[brand] = awselasticloadbalancingv2.NewApplicationTargetGroup(stack, jsii.String("Tg-"+brand), &awselasticloadbalancingv2.ApplicationTargetGroupProps{
			TargetGroupName: jsii.String(p.Ctx.ResourceName("tg", brand)),
			TargetType:      awselasticloadbalancingv2.TargetType_LAMBDA,
			Targets: &[]awselasticloadbalancingv2.IApplicationLoadBalancerTarget{
				awselasticloadbalancingv2targets.NewLambdaTarget(imported),
			},
		})
	}
	return &Routing{Stack: Stack{Cdk: stack}, TargetGroups: groups}, nil
}

package stacks

import (
	"github.com/aws/aws-cdk-go/awscdk/v2/awsec2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/plattolabs/stackforge/internal/errs"
)

// NetworkProps configures the per-environment VPC.
type NetworkProps struct {
	Base
	Cidr        string
	MaxAzs      int
	NatGateways int
}

// Network is the handle other same-environment builders consume directly.
type Network struct {
	Stack
	Vpc awsec2.Vpc
}

func BuildNetwork(scope constructs.Construct, p NetworkProps) (*Network, error) {
	if p.Cidr == "" {
		return nil, errs.NewConfiguration("infrastructure.vpcCidr", "must not be blank")
	}
	if p.MaxAzs <= 0 {
		p.MaxAzs = 2
	}
	stack := newStack(scope, p.Base)
	vpc := awsec2.NewVpc(stack, jsii.String("Vpc"), &awsec2.VpcProps{
		VpcName:     jsii.String(p.Ctx.ResourceName("vpc")),
		IpAddresses: awsec2.IpAddresses_Cidr(jsii.String(p.Cidr)),
		MaxAzs:      jsii.Number(float64(p.MaxAzs)),
		NatGateways: jsii.Number(float64(p.NatGateways)),
	})
	return &Network{Stack: Stack{Cdk: stack}, Vpc: vpc}, nil
}

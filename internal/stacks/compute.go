package stacks

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsec2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/plattolabs/stackforge/internal/errs"
)

// ComputeProps configures one API function per brand. SecretKeys maps each
// brand to the declared keys its function may read.
type ComputeProps struct {
	Base
	Brands      []string
	ArtifactDir string
	SecretKeys  map[string][]string
	Network     *Network
	Data        *Data
	Secrets     *Secrets
}

// Compute exposes the per-brand functions for the routing builder.
type Compute struct {
	Stack
	Functions map[string]awslambda.Function
}

func BuildCompute(scope constructs.Construct, p ComputeProps) (*Compute, error) {
	if len(p.Brands) == 0 {
		return nil, errs.NewConfiguration("compute.brands", "at least one brand is required")
	}
	if p.Network == nil {
		return nil, errs.NewConfiguration("compute.network", "network handle is required")
	}
	if p.ArtifactDir == "" {
		p.ArtifactDir = "dist"
	}
	stack := newStack(scope, p.Base)
	fns := make(map[string]awslambda.Function, len(p.Brands))
	for _, brand := range p.Brands {
		fn := awslambda.NewFunction(stack, jsii.String("Api-"+brand), &awslambda.FunctionProps{
			FunctionName: jsii.String(p.Ctx.ResourceName("api", brand)),
			Runtime:      awslambda.Runtime_PROVIDED_AL2023(),
			Handler:      jsii.String("bootstrap"),
			Code:         awslambda.Code_FromAsset(jsii.String(p.ArtifactDir+"/"+brand), nil),
			MemorySize:   jsii.Number(512),
			Timeout:      awscdk.Duration_Seconds(jsii.Number(29)),
			Vpc:          p.Network.Vpc,
			VpcSubnets:   &awsec2.SubnetSelection{SubnetType: awsec2.SubnetType_PRIVATE_WITH_EGRESS},
			Environment: &map[string]*string{
				"BRAND":       jsii.String(brand),
				"ENVIRONMENT": jsii.String(p.Ctx.Environment),
			},
		})
		if p.Data != nil {
			if table, ok := p.Data.Tables[brand]; ok {
				table.GrantReadWriteData(fn)
			}
		}
		if p.Secrets != nil {
			for _, key := range p.SecretKeys[brand] {
				if secret, ok := p.Secrets.ByKey[key]; ok {
					secret.GrantRead(fn, nil)
				}
			}
		}
		fns[brand] = fn
	}
	return &Compute{Stack: Stack{Cdk: stack}, Functions: fns}, nil
}

package stacks

import (
	"github.com/aws/aws-cdk-go/awscdk/v2/awssecretsmanager"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/plattolabs/stackforge/internal/errs"
)

// SecretsProps takes the re-keyed secret groups: prefix, then brand, then the
// original declared key.
type SecretsProps struct {
	Base
	Refs map[string]map[string]string
}

// Secrets exposes created secrets keyed by their original declared key, which
// is how the compute builder asks for grants.
type Secrets struct {
	Stack
	ByKey map[string]awssecretsmanager.Secret
}

func BuildSecrets(scope constructs.Construct, p SecretsProps) (*Secrets, error) {
	if len(p.Refs) == 0 {
		return nil, errs.NewConfiguration("secrets.refs", "at least one secret key is required")
	}
	stack := newStack(scope, p.Base)
	byKey := make(map[string]awssecretsmanager.Secret)
	for prefix, brands := range p.Refs {
		for brand, key := range brands {
			byKey[key] = awssecretsmanager.NewSecret(stack, jsii.String("Secret-"+key), &awssecretsmanager.SecretProps{
				SecretName:  jsii.String(p.Ctx.ResourceName("secret", brand, prefix)),
				Description: jsii.String("managed by stackforge; value set out of band"),
			})
		}
	}
	return &Secrets{Stack: Stack{Cdk: stack}, ByKey: byKey}, nil
}

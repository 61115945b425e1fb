package stacks

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsdynamodb"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/plattolabs/stackforge/internal/errs"
)

// DataProps configures one single-table store per brand.
type DataProps struct {
	Base
	Brands []string
}

// Data exposes the per-brand tables for compute grants.
type Data struct {
	Stack
	Tables map[string]awsdynamodb.Table
}

func BuildData(scope constructs.Construct, p DataProps) (*Data, error) {
	if len(p.Brands) == 0 {
		return nil, errs.NewConfiguration("data.brands", "at least one brand is required")
	}
	stack := newStack(scope, p.Base)
	tables := make(map[string]awsdynamodb.Table, len(p.Brands))
	for _, brand := range p.Brands {
		tables[brand] = awsdynamodb.NewTable(stack, jsii.String("Table-"+brand), &awsdynamodb.TableProps{
			TableName:           jsii.String(p.Ctx.ResourceName("table", brand)),
			PartitionKey:        &awsdynamodb.Attribute{Name: jsii.String("pk"), Type: awsdynamodb.AttributeType_STRING},
			SortKey:             &awsdynamodb.Attribute{Name: jsii.String("sk"), Type: awsdynamodb.AttributeType_STRING},
			BillingMode:         awsdynamodb.BillingMode_PAY_PER_REQUEST,
			PointInTimeRecovery: jsii.Bool(true),
			RemovalPolicy:       awscdk.RemovalPolicy_RETAIN,
		})
	}
	return &Data{Stack: Stack{Cdk: stack}, Tables: tables}, nil
}

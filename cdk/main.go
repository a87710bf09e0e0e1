package main

import (
	"os"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsapigateway"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

type FootMatchStackProps struct {
	awscdk.StackProps
}

func NewFootMatchStack(scope constructs.Construct, id string, props *FootMatchStackProps) awscdk.Stack {
	var stackProps awscdk.StackProps
	if props != nil {
		stackProps = props.StackProps
	}

	stack := awscdk.NewStack(scope, &id, &stackProps)

	// build/bootstrap: GOOS=linux GOARCH=arm64 go build -o cdk/build/bootstrap .
	lambdaFn := awslambda.NewFunction(stack, jsii.String("FootMatchWeb"), &awslambda.FunctionProps{
		Runtime:      awslambda.Runtime_PROVIDED_AL2023(),
		Architecture: awslambda.Architecture_ARM_64(),
		Handler:      jsii.String("bootstrap"),
		Code:         awslambda.Code_FromAsset(jsii.String("build"), nil),
		MemorySize:   jsii.Number(256),
		Timeout:      awscdk.Duration_Seconds(jsii.Number(15)),
		Environment: &map[string]*string{
			"APP":              jsii.String("prod"),
			"API_URL":          jsii.String(envOr("API_URL", "http://localhost:8080")),
			"LOG_LEVEL":        jsii.String(envOr("LOG_LEVEL", "info")),
			"APP_TIMEZONE":     jsii.String(envOr("APP_TIMEZONE", "Europe/Warsaw")),
			"POSTGRES_DSN":     jsii.String(os.Getenv("POSTGRES_DSN")),
			"SECRET_STORE_KEY": jsii.String(os.Getenv("SECRET_STORE_KEY")),
		},
	})

	gateway := awsapigateway.NewLambdaRestApi(stack, jsii.String("FootMatchGateway"), &awsapigateway.LambdaRestApiProps{
		Handler: lambdaFn,
	})

	awscdk.NewCfnOutput(stack, jsii.String("WebURL"), &awscdk.CfnOutputProps{Value: gateway.Url()})

	return stack
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	app := awscdk.NewApp(nil)
	NewFootMatchStack(app, "FootMatchStack", &FootMatchStackProps{})
	app.Synth(nil)
}

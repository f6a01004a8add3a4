package config

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// ParameterGetter is the slice of the SSM client used to resolve secrets.
type ParameterGetter interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// NewParameterGetter builds an SSM client from the default AWS credential chain.
func NewParameterGetter(ctx context.Context, c map[string]string) (ParameterGetter, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region := GetString(c, "AWS_REGION", ""); region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return ssm.NewFromConfig(cfg), nil
}

// ResolveSecret returns c[key] when it is set. Otherwise, if c[parameterKey]
// names an SSM parameter, the decrypted parameter value is fetched and stored
// back under key.
func ResolveSecret(ctx context.Context, c map[string]string, getter ParameterGetter, key, parameterKey string) (string, error) {
	if value := GetString(c, key, ""); value != "" {
		return value, nil
	}

	name := GetString(c, parameterKey, "")
	if name == "" {
		return "", fmt.Errorf("%s is not set", key)
	}
	if getter == nil {
		return "", fmt.Errorf("%s requires an ssm client", parameterKey)
	}

	out, err := getter.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("get ssm parameter %s: %w", name, err)
	}
	if out.Parameter == nil || aws.ToString(out.Parameter.Value) == "" {
		return "", fmt.Errorf("ssm parameter %s is empty", name)
	}

	value := aws.ToString(out.Parameter.Value)
	c[key] = value
	return value, nil
}

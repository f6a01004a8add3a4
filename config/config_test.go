package config

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetters(t *testing.T) {
	c := map[string]string{
		"PORT":      "9090",
		"BAD_INT":   "nine",
		"SECURE":    "true",
		"BAD_BOOL":  "maybe",
		"SWEEP":     "90s",
		"ORIGINS":   " http://a.test, ,http://b.test ",
		"EMPTY_STR": "",
	}

	assert.Equal(t, 9090, GetInt(c, "PORT", 8080))
	assert.Equal(t, 8080, GetInt(c, "BAD_INT", 8080))
	assert.Equal(t, 8080, GetInt(nil, "PORT", 8080))

	assert.True(t, GetBool(c, "SECURE", false))
	assert.True(t, GetBool(c, "BAD_BOOL", true))
	assert.False(t, GetBool(c, "MISSING", false))

	assert.Equal(t, 90*time.Second, GetDuration(c, "SWEEP", time.Minute))
	assert.Equal(t, time.Minute, GetDuration(c, "PORT", time.Minute))

	assert.Equal(t, []string{"http://a.test", "http://b.test"}, GetList(c, "ORIGINS"))
	assert.Nil(t, GetList(c, "EMPTY_STR"))

	assert.Equal(t, "", GetString(c, "EMPTY_STR", "fallback"))
	assert.Equal(t, "fallback", GetString(c, "MISSING", "fallback"))
}

func TestNewReadsEnvironment(t *testing.T) {
	t.Setenv("CREATORS_TEST_KEY", "a=b")
	c := New()
	assert.Equal(t, "a=b", c["CREATORS_TEST_KEY"])
}

type fakeParameterGetter struct {
	value string
	err   error
	calls int
	name  string
}

func (f *fakeParameterGetter) GetParameter(_ context.Context, in *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	f.calls++
	f.name = aws.ToString(in.Name)
	if f.err != nil {
		return nil, f.err
	}
	return &ssm.GetParameterOutput{Parameter: &types.Parameter{Value: aws.String(f.value)}}, nil
}

func TestResolveSecret(t *testing.T) {
	ctx := context.Background()

	t.Run("plain value wins", func(t *testing.T) {
		getter := &fakeParameterGetter{value: "from-ssm"}
		c := map[string]string{"SESSION_SECRET": "local", "SESSION_SECRET_SSM_PARAMETER": "/creators/secret"}

		value, err := ResolveSecret(ctx, c, getter, "SESSION_SECRET", "SESSION_SECRET_SSM_PARAMETER")
		require.NoError(t, err)
		assert.Equal(t, "local", value)
		assert.Zero(t, getter.calls)
	})

	t.Run("fetched from ssm", func(t *testing.T) {
		getter := &fakeParameterGetter{value: "from-ssm"}
		c := map[string]string{"SESSION_SECRET_SSM_PARAMETER": "/creators/secret"}

		value, err := ResolveSecret(ctx, c, getter, "SESSION_SECRET", "SESSION_SECRET_SSM_PARAMETER")
		require.NoError(t, err)
		assert.Equal(t, "from-ssm", value)
		assert.Equal(t, "/creators/secret", getter.name)
		assert.Equal(t, "from-ssm", c["SESSION_SECRET"])
	})

	t.Run("nothing configured", func(t *testing.T) {
		_, err := ResolveSecret(ctx, map[string]string{}, nil, "SESSION_SECRET", "SESSION_SECRET_SSM_PARAMETER")
		assert.Error(t, err)
	})

	t.Run("ssm failure", func(t *testing.T) {
		boom := errors.New("boom")
		getter := &fakeParameterGetter{err: boom}
		c := map[string]string{"SESSION_SECRET_SSM_PARAMETER": "/creators/secret"}

		_, err := ResolveSecret(ctx, c, getter, "SESSION_SECRET", "SESSION_SECRET_SSM_PARAMETER")
		assert.ErrorIs(t, err, boom)
	})
}

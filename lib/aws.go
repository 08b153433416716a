package lib

import (
	"context"
	"errors"
	"os"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/smithy-go"
)

const (
	DynamoDBLocalEndpoint = "http://dynamodb:8000"
	localRegion           = "local"
	localAccessKey        = "dummy"
)

type StaticCredentials struct {
	AccessKeyID     string `json:"accessKeyId"     yaml:"access-key-id"`
	SecretAccessKey string `json:"secretAccessKey" yaml:"secret-access-key"`
}

// DynamoDBConnectionConfig describes where the dynamodb client points. It is
// included verbatim in diagnostic error bodies, so it must never carry real
// credentials.
type DynamoDBConnectionConfig struct {
	Endpoint       string             `json:"endpoint,omitempty"       yaml:"endpoint,omitempty"`
	Region         string             `json:"region"                   yaml:"region"`
	Credentials    *StaticCredentials `json:"credentials,omitempty"    yaml:"credentials,omitempty"`
	ForcePathStyle bool               `json:"forcePathStyle,omitempty" yaml:"force-path-style,omitempty"`
}

// IsLocal reports whether we are running under sam local, where dynamodb is
// a container on the docker network.
func IsLocal() bool {
	return os.Getenv("AWS_SAM_LOCAL") == "true"
}

func DynamoDBConnection() DynamoDBConnectionConfig {
	endpoint := os.Getenv("DYNAMODB_ENDPOINT")
	if IsLocal() {
		if endpoint == "" {
			endpoint = DynamoDBLocalEndpoint
		}
		return DynamoDBConnectionConfig{
			Endpoint: endpoint,
			Region:   localRegion,
			Credentials: &StaticCredentials{
				AccessKeyID:     localAccessKey,
				SecretAccessKey: localAccessKey,
			},
			ForcePathStyle: true,
		}
	}
	return DynamoDBConnectionConfig{
		Endpoint: endpoint,
		Region:   os.Getenv("AWS_REGION"),
	}
}

var sess *aws.Config
var sessLock sync.Mutex

func sessionOptions(conn DynamoDBConnectionConfig) []func(*config.LoadOptions) error {
	opts := []func(*config.LoadOptions) error{
		config.WithRetryMaxAttempts(5),
	}
	if conn.Region != "" {
		opts = append(opts, config.WithRegion(conn.Region))
	}
	if conn.Credentials != nil {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			conn.Credentials.AccessKeyID,
			conn.Credentials.SecretAccessKey,
			"",
		)))
	}
	return opts
}

func Session() *aws.Config {
	sessLock.Lock()
	defer sessLock.Unlock()
	if sess == nil {
		cfg, err := config.LoadDefaultConfig(context.Background(), sessionOptions(DynamoDBConnection())...)
		if err != nil {
			panic(err)
		}
		sess = &cfg
	}
	return sess
}

func Region() string {
	return Session().Region
}

// ErrorCode returns the aws api error code, or "" for non-api errors.
func ErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

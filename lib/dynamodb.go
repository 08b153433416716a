package lib

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/avast/retry-go"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

var dynamoDBClient *dynamodb.Client
var dynamoDBClientLock sync.Mutex

// DynamoDBClient is built once per process from DynamoDBConnection and shared
// by every invocation the lambda container serves.
func DynamoDBClient() *dynamodb.Client {
	dynamoDBClientLock.Lock()
	defer dynamoDBClientLock.Unlock()
	if dynamoDBClient == nil {
		conn := DynamoDBConnection()
		dynamoDBClient = dynamodb.NewFromConfig(*Session(), func(o *dynamodb.Options) {
			if conn.Endpoint != "" {
				o.BaseEndpoint = aws.String(conn.Endpoint)
			}
		})
	}
	return dynamoDBClient
}

func dynamoDBTableAttrShortcut(s string) string {
	s2, ok := map[string]string{
		"read":   "ProvisionedThroughput.ReadCapacityUnits",
		"write":  "ProvisionedThroughput.WriteCapacityUnits",
		"stream": "StreamSpecification.StreamViewType",
		"kms":    "SSESpecification.KMSMasterKeyId",
	}[s]
	if ok {
		return s2
	}
	return s
}

// DynamoDBEnsureInput builds a CreateTableInput from keys like "id:s:hash" and
// "date:n:range" and attrs like "read=5" or "Tags.owner=ops".
func DynamoDBEnsureInput(name string, keys []string, attrs []string) (*dynamodb.CreateTableInput, error) {
	if len(keys) == 0 {
		err := fmt.Errorf("table %s needs at least one key", name)
		Logger.Println("error:", err)
		return nil, err
	}

	input := &dynamodb.CreateTableInput{
		TableName:   aws.String(name),
		BillingMode: ddbtypes.BillingModePayPerRequest,
	}

	for _, key := range keys {
		attrName, attrType, keyType, err := SplitTwice(key, ":")
		if err != nil {
			Logger.Println("error:", err)
			return nil, err
		}
		attrType = strings.ToUpper(attrType)
		keyType = strings.ToUpper(keyType)
		if !Contains([]string{"S", "N", "B"}, attrType) {
			err := fmt.Errorf("unknown attribute type: %s", key)
			Logger.Println("error:", err)
			return nil, err
		}
		if !Contains([]string{"HASH", "RANGE"}, keyType) {
			err := fmt.Errorf("unknown key type: %s", key)
			Logger.Println("error:", err)
			return nil, err
		}
		input.KeySchema = append(input.KeySchema, ddbtypes.KeySchemaElement{
			AttributeName: aws.String(attrName),
			KeyType:       ddbtypes.KeyType(keyType),
		})
		input.AttributeDefinitions = append(input.AttributeDefinitions, ddbtypes.AttributeDefinition{
			AttributeName: aws.String(attrName),
			AttributeType: ddbtypes.ScalarAttributeType(attrType),
		})
	}

	for _, line := range attrs {
		attr, value, err := SplitOnce(line, "=")
		if err != nil {
			Logger.Println("error:", err)
			return nil, err
		}
		attr = dynamoDBTableAttrShortcut(attr)
		head, tail, err := SplitOnce(attr, ".")
		if err != nil {
			Logger.Println("error:", err)
			return nil, err
		}

		switch head {

		case "ProvisionedThroughput":
			units, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				Logger.Println("error:", err)
				return nil, err
			}
			input.BillingMode = ddbtypes.BillingModeProvisioned
			if input.ProvisionedThroughput == nil {
				input.ProvisionedThroughput = &ddbtypes.ProvisionedThroughput{}
			}
			switch tail {
			case "ReadCapacityUnits":
				input.ProvisionedThroughput.ReadCapacityUnits = aws.Int64(units)
			case "WriteCapacityUnits":
				input.ProvisionedThroughput.WriteCapacityUnits = aws.Int64(units)
			default:
				err := fmt.Errorf("unknown attr: %s", line)
				Logger.Println("error:", err)
				return nil, err
			}

		case "StreamSpecification":
			switch tail {
			case "StreamViewType":
				input.StreamSpecification = &ddbtypes.StreamSpecification{
					StreamEnabled:  aws.Bool(true),
					StreamViewType: ddbtypes.StreamViewType(strings.ToUpper(value)),
				}
			default:
				err := fmt.Errorf("unknown attr: %s", line)
				Logger.Println("error:", err)
				return nil, err
			}

		case "SSESpecification":
			switch tail {
			case "KMSMasterKeyId":
				input.SSESpecification = &ddbtypes.SSESpecification{
					Enabled:        aws.Bool(true),
					KMSMasterKeyId: aws.String(value),
					SSEType:        ddbtypes.SSETypeKms,
				}
			default:
				err := fmt.Errorf("unknown attr: %s", line)
				Logger.Println("error:", err)
				return nil, err
			}

		case "Tags":
			input.Tags = append(input.Tags, ddbtypes.Tag{
				Key:   aws.String(tail),
				Value: aws.String(value),
			})

		default:
			err := fmt.Errorf("unknown attr: %s", line)
			Logger.Println("error:", err)
			return nil, err
		}
	}

	if input.BillingMode == ddbtypes.BillingModeProvisioned {
		pt := input.ProvisionedThroughput
		if pt.ReadCapacityUnits == nil || pt.WriteCapacityUnits == nil {
			err := fmt.Errorf("provisioned table %s needs both read and write capacity", name)
			Logger.Println("error:", err)
			return nil, err
		}
	}

	return input, nil
}

type DynamoDBTableAPI interface {
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

func DynamoDBEnsure(ctx context.Context, input *dynamodb.CreateTableInput, preview bool) error {
	return DynamoDBEnsureWith(ctx, DynamoDBClient(), input, preview)
}

// DynamoDBEnsureWith creates the table if it does not exist and waits for it
// to become active. An existing table is left as is.
func DynamoDBEnsureWith(ctx context.Context, api DynamoDBTableAPI, input *dynamodb.CreateTableInput, preview bool) error {
	name := aws.ToString(input.TableName)
	_, err := api.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: input.TableName})
	if err == nil {
		Logger.Println("exists:", name)
		return nil
	}
	var notFound *ddbtypes.ResourceNotFoundException
	if !errors.As(err, &notFound) {
		Logger.Println("error:", err)
		return err
	}
	if preview {
		Logger.Println("preview: would create table:", name)
		return nil
	}
	_, err = api.CreateTable(ctx, input)
	if err != nil {
		Logger.Println("error:", err)
		return err
	}
	Logger.Println("created table:", name)
	return DynamoDBWaitActive(ctx, api, name)
}

func DynamoDBWaitActive(ctx context.Context, api DynamoDBTableAPI, name string) error {
	err := RetryAttempts(ctx, 30, func() error {
		out, err := api.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(name)})
		if err != nil {
			var notFound *ddbtypes.ResourceNotFoundException
			if errors.As(err, &notFound) {
				return err
			}
			return retry.Unrecoverable(err)
		}
		if out.Table == nil || out.Table.TableStatus != ddbtypes.TableStatusActive {
			return fmt.Errorf("table %s not active yet", name)
		}
		return nil
	})
	if err != nil {
		Logger.Println("error:", err)
		return err
	}
	return nil
}

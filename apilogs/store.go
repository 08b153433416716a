package apilogs

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/nathants/apilogs/lib"
)

// DynamoDBAPI is the subset of *dynamodb.Client the store uses.
type DynamoDBAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	ListTables(ctx context.Context, params *dynamodb.ListTablesInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ListTablesOutput, error)
}

type Store struct {
	api   DynamoDBAPI
	table string
}

func NewStore(api DynamoDBAPI, table string) *Store {
	if table == "" {
		table = DefaultTable
	}
	return &Store{api: api, table: table}
}

func (s *Store) Table() string {
	return s.table
}

func (s *Store) Put(ctx context.Context, entry LogEntry) error {
	item, err := attributevalue.MarshalMap(entry)
	if err != nil {
		return err
	}
	_, err = s.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUpstreamWrite, err)
	}
	return nil
}

// All scans the whole table with strongly consistent reads, following
// LastEvaluatedKey until the scan is exhausted. Never returns a nil slice.
func (s *Store) All(ctx context.Context) ([]LogEntry, error) {
	entries := []LogEntry{}
	paginator := dynamodb.NewScanPaginator(s.api, &dynamodb.ScanInput{
		TableName:      aws.String(s.table),
		ConsistentRead: aws.Bool(true),
	})
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUpstreamRead, err)
		}
		var page []LogEntry
		err = attributevalue.UnmarshalListOfMaps(out.Items, &page)
		if err != nil {
			return nil, err
		}
		entries = append(entries, page...)
	}
	return entries, nil
}

// Get returns the first entry whose partition key matches id.
func (s *Store) Get(ctx context.Context, id string) (LogEntry, error) {
	out, err := s.api.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.table),
		KeyConditionExpression: aws.String("id = :id"),
		ExpressionAttributeValues: map[string]ddbtypes.AttributeValue{
			":id": &ddbtypes.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return LogEntry{}, fmt.Errorf("%w: %w", ErrUpstreamRead, err)
	}
	if len(out.Items) == 0 {
		return LogEntry{}, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	var entry LogEntry
	err = attributevalue.UnmarshalMap(out.Items[0], &entry)
	if err != nil {
		return LogEntry{}, err
	}
	return entry, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.api.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key: map[string]ddbtypes.AttributeValue{
			"id": &ddbtypes.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUpstreamWrite, err)
	}
	return nil
}

func (s *Store) TableExists(ctx context.Context) (bool, error) {
	var tables []string
	paginator := dynamodb.NewListTablesPaginator(s.api, &dynamodb.ListTablesInput{})
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return false, fmt.Errorf("%w: %w", ErrUpstreamRead, err)
		}
		tables = append(tables, out.TableNames...)
	}
	lib.Logger.Println("available tables:", tables)
	return lib.Contains(tables, s.table), nil
}

package apilogs

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeDynamoDB keeps items keyed by their "id" string attribute, in insertion
// order, and pages scans and table listings when page sizes are set.
type fakeDynamoDB struct {
	mu             sync.Mutex
	tables         []string
	ids            []string
	items          map[string]map[string]ddbtypes.AttributeValue
	scanPageSize   int
	tablesPageSize int
	scanCalls      int
	listCalls      int
	putErr         error
	scanErr        error
	queryErr       error
	listErr        error
}

func newFakeDynamoDB(tables ...string) *fakeDynamoDB {
	return &fakeDynamoDB{
		tables: tables,
		items:  map[string]map[string]ddbtypes.AttributeValue{},
	}
}

func (f *fakeDynamoDB) hasTable(name *string) bool {
	for _, t := range f.tables {
		if t == aws.ToString(name) {
			return true
		}
	}
	return false
}

func notFound() error {
	return &ddbtypes.ResourceNotFoundException{Message: aws.String("Cannot do operations on a non-existent table")}
}

func idOf(item map[string]ddbtypes.AttributeValue) string {
	s, ok := item["id"].(*ddbtypes.AttributeValueMemberS)
	if !ok {
		return ""
	}
	return s.Value
}

func (f *fakeDynamoDB) PutItem(_ context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return nil, f.putErr
	}
	if !f.hasTable(params.TableName) {
		return nil, notFound()
	}
	id := idOf(params.Item)
	if _, ok := f.items[id]; !ok {
		f.ids = append(f.ids, id)
	}
	f.items[id] = params.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamoDB) DeleteItem(_ context.Context, params *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.hasTable(params.TableName) {
		return nil, notFound()
	}
	id := idOf(params.Key)
	delete(f.items, id)
	for i, x := range f.ids {
		if x == id {
			f.ids = append(f.ids[:i], f.ids[i+1:]...)
			break
		}
	}
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *fakeDynamoDB) Query(_ context.Context, params *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	if !f.hasTable(params.TableName) {
		return nil, notFound()
	}
	id := idOf(map[string]ddbtypes.AttributeValue{"id": params.ExpressionAttributeValues[":id"]})
	out := &dynamodb.QueryOutput{}
	if item, ok := f.items[id]; ok {
		out.Items = append(out.Items, item)
	}
	out.Count = int32(len(out.Items))
	return out, nil
}

func (f *fakeDynamoDB) Scan(_ context.Context, params *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scanCalls++
	if f.scanErr != nil {
		return nil, f.scanErr
	}
	if !f.hasTable(params.TableName) {
		return nil, notFound()
	}
	start := 0
	if params.ExclusiveStartKey != nil {
		last := idOf(params.ExclusiveStartKey)
		for i, id := range f.ids {
			if id == last {
				start = i + 1
			}
		}
	}
	end := len(f.ids)
	if f.scanPageSize > 0 && start+f.scanPageSize < end {
		end = start + f.scanPageSize
	}
	out := &dynamodb.ScanOutput{}
	for _, id := range f.ids[start:end] {
		out.Items = append(out.Items, f.items[id])
	}
	if end < len(f.ids) {
		out.LastEvaluatedKey = map[string]ddbtypes.AttributeValue{
			"id": &ddbtypes.AttributeValueMemberS{Value: f.ids[end-1]},
		}
	}
	out.Count = int32(len(out.Items))
	return out, nil
}

func (f *fakeDynamoDB) ListTables(_ context.Context, params *dynamodb.ListTablesInput, _ ...func(*dynamodb.Options)) (*dynamodb.ListTablesOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	start := 0
	if params.ExclusiveStartTableName != nil {
		for i, t := range f.tables {
			if t == *params.ExclusiveStartTableName {
				start = i + 1
			}
		}
	}
	end := len(f.tables)
	if f.tablesPageSize > 0 && start+f.tablesPageSize < end {
		end = start + f.tablesPageSize
	}
	out := &dynamodb.ListTablesOutput{TableNames: append([]string{}, f.tables[start:end]...)}
	if end < len(f.tables) {
		out.LastEvaluatedTableName = aws.String(f.tables[end-1])
	}
	return out, nil
}

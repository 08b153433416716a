package apilogs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
)

var testNow = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestHandlers(api DynamoDBAPI) *Handlers {
	h := NewHandlers(Config{VerifyTable: true}, api)
	h.Now = func() time.Time { return testNow }
	count := 0
	h.NewID = func(now time.Time) string {
		count++
		return fmt.Sprintf("log_%d_%d", now.UnixMilli(), count)
	}
	return h
}

func storedEntry(t *testing.T, api *fakeDynamoDB, id string) LogEntry {
	t.Helper()
	item, ok := api.items[id]
	if !ok {
		t.Fatalf("no item stored with id %s", id)
	}
	var entry LogEntry
	err := attributevalue.UnmarshalMap(item, &entry)
	if err != nil {
		t.Fatal(err)
	}
	return entry
}

func TestGreet(t *testing.T) {
	api := newFakeDynamoDB(DefaultTable)
	h := newTestHandlers(api)
	event := events.APIGatewayProxyRequest{
		Path:       "/greet",
		HTTPMethod: "GET",
		Headers:    map[string]string{"User-Agent": "jest-test"},
		RequestContext: events.APIGatewayProxyRequestContext{
			Identity: events.APIGatewayRequestIdentity{SourceIP: "127.0.0.1"},
		},
	}
	resp, err := h.Greet(context.Background(), event)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("got status %d: %s", resp.StatusCode, resp.Body)
	}
	if resp.Headers["Content-Type"] != "application/json" {
		t.Errorf("got content type %q", resp.Headers["Content-Type"])
	}
	var body greetBody
	err = json.Unmarshal([]byte(resp.Body), &body)
	if err != nil {
		t.Fatal(err)
	}
	want := greetBody{
		Message:   "Hello from AWS Lambda!",
		Timestamp: "2024-01-01T00:00:00.000Z",
		LogID:     "log_1704067200000_1",
	}
	if body != want {
		t.Errorf("\ngot:\n%#v\nwant:\n%#v\n", body, want)
	}
	entry := storedEntry(t, api, body.LogID)
	wantEntry := LogEntry{
		ID:        "log_1704067200000_1",
		Timestamp: "2024-01-01T00:00:00.000Z",
		Path:      "/greet",
		Method:    "GET",
		ClientIP:  "127.0.0.1",
		UserAgent: "jest-test",
	}
	if entry != wantEntry {
		t.Errorf("\ngot:\n%#v\nwant:\n%#v\n", entry, wantEntry)
	}
}

func TestGreetWithoutIdentity(t *testing.T) {
	api := newFakeDynamoDB(DefaultTable)
	h := newTestHandlers(api)
	resp, err := h.Greet(context.Background(), events.APIGatewayProxyRequest{
		Path:       "/greet",
		HTTPMethod: "GET",
		Headers:    map[string]string{"User-Agent": "x"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("got status %d: %s", resp.StatusCode, resp.Body)
	}
	var body greetBody
	err = json.Unmarshal([]byte(resp.Body), &body)
	if err != nil {
		t.Fatal(err)
	}
	entry := storedEntry(t, api, body.LogID)
	if entry.Method != "GET" || entry.UserAgent != "x" || entry.ClientIP != "unknown" {
		t.Errorf("got %#v", entry)
	}
}

func TestGreetEmptyEvent(t *testing.T) {
	api := newFakeDynamoDB(DefaultTable)
	h := newTestHandlers(api)
	resp, err := h.Greet(context.Background(), events.APIGatewayProxyRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("got status %d: %s", resp.StatusCode, resp.Body)
	}
	entry := storedEntry(t, api, "log_1704067200000_1")
	want := LogEntry{
		ID:        "log_1704067200000_1",
		Timestamp: "2024-01-01T00:00:00.000Z",
		ClientIP:  "unknown",
		UserAgent: "unknown",
	}
	if entry != want {
		t.Errorf("\ngot:\n%#v\nwant:\n%#v\n", entry, want)
	}
}

func TestGreetWriteFailure(t *testing.T) {
	api := newFakeDynamoDB(DefaultTable)
	api.putErr = errors.New("connection refused")
	h := newTestHandlers(api)
	resp, err := h.Greet(context.Background(), events.APIGatewayProxyRequest{Path: "/greet", HTTPMethod: "GET"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 500 {
		t.Fatalf("got status %d", resp.StatusCode)
	}
	var body greetErrorBody
	err = json.Unmarshal([]byte(resp.Body), &body)
	if err != nil {
		t.Fatal(err)
	}
	if body.Error != "Failed to save log" {
		t.Errorf("got error %q", body.Error)
	}
	if !strings.Contains(body.Details, "connection refused") {
		t.Errorf("got details %q", body.Details)
	}
	if len(api.items) != 0 {
		t.Errorf("unexpected items: %d", len(api.items))
	}
}

func TestGreetMissingTable(t *testing.T) {
	h := newTestHandlers(newFakeDynamoDB())
	resp, err := h.Greet(context.Background(), events.APIGatewayProxyRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 500 {
		t.Fatalf("got status %d", resp.StatusCode)
	}
	if !json.Valid([]byte(resp.Body)) {
		t.Errorf("invalid json body: %s", resp.Body)
	}
}

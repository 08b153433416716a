package apilogs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func writeSpec(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "apilogs.yaml")
	err := os.WriteFile(path, []byte(content), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadTableSpec(t *testing.T) {
	type test struct {
		content string
		want    TableSpec
		err     bool
	}
	tests := []test{
		{"", TableSpec{Name: "APILogs", Key: []string{"id:s:hash"}}, false},
		{"name: Logs\nattr:\n  - read=5\n  - write=5\n", TableSpec{Name: "Logs", Key: []string{"id:s:hash"}, Attr: []string{"read=5", "write=5"}}, false},
		{"key:\n  - userid:s:hash\n", TableSpec{}, true},
		{"name: [unclosed\n", TableSpec{}, true},
	}
	for _, test := range tests {
		got, err := LoadTableSpec(writeSpec(t, test.content), "")
		if test.err {
			if err == nil {
				t.Errorf("expected error for %q", test.content)
			}
			continue
		}
		if err != nil {
			t.Errorf("unexpected error: %s", err)
			continue
		}
		if got.Name != test.want.Name || len(got.Key) != len(test.want.Key) || got.Key[0] != test.want.Key[0] || len(got.Attr) != len(test.want.Attr) {
			t.Errorf("\ngot:\n%#v\nwant:\n%#v\n", got, test.want)
		}
	}
}

func TestTableSpecCreateTableInput(t *testing.T) {
	input, err := DefaultTableSpec("").CreateTableInput()
	if err != nil {
		t.Fatal(err)
	}
	if aws.ToString(input.TableName) != "APILogs" {
		t.Errorf("got table %s", aws.ToString(input.TableName))
	}
	if len(input.KeySchema) != 1 || aws.ToString(input.KeySchema[0].AttributeName) != "id" || input.KeySchema[0].KeyType != ddbtypes.KeyTypeHash {
		t.Errorf("got key schema %#v", input.KeySchema)
	}
	if input.BillingMode != ddbtypes.BillingModePayPerRequest {
		t.Errorf("got billing mode %s", input.BillingMode)
	}
}

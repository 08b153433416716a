package apilogs

import (
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/nathants/apilogs/lib"
	"gopkg.in/yaml.v3"
)

// TableSpec describes the log table in the key/attr notation understood by
// lib.DynamoDBEnsureInput.
type TableSpec struct {
	Name string   `yaml:"name"`
	Key  []string `yaml:"key"`
	Attr []string `yaml:"attr,omitempty"`
}

func DefaultTableSpec(name string) TableSpec {
	if name == "" {
		name = DefaultTable
	}
	return TableSpec{
		Name: name,
		Key:  []string{"id:s:hash"},
	}
}

// LoadTableSpec reads a yaml table spec. Fields left empty fall back to
// DefaultTableSpec(name).
func LoadTableSpec(path, name string) (TableSpec, error) {
	spec := DefaultTableSpec(name)
	data, err := os.ReadFile(path)
	if err != nil {
		return TableSpec{}, err
	}
	var loaded TableSpec
	err = yaml.Unmarshal(data, &loaded)
	if err != nil {
		return TableSpec{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if loaded.Name != "" {
		spec.Name = loaded.Name
	}
	if len(loaded.Key) != 0 {
		spec.Key = loaded.Key
	}
	spec.Attr = loaded.Attr
	return spec, spec.Validate()
}

// Validate requires the partition key the handlers query on.
func (t TableSpec) Validate() error {
	if len(t.Key) == 0 || strings.ToLower(t.Key[0]) != "id:s:hash" {
		return fmt.Errorf("table %s must be keyed by id:s:hash, got %v", t.Name, t.Key)
	}
	return nil
}

func (t TableSpec) CreateTableInput() (*dynamodb.CreateTableInput, error) {
	err := t.Validate()
	if err != nil {
		return nil, err
	}
	return lib.DynamoDBEnsureInput(t.Name, t.Key, t.Attr)
}

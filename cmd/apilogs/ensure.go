package cliapilogs

import (
	"context"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/nathants/apilogs/apilogs"
	"github.com/nathants/apilogs/lib"
)

func init() {
	lib.Commands["apilogs-ensure"] = apilogsEnsure
	lib.Args["apilogs-ensure"] = apilogsEnsureArgs{}
}

type apilogsEnsureArgs struct {
	File    string `arg:"-f,--file" default:"apilogs.yaml" help:"table spec, defaults apply when the file is absent"`
	Preview bool   `arg:"-p,--preview"`
}

func (apilogsEnsureArgs) Description() string {
	return `
ensure the log table exists and is active

example:
 - apilogs apilogs-ensure -f apilogs.yaml

apilogs.yaml:

    name: APILogs
    key:
      - id:s:hash
    attr:
      - read=5
      - write=5
`
}

func tableSpec(path string) (apilogs.TableSpec, error) {
	name := apilogs.ConfigFromEnv().Table
	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		return apilogs.DefaultTableSpec(name), nil
	}
	return apilogs.LoadTableSpec(path, name)
}

func ensureTable(ctx context.Context, path string, preview bool) error {
	spec, err := tableSpec(path)
	if err != nil {
		return err
	}
	input, err := spec.CreateTableInput()
	if err != nil {
		return err
	}
	return lib.DynamoDBEnsure(ctx, input, preview)
}

func apilogsEnsure() {
	var args apilogsEnsureArgs
	arg.MustParse(&args)
	err := ensureTable(context.Background(), args.File, args.Preview)
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
}

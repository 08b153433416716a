package cliapilogs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"
	"github.com/nathants/apilogs/apilogs"
	"github.com/nathants/apilogs/lib"
)

func init() {
	lib.Commands["apilogs-ls"] = apilogsLs
	lib.Args["apilogs-ls"] = apilogsLsArgs{}
}

type apilogsLsArgs struct {
	JSON bool `arg:"-j,--json" help:"print json lines even on a terminal"`
}

func (apilogsLsArgs) Description() string {
	return "\nlist all log entries\n"
}

func apilogsLs() {
	var args apilogsLsArgs
	arg.MustParse(&args)
	ctx := context.Background()
	h := apilogs.NewHandlersFromEnv()
	entries, err := h.Store.All(ctx)
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
	if args.JSON || !isatty.IsTerminal(os.Stdout.Fd()) {
		for _, entry := range entries {
			data, err := json.Marshal(entry)
			if err != nil {
				lib.Logger.Fatal("error: ", err)
			}
			fmt.Println(string(data))
		}
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"id", "timestamp", "method", "path", "client ip", "user agent"})
	for _, entry := range entries {
		t.AppendRow(table.Row{entry.ID, entry.Timestamp, entry.Method, entry.Path, entry.ClientIP, entry.UserAgent})
	}
	t.AppendFooter(table.Row{fmt.Sprintf("%s entries", humanize.Comma(int64(len(entries))))})
	t.Render()
}

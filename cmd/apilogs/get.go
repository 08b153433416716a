package cliapilogs

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexflint/go-arg"
	"github.com/nathants/apilogs/apilogs"
	"github.com/nathants/apilogs/lib"
)

func init() {
	lib.Commands["apilogs-get"] = apilogsGet
	lib.Args["apilogs-get"] = apilogsGetArgs{}
}

type apilogsGetArgs struct {
	ID string `arg:"positional,required"`
}

func (apilogsGetArgs) Description() string {
	return "\nget one log entry by id\n"
}

func apilogsGet() {
	var args apilogsGetArgs
	arg.MustParse(&args)
	ctx := context.Background()
	h := apilogs.NewHandlersFromEnv()
	entry, err := h.Store.Get(ctx, args.ID)
	if errors.Is(err, apilogs.ErrItemNotFound) {
		lib.Logger.Fatalf("not found: %s\n", args.ID)
	}
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
	fmt.Println(lib.Pformat(entry))
}

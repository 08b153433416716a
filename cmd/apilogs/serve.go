package cliapilogs

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/nathants/apilogs/apilogs"
	"github.com/nathants/apilogs/lib"
)

func init() {
	lib.Commands["apilogs-serve"] = apilogsServe
	lib.Args["apilogs-serve"] = apilogsServeArgs{}
}

type apilogsServeArgs struct {
	Addr   string `arg:"-a,--addr" default:":3000"`
	Ensure bool   `arg:"-e,--ensure" help:"create the table first"`
	File   string `arg:"-f,--file" default:"apilogs.yaml" help:"table spec used with --ensure"`
}

func (apilogsServeArgs) Description() string {
	return `
serve the handlers over plain http for local development

routes:
 - GET  /           static page
 - ANY  /greet      write a log entry
 - GET  /logs       list log entries
 - GET  /logs/{id}  get one log entry

example:
 - AWS_SAM_LOCAL=true DYNAMODB_ENDPOINT=http://localhost:8000 APILOGS_WEBSITE_DIR=website apilogs apilogs-serve -e
`
}

func apilogsServe() {
	var args apilogsServeArgs
	arg.MustParse(&args)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if args.Ensure {
		err := ensureTable(ctx, args.File, false)
		if err != nil {
			lib.Logger.Fatal("error: ", err)
		}
	}
	h := apilogs.NewHandlersFromEnv()
	server := &http.Server{
		Addr:              args.Addr,
		Handler:           h.LocalMux(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		err := server.Shutdown(shutdownCtx)
		if err != nil {
			lib.Logger.Println("error:", err)
		}
	}()
	lib.Logger.Println("serving on", args.Addr, "table", h.Store.Table())
	err := server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		lib.Logger.Fatal("error: ", err)
	}
}

package cliapilogs

import (
	"context"
	"fmt"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/aws/aws-lambda-go/events"
	"github.com/nathants/apilogs/apilogs"
	"github.com/nathants/apilogs/lib"
)

func init() {
	lib.Commands["apilogs-greet"] = apilogsGreet
	lib.Args["apilogs-greet"] = apilogsGreetArgs{}
}

type apilogsGreetArgs struct {
	Path      string `arg:"--path" default:"/greet"`
	Method    string `arg:"-m,--method" default:"GET"`
	IP        string `arg:"--ip" help:"source ip, logged as unknown when empty"`
	UserAgent string `arg:"-u,--user-agent" default:"apilogs-cli"`
}

func (apilogsGreetArgs) Description() string {
	return "\ninvoke the greet handler with a synthetic event, writing one log entry\n"
}

func apilogsGreet() {
	var args apilogsGreetArgs
	arg.MustParse(&args)
	h := apilogs.NewHandlersFromEnv()
	resp, err := h.Greet(context.Background(), events.APIGatewayProxyRequest{
		Path:       args.Path,
		HTTPMethod: args.Method,
		Headers:    map[string]string{"User-Agent": args.UserAgent},
		RequestContext: events.APIGatewayProxyRequestContext{
			Identity: events.APIGatewayRequestIdentity{SourceIP: args.IP},
		},
	})
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
	fmt.Println(resp.Body)
	if resp.StatusCode != 200 {
		os.Exit(1)
	}
}

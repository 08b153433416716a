//
// attr: memory 128
// attr: timeout 10
// policy: AWSLambdaBasicExecutionRole
// trigger: api
// include: ../../website/index.html
// env: APILOGS_WEBSITE_DIR=/var/task/website
//
// the zip stores the include as website/index.html next to bootstrap.
//

package main

import (
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/nathants/apilogs/apilogs"
	"github.com/nathants/apilogs/lib"
)

func main() {
	h := apilogs.NewHandlersFromEnv()
	lib.Logger.Println("website dir:", h.Config.WebsiteDir)
	lambda.Start(h.Static)
}

//
// attr: memory 128
// attr: timeout 30
// policy: AWSLambdaBasicExecutionRole
// allow: dynamodb:Scan arn:aws:dynamodb:*:*:table/APILogs
// allow: dynamodb:ListTables *
// trigger: api
//

package main

import (
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/nathants/apilogs/apilogs"
)

func main() {
	lambda.Start(apilogs.NewHandlersFromEnv().List)
}

//
// attr: memory 128
// attr: timeout 10
// policy: AWSLambdaBasicExecutionRole
// allow: dynamodb:PutItem arn:aws:dynamodb:*:*:table/APILogs
// trigger: api
//

package main

import (
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/nathants/apilogs/apilogs"
)

func main() {
	lambda.Start(apilogs.NewHandlersFromEnv().Greet)
}

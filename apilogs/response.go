package apilogs

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/nathants/apilogs/lib"
)

func jsonHeaders() map[string]string {
	return map[string]string{
		"Content-Type":                "application/json",
		"Access-Control-Allow-Origin": "*",
	}
}

func jsonResponse(status int, headers map[string]string, body interface{}) events.APIGatewayProxyResponse {
	data, err := json.Marshal(body)
	if err != nil {
		lib.Logger.Println("error:", err)
		status = http.StatusInternalServerError
		data = []byte(`{"error":"Internal Server Error"}`)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    headers,
		Body:       string(data),
	}
}

type messageBody struct {
	Message string `json:"message"`
}

func methodNotAllowed(name, method string) events.APIGatewayProxyResponse {
	headers := jsonHeaders()
	headers["Allow"] = http.MethodGet
	err := fmt.Errorf("%w: %s only accepts GET method, you tried: %s", ErrMethodNotAllowed, name, method)
	lib.Logger.Println("error:", err)
	return jsonResponse(http.StatusMethodNotAllowed, headers, messageBody{
		Message: fmt.Sprintf("%s only accepts GET method, you tried: %s", name, method),
	})
}

package apilogs

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/nathants/apilogs/lib"
)

type getErrorBody struct {
	Message string                        `json:"message"`
	Error   string                        `json:"error"`
	ID      string                        `json:"id"`
	Config  *lib.DynamoDBConnectionConfig `json:"config,omitempty"`
}

func (h *Handlers) Get(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if event.HTTPMethod != http.MethodGet {
		return methodNotAllowed("getMethod", event.HTTPMethod), nil
	}
	id := event.PathParameters["id"]
	if id == "" {
		return jsonResponse(http.StatusBadRequest, jsonHeaders(), messageBody{Message: "missing path parameter id"}), nil
	}
	lib.Logger.Println("getting item with id:", id)

	entry, err := h.Store.Get(ctx, id)
	switch {
	case err == nil:
		return jsonResponse(http.StatusOK, jsonHeaders(), entry), nil
	case errors.Is(err, ErrItemNotFound):
		return jsonResponse(http.StatusNotFound, jsonHeaders(), messageBody{
			Message: fmt.Sprintf("Item with id %s not found", id),
		}), nil
	default:
		lib.Logger.Println("error:", err, lib.ErrorCode(err))
		body := getErrorBody{
			Message: "Error retrieving item",
			Error:   err.Error(),
			ID:      id,
		}
		if h.Config.Diagnostics {
			conn := h.Config.DynamoDB
			body.Config = &conn
		}
		return jsonResponse(http.StatusInternalServerError, jsonHeaders(), body), nil
	}
}

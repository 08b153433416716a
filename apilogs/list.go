package apilogs

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/nathants/apilogs/lib"
)

type networkInfo struct {
	IsLocal     bool `json:"isLocal"`
	TableExists bool `json:"tableExists"`
}

type listErrorBody struct {
	Message     string                        `json:"message"`
	Error       string                        `json:"error"`
	Config      *lib.DynamoDBConnectionConfig `json:"config,omitempty"`
	NetworkInfo *networkInfo                  `json:"networkInfo,omitempty"`
}

func (h *Handlers) verifyTable(ctx context.Context) error {
	exists, err := h.Store.TableExists(ctx)
	if err != nil {
		lib.Logger.Println("error:", err)
		return fmt.Errorf("%w: %s: %w", ErrTableNotFound, h.Store.Table(), err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrTableNotFound, h.Store.Table())
	}
	return nil
}

// List returns every LogEntry in the table as a json array, [] when empty.
func (h *Handlers) List(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if event.HTTPMethod != http.MethodGet {
		return methodNotAllowed("getAllItems", event.HTTPMethod), nil
	}
	lib.Logger.Println("dynamodb config:", lib.Pformat(h.Config.DynamoDB))

	entries, err := h.list(ctx)
	if err != nil {
		lib.Logger.Println("error:", err, lib.ErrorCode(err))
		body := listErrorBody{
			Message: "Error retrieving items",
			Error:   err.Error(),
		}
		if h.Config.Diagnostics {
			conn := h.Config.DynamoDB
			exists, existsErr := h.Store.TableExists(ctx)
			if existsErr != nil {
				lib.Logger.Println("error:", existsErr)
			}
			body.Config = &conn
			body.NetworkInfo = &networkInfo{
				IsLocal:     lib.IsLocal(),
				TableExists: exists,
			}
		}
		return jsonResponse(http.StatusInternalServerError, jsonHeaders(), body), nil
	}

	lib.Logger.Println("items retrieved:", len(entries))
	return jsonResponse(http.StatusOK, jsonHeaders(), entries), nil
}

func (h *Handlers) list(ctx context.Context) ([]LogEntry, error) {
	if h.Config.VerifyTable {
		err := h.verifyTable(ctx)
		if err != nil {
			return nil, err
		}
	}
	entries, err := h.Store.All(ctx)
	if err != nil {
		if errors.Is(err, ErrUpstreamRead) && lib.ErrorCode(err) == "ResourceNotFoundException" {
			return nil, fmt.Errorf("%w: %w", ErrTableNotFound, err)
		}
		return nil, err
	}
	return entries, nil
}

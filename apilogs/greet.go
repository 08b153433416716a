package apilogs

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/nathants/apilogs/lib"
)

const greeting = "Hello from AWS Lambda!"

type greetBody struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	LogID     string `json:"logId"`
}

type greetErrorBody struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// Greet writes one LogEntry per invocation. A failed write is reported as a
// 500; there is no retry.
func (h *Handlers) Greet(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	now := h.Now()
	entry := NewLogEntry(event, h.NewID(now), now)
	lib.Logger.Println("saving log entry:", lib.Pformat(entry))
	err := h.Store.Put(ctx, entry)
	if err != nil {
		lib.Logger.Println("error:", err, lib.ErrorCode(err))
		return jsonResponse(http.StatusInternalServerError, jsonHeaders(), greetErrorBody{
			Error:   "Failed to save log",
			Details: err.Error(),
		}), nil
	}
	lib.Logger.Println("saved:", entry.ID)
	return jsonResponse(http.StatusOK, jsonHeaders(), greetBody{
		Message:   greeting,
		Timestamp: entry.Timestamp,
		LogID:     entry.ID,
	}), nil
}

package apilogs

import (
	"context"
	"net/http"
	"os"
	"path/filepath"

	"github.com/aws/aws-lambda-go/events"
	"github.com/dustin/go-humanize"
	"github.com/nathants/apilogs/lib"
)

type staticErrorBody struct {
	Error   string `json:"error"`
	Details string `json:"details"`
	Path    string `json:"path,omitempty"`
}

func staticHeaders(contentType string) map[string]string {
	return map[string]string{
		"Content-Type":  contentType,
		"Cache-Control": "no-cache",
	}
}

func readIndex(websiteDir string) ([]byte, error) {
	info, err := os.Stat(websiteDir)
	if err != nil || !info.IsDir() {
		lib.Logger.Println("error: website directory not found:", websiteDir)
		return nil, ErrWebsiteDirNotFound
	}
	indexPath := filepath.Join(websiteDir, "index.html")
	lib.Logger.Println("index path:", indexPath)
	info, err = os.Stat(indexPath)
	if err != nil || info.IsDir() {
		lib.Logger.Println("error: index.html not found:", indexPath)
		return nil, ErrIndexNotFound
	}
	return os.ReadFile(indexPath)
}

// Static serves website/index.html. A missing asset is reported as a 500,
// not a 404, because it means the deployment is broken rather than that the
// client asked for something absent.
func (h *Handlers) Static(_ context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	lib.Logger.Println("handler directory:", h.Config.HandlerDir)
	lib.Logger.Println("event:", lib.Pformat(event))
	lib.Logger.Println("website path:", h.Config.WebsiteDir)

	data, err := readIndex(h.Config.WebsiteDir)
	if err != nil {
		lib.Logger.Println("error:", err)
		body := staticErrorBody{
			Error:   "Internal Server Error",
			Details: err.Error(),
		}
		if h.Config.Diagnostics {
			body.Path = h.Config.HandlerDir
		}
		return jsonResponse(http.StatusInternalServerError, staticHeaders("application/json"), body), nil
	}

	lib.Logger.Println("html content length:", humanize.Bytes(uint64(len(data))))
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    staticHeaders("text/html"),
		Body:       string(data),
	}, nil
}

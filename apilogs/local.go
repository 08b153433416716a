package apilogs

import (
	"context"
	"io"
	"net"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/nathants/apilogs/lib"
)

type proxyHandler func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// LocalMux routes plain http requests to the handlers the way api gateway
// does when deployed. Method checks are left to the handlers.
func (h *Handlers) LocalMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/{$}", serveProxy(h.Static))
	mux.Handle("/greet", serveProxy(h.Greet))
	mux.Handle("/logs", serveProxy(h.List))
	mux.Handle("/logs/{id}", serveProxy(h.Get))
	return mux
}

func serveProxy(handler proxyHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		event, err := ProxyRequest(r)
		if err != nil {
			lib.Logger.Println("error:", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		resp, err := handler(r.Context(), event)
		if err != nil {
			lib.Logger.Println("error:", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		for k, v := range resp.Headers {
			w.Header().Set(k, v)
		}
		w.WriteHeader(resp.StatusCode)
		_, err = io.WriteString(w, resp.Body)
		if err != nil {
			lib.Logger.Println("error:", err)
		}
	})
}

// ProxyRequest converts an http request into the event api gateway would
// have delivered for it.
func ProxyRequest(r *http.Request) (events.APIGatewayProxyRequest, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return events.APIGatewayProxyRequest{}, err
	}
	headers := map[string]string{}
	for k, vs := range r.Header {
		if len(vs) > 0 {
			headers[k] = vs[0]
		}
	}
	query := map[string]string{}
	for k, vs := range r.URL.Query() {
		if len(vs) > 0 {
			query[k] = vs[0]
		}
	}
	sourceIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		sourceIP = r.RemoteAddr
	}
	event := events.APIGatewayProxyRequest{
		Path:                  r.URL.Path,
		HTTPMethod:            r.Method,
		Headers:               headers,
		QueryStringParameters: query,
		Body:                  string(body),
		RequestContext: events.APIGatewayProxyRequestContext{
			Identity: events.APIGatewayRequestIdentity{
				SourceIP:  sourceIP,
				UserAgent: r.UserAgent(),
			},
		},
	}
	if id := r.PathValue("id"); id != "" {
		event.PathParameters = map[string]string{"id": id}
	}
	return event, nil
}

package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const RequestIdHeader = "X-Request-ID"

// RequestIdAttribute is the span attribute holding the request id.
const RequestIdAttribute = attribute.Key("http.request_id")

type requestIdKey struct{}

// RequestID takes the caller's X-Request-ID, or a fresh UUID when there is
// none, echoes it on the response, stores it in the request context and tags
// the active span with it.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIdHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIdHeader, id)

		ctx := r.Context()
		trace.SpanFromContext(ctx).SetAttributes(RequestIdAttribute.String(id))
		next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, requestIdKey{}, id)))
	})
}

func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIdKey{}).(string)
	return id
}

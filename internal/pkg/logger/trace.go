package logger

import (
	"context"
	log "log/slog"
)

// TraceIDKey 请求链路标识在 ctx 中的键
const TraceIDKey = "trace_id"

// WithTraceID 把链路标识塞进 ctx，后续日志自动带出
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// ContextHandler 在每条日志上补充 ctx 里的 trace_id
type ContextHandler struct {
	log.Handler
}

func (h *ContextHandler) Handle(ctx context.Context, r log.Record) error {
	if ctx != nil {
		if traceID, ok := ctx.Value(TraceIDKey).(string); ok {
			r.AddAttrs(log.String("trace_id", traceID))
		}
	}
	return h.Handler.Handle(ctx, r)
}

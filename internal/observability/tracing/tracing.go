package tracing

import (
	"context"
	"time"
)

type TracingContextKey string

const TracingInfoKey = TracingContextKey("requestTracingInfo")
const TraceIdKey = TracingContextKey("requestTraceId")

type SpanDetail struct {
	Name     string `json:"name"`
	Duration int64  `json:"duration_ms"`
}

type TracingInfo struct {
	SpanDetails []SpanDetail
}

func (t *TracingInfo) addSpanDetail(detail SpanDetail) {
	t.SpanDetails = append(t.SpanDetails, detail)
}

// AttachTracingInfo returns a context carrying a fresh TracingInfo. HTTP
// requests get one from the tracing middleware, queue handlers attach their own.
func AttachTracingInfo(ctx context.Context, traceId string) (context.Context, *TracingInfo) {
	info := &TracingInfo{}
	ctx = context.WithValue(ctx, TracingInfoKey, info)
	ctx = context.WithValue(ctx, TraceIdKey, traceId)
	return ctx, info
}

func TraceId(ctx context.Context) string {
	id, _ := ctx.Value(TraceIdKey).(string)
	return id
}

// WrapWithSpan records how long next took under name. Contexts without
// TracingInfo (monitor ticks) just run next.
func WrapWithSpan[Result any](ctx context.Context, name string, next func() (Result, error)) (Result, error) {
	tracingInfo, _ := ctx.Value(TracingInfoKey).(*TracingInfo)

	startTime := time.Now()
	defer func() {
		if tracingInfo != nil {
			duration := time.Since(startTime).Milliseconds()
			tracingInfo.addSpanDetail(SpanDetail{Name: name, Duration: duration})
		}
	}()

	return next()
}

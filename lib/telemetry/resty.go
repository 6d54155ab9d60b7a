package telemetry

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/semconv/v1.13.0/httpconv"
	"go.opentelemetry.io/otel/trace"
)

const (
	report_resty_request  = "resty.request"
	report_resty_response = "resty.response"
)

// headers whose values carry credentials and must never leave the process
var redactedHeaders = map[string]bool{
	"Cookie":        true,
	"Set-Cookie":    true,
	"Authorization": true,
}

type instrumentResty struct {
	tel       API
	tracer    trace.Tracer
	idcounter *uint64
}

// InstrumentResty traces every request made by the client with the global
// otel tracer and reports request/response pairs to tel as debug events.
// Bodies are never recorded.
func InstrumentResty(client *resty.Client, tracerName string, tel API) {
	var idcounter uint64
	i := instrumentResty{
		tel:       tel,
		tracer:    otel.Tracer(tracerName),
		idcounter: &idcounter,
	}

	client.OnBeforeRequest(i.onBeforeRequest)
	client.OnAfterResponse(i.onAfterResponse)
	client.OnError(i.onError)
}

type reqCtxKeyType int

var reqCtxKey reqCtxKeyType

type reqCtx struct {
	id        uint64
	startTime time.Time
}

func (i instrumentResty) onBeforeRequest(_ *resty.Client, req *resty.Request) error {
	ctx, _ := i.tracer.Start(req.Context(), fmt.Sprintf("http %s", req.Method))

	id := atomic.AddUint64(i.idcounter, 1)
	ctx = context.WithValue(ctx, reqCtxKey, reqCtx{
		id:        id,
		startTime: time.Now(),
	})
	i.tel.ReportDebug(report_resty_request, id, req.Method, req.URL)

	req.SetContext(ctx)
	return nil
}

func (i instrumentResty) onAfterResponse(_ *resty.Client, res *resty.Response) error {
	ctx := res.Request.Context()
	span := trace.SpanFromContext(ctx)
	defer span.End()

	if res.Request.RawRequest != nil {
		span.SetAttributes(httpconv.ClientRequest(res.Request.RawRequest)...)
	}
	if res.RawResponse != nil {
		span.SetAttributes(httpconv.ClientResponse(res.RawResponse)...)
	}

	var attrs []attribute.KeyValue
	headerAttributes(&attrs, "request", res.Request.Header)
	headerAttributes(&attrs, "response", res.Header())
	span.SetAttributes(attrs...)

	reqCtx, ok := ctx.Value(reqCtxKey).(reqCtx)
	if !ok {
		return nil
	}
	i.tel.ReportDebug(
		report_resty_response,
		reqCtx.id,
		time.Since(reqCtx.startTime).String(),
		res.Status(),
	)
	return nil
}

func (i instrumentResty) onError(req *resty.Request, err error) {
	ctx := req.Context()
	span := trace.SpanFromContext(ctx)
	defer span.End()

	span.SetStatus(codes.Error, err.Error())
	span.RecordError(err)
	if req.RawRequest != nil {
		span.SetAttributes(httpconv.ClientRequest(req.RawRequest)...)
	}

	var duration time.Duration
	reqCtx, ok := ctx.Value(reqCtxKey).(reqCtx)
	if ok {
		duration = time.Since(reqCtx.startTime)
	}
	i.tel.ReportBroken(
		report_resty_response,
		err,
		req.Method,
		req.URL,
		duration,
	)
}

func headerAttributes(out *[]attribute.KeyValue, prefix string, headers http.Header) {
	for header, values := range headers {
		if redactedHeaders[http.CanonicalHeaderKey(header)] {
			*out = append(*out, attribute.KeyValue{
				Key:   attribute.Key(fmt.Sprintf("%s/header: %s", prefix, header)),
				Value: attribute.StringValue("<redacted>"),
			})
			continue
		}
		*out = append(*out, attribute.KeyValue{
			Key:   attribute.Key(fmt.Sprintf("%s/header: %s", prefix, header)),
			Value: attribute.StringValue(strings.Join(values, ", ")),
		})
	}
}

package baseclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/suistake/bridge-saga-service/internal/observability/metrics"
	"github.com/suistake/bridge-saga-service/internal/types"
)

// maxErrorBodyBytes bounds how much of a failed upstream response is logged.
const maxErrorBodyBytes = 512

var allowedMethods = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodDelete: true,
}

type BaseClient interface {
	// GetName labels the client in the outgoing request metrics.
	GetName() string
	GetBaseURL() string
	GetDefaultRequestTimeout() time.Duration
	GetHttpClient() *http.Client
}

type BaseClientOptions struct {
	Timeout time.Duration
	Path    string
	Headers map[string]string
	// Method label for metrics, defaults to the path.
	Label string
}

// SendRequest sends input as JSON and decodes a JSON response into R.
// Upstream failures come back as 502 GATEWAY_ERROR, deadlines as
// REQUEST_TIMEOUT and a 404 as NOT_FOUND, so sagas can tell them apart.
func SendRequest[I any, R any](
	ctx context.Context, client BaseClient, method string, opts *BaseClientOptions, input *I,
) (*R, *types.Error) {
	label := opts.Label
	if label == "" {
		label = opts.Path
	}
	done := metrics.StartClientRequestDurationTimer(client.GetName(), label)
	output, err := sendRequest[I, R](ctx, client, method, opts, input)
	if err != nil {
		done(err)
		return nil, err
	}
	done(nil)
	return output, nil
}

func sendRequest[I any, R any](
	ctx context.Context, client BaseClient, method string, opts *BaseClientOptions, input *I,
) (*R, *types.Error) {
	if !allowedMethods[method] {
		return nil, types.NewInternalServiceError(fmt.Errorf("method %s is not allowed", method))
	}
	url := client.GetBaseURL() + opts.Path
	timeout := client.GetDefaultRequestTimeout()
	if opts.Timeout != 0 {
		timeout = opts.Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := newRequest(ctx, method, url, input)
	if err != nil {
		return nil, types.NewInternalServiceError(err)
	}
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := client.GetHttpClient().Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, types.NewErrorWithMsg(
				http.StatusRequestTimeout, types.RequestTimeout,
				fmt.Sprintf("request timeout after %s at %s", timeout, url),
			)
		}
		log.Ctx(ctx).Error().Err(err).Str("client", client.GetName()).Msgf("failed to send request to %s", url)
		return nil, types.NewErrorWithMsg(
			http.StatusBadGateway, types.GatewayError, fmt.Sprintf("failed to send request to %s", url),
		)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, upstreamError(ctx, client.GetName(), url, resp)
	}

	var output R
	if err := json.NewDecoder(resp.Body).Decode(&output); err != nil {
		return nil, types.NewErrorWithMsg(
			http.StatusBadGateway, types.GatewayError, fmt.Sprintf("failed to decode response from %s", url),
		)
	}
	return &output, nil
}

func newRequest[I any](ctx context.Context, method, url string, input *I) (*http.Request, error) {
	if input == nil || (method != http.MethodPost && method != http.MethodPut) {
		return http.NewRequestWithContext(ctx, method, url, nil)
	}
	body, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func upstreamError(ctx context.Context, name, url string, resp *http.Response) *types.Error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	log.Ctx(ctx).Warn().
		Str("client", name).
		Int("status", resp.StatusCode).
		Str("body", string(snippet)).
		Msgf("upstream call to %s failed", url)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return types.NewErrorWithMsg(
			http.StatusNotFound, types.NotFound, fmt.Sprintf("resource not found when calling %s", url),
		)
	case resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests:
		return types.NewErrorWithMsg(
			http.StatusBadGateway, types.GatewayError,
			fmt.Sprintf("upstream returned %d when calling %s", resp.StatusCode, url),
		)
	default:
		return types.NewErrorWithMsg(
			resp.StatusCode, types.BadRequest, fmt.Sprintf("client error when calling %s", url),
		)
	}
}

type jsonRpcRequest struct {
	JsonRpc string `json:"jsonrpc"`
	Id      int64  `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type JsonRpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type jsonRpcResponse[R any] struct {
	Id     int64         `json:"id"`
	Result *R            `json:"result"`
	Error  *JsonRpcError `json:"error"`
}

var rpcRequestId atomic.Int64

// CallJsonRpc posts a JSON-RPC 2.0 request to the client's base URL.
// A response carrying an error object or no result is reported as a gateway error.
func CallJsonRpc[R any](
	ctx context.Context, client BaseClient, headers map[string]string, method string, params ...any,
) (*R, *types.Error) {
	if params == nil {
		params = []any{}
	}
	request := &jsonRpcRequest{
		JsonRpc: "2.0",
		Id:      rpcRequestId.Add(1),
		Method:  method,
		Params:  params,
	}
	opts := &BaseClientOptions{
		Headers: headers,
		Label:   method,
	}
	resp, err := SendRequest[jsonRpcRequest, jsonRpcResponse[R]](
		ctx, client, http.MethodPost, opts, request,
	)
	if err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, types.NewErrorWithMsg(
			http.StatusBadGateway, types.GatewayError,
			fmt.Sprintf("%s failed with code %d: %s", method, resp.Error.Code, resp.Error.Message),
		)
	}
	if resp.Result == nil {
		return nil, types.NewErrorWithMsg(
			http.StatusBadGateway, types.GatewayError, fmt.Sprintf("%s returned no result", method),
		)
	}
	return resp.Result, nil
}

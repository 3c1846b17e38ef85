// Package transport executes built multirequest batches. The engine treats
// the executor as an injected collaborator: it shapes requests and
// interprets decoded payloads, but never owns sockets or retries.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/streamkit/ovp/internal/log"
	"github.com/streamkit/ovp/internal/ovpapi"
)

// Response is the single completion of one batch execution. Err is set on
// transport-level failure, in which case Data is empty.
type Response struct {
	StatusCode int
	Data       []byte
	Err        error
}

// Executor sends a built batch and invokes the completion exactly once.
// Implementations perform no retries; timeout policy belongs to the
// executor (or the caller's context), never to the resolution engine.
type Executor interface {
	Send(ctx context.Context, req *ovpapi.MultiRequest, completion func(Response))
}

// HTTPExecutor is the default Executor: one JSON POST per batch.
type HTTPExecutor struct {
	client *http.Client
	log    zerolog.Logger
}

// NewHTTPExecutor returns the default executor. A nil client falls back to
// http.DefaultClient.
func NewHTTPExecutor(client *http.Client) *HTTPExecutor {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPExecutor{
		client: client,
		log:    log.WithComponent("transport"),
	}
}

func (e *HTTPExecutor) Send(ctx context.Context, req *ovpapi.MultiRequest, completion func(Response)) {
	requestID := uuid.NewString()
	logger := e.log.With().Str(log.FieldRequestID, requestID).Logger()

	body, err := json.Marshal(req)
	if err != nil {
		completion(Response{Err: fmt.Errorf("encode batch: %w", err)})
		return
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.URL(), bytes.NewReader(body))
	if err != nil {
		completion(Response{Err: err})
		return
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	logger.Debug().
		Str(log.FieldBaseURL, req.URL()).
		Int("operations", req.Len()).
		Msg("sending multirequest")

	resp, err := e.client.Do(httpReq)
	if err != nil {
		completion(Response{Err: err})
		return
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		completion(Response{StatusCode: resp.StatusCode, Err: err})
		return
	}
	if resp.StatusCode != http.StatusOK {
		logger.Debug().Int(log.FieldStatus, resp.StatusCode).Msg("multirequest rejected")
		completion(Response{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %d", resp.StatusCode),
		})
		return
	}

	logger.Debug().Int(log.FieldStatus, resp.StatusCode).Int("bytes", len(data)).Msg("multirequest completed")
	completion(Response{StatusCode: resp.StatusCode, Data: data})
}

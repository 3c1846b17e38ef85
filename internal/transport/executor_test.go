package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamkit/ovp/internal/ovpapi"
)

func testBatch(baseURL string) *ovpapi.MultiRequest {
	return ovpapi.NewMultiRequest(baseURL + "/api_v3").Add(
		ovpapi.NewOperation("session", "startWidgetSession").Set("widgetId", "_101"),
	)
}

func TestHTTPExecutorSendsBatchAndCompletesOnce(t *testing.T) {
	var gotPath string
	var gotBody map[string]json.RawMessage

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotBody))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"objectType":"KalturaStartWidgetSessionResponse","ks":"anon"}]`))
	}))
	defer srv.Close()

	var completions []Response
	NewHTTPExecutor(srv.Client()).Send(context.Background(), testBatch(srv.URL), func(resp Response) {
		completions = append(completions, resp)
	})

	require.Len(t, completions, 1)
	resp := completions[0]
	require.NoError(t, resp.Err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(resp.Data), "anon")
	assert.Equal(t, "/api_v3/service/multirequest", gotPath)
	assert.Contains(t, gotBody, "1")
	assert.Contains(t, gotBody, "apiVersion")
}

func TestHTTPExecutorNon200IsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	var got Response
	NewHTTPExecutor(srv.Client()).Send(context.Background(), testBatch(srv.URL), func(resp Response) {
		got = resp
	})

	require.Error(t, got.Err)
	assert.Equal(t, http.StatusBadGateway, got.StatusCode)
	assert.Empty(t, got.Data)
}

func TestHTTPExecutorContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var got Response
	NewHTTPExecutor(srv.Client()).Send(ctx, testBatch(srv.URL), func(resp Response) {
		got = resp
	})
	require.Error(t, got.Err)
}

package compare_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"docr/internal/compare"
	"docr/internal/domain"
	"docr/internal/port"
)

func testCandidates() []domain.ComparisonCandidate {
	return []domain.ComparisonCandidate{
		{DocumentID: uuid.New(), FileName: "a.pdf", Text: "alpha"},
		{DocumentID: uuid.New(), FileName: "b.pdf", Text: "beta"},
	}
}

func TestCompare_ForwardsRequestAndReturnsResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]interface{}
		err := json.NewDecoder(r.Body).Decode(&body)
		assert.NoError(t, err)
		assert.Equal(t, "query text", body["text"])
		docs := body["documents"].([]interface{})
		assert.Len(t, docs, 2)
		first := docs[0].(map[string]interface{})
		assert.Equal(t, "alpha", first["extracted_text"])

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"best_match":"a.pdf","score":0.91}`))
	}))
	defer server.Close()

	client := compare.NewClientWithEndpoint(server.URL, 5*time.Second)

	result, err := client.Compare(context.Background(), port.ComparisonRequest{
		Text:       "query text",
		Candidates: testCandidates(),
	})

	assert.NoError(t, err)

	var parsed map[string]interface{}
	assert.NoError(t, json.Unmarshal(result, &parsed))
	assert.Equal(t, "a.pdf", parsed["best_match"])
}

func TestCompare_MissingInputFailsBeforeNetwork(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := compare.NewClientWithEndpoint(server.URL, 5*time.Second)

	_, err := client.Compare(context.Background(), port.ComparisonRequest{
		Text: "", Candidates: testCandidates(),
	})
	assert.ErrorIs(t, err, domain.ErrMissingComparisonInput)

	_, err = client.Compare(context.Background(), port.ComparisonRequest{
		Text: "query", Candidates: nil,
	})
	assert.ErrorIs(t, err, domain.ErrMissingComparisonInput)

	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestCompare_BackendFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := compare.NewClientWithEndpoint(server.URL, 5*time.Second)

	_, err := client.Compare(context.Background(), port.ComparisonRequest{
		Text: "query", Candidates: testCandidates(),
	})

	assert.ErrorIs(t, err, domain.ErrComparisonFailed)
	assert.Contains(t, err.Error(), "502")
}

func TestCompare_MalformedResponseBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`not valid json`))
	}))
	defer server.Close()

	client := compare.NewClientWithEndpoint(server.URL, 5*time.Second)

	_, err := client.Compare(context.Background(), port.ComparisonRequest{
		Text: "query", Candidates: testCandidates(),
	})

	assert.ErrorIs(t, err, domain.ErrComparisonFailed)
	assert.Contains(t, err.Error(), "malformed")
}

func TestCompare_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := compare.NewClientWithEndpoint(server.URL, 1*time.Second)

	_, err := client.Compare(context.Background(), port.ComparisonRequest{
		Text: "query", Candidates: testCandidates(),
	})

	assert.ErrorIs(t, err, domain.ErrComparisonFailed)
}

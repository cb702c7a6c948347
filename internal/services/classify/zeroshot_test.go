package classify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/ordino/internal/common"
)

func zeroShotClientFor(endpoint, token string) *ZeroShotClient {
	config := common.DefaultConfig()
	config.ZeroShot.Endpoint = endpoint
	config.ZeroShot.Token = token
	return NewZeroShotClient(config, common.GetLogger())
}

func TestZeroShotClient_Available(t *testing.T) {
	assert.True(t, zeroShotClientFor("http://example.invalid", "tok").Available())
	assert.False(t, zeroShotClientFor("http://example.invalid", "").Available())
	assert.False(t, zeroShotClientFor("", "tok").Available())
}

func TestZeroShotClient_Classify(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req zeroShotRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "текст статьи", req.Inputs)
		assert.True(t, req.Parameters.MultiLabel)
		assert.Equal(t, []string{"A", "B"}, req.Parameters.CandidateLabels)

		json.NewEncoder(w).Encode(zeroShotResponse{
			Labels: []string{"B", "A"},
			Scores: []float64{0.8, 0.2},
		})
	}))
	defer server.Close()

	c := zeroShotClientFor(server.URL, "tok")
	scores, err := c.Classify(context.Background(), "текст статьи", []string{"A", "B"})
	require.NoError(t, err)

	require.Len(t, scores, 2)
	assert.Equal(t, "B", scores[0].Label)
	assert.InDelta(t, 0.8, scores[0].Confidence, 1e-9)
}

func TestZeroShotClient_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"model loading"}`, http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := zeroShotClientFor(server.URL, "tok")
	_, err := c.Classify(context.Background(), "текст", []string{"A"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestZeroShotClient_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(zeroShotResponse{Labels: []string{"A", "B"}, Scores: []float64{0.5}})
	}))
	defer server.Close()

	c := zeroShotClientFor(server.URL, "tok")
	_, err := c.Classify(context.Background(), "текст", []string{"A", "B"})
	require.Error(t, err)
}

func TestZeroShotClient_Unconfigured(t *testing.T) {
	c := zeroShotClientFor("", "")
	_, err := c.Classify(context.Background(), "текст", []string{"A"})
	require.Error(t, err)
}

package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/fivetwenty-io/replicate-client/internal/client"
	"github.com/fivetwenty-io/replicate-client/pkg/replicate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredictionsClient_Get(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/predictions/pred-1", request.URL.Path)
		assert.Equal(t, "GET", request.Method)

		prediction := replicate.Prediction{
			ID:     "pred-1",
			Status: replicate.PredictionStatusProcessing,
		}

		_ = json.NewEncoder(writer).Encode(prediction)
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	prediction, err := client.Predictions().Get(context.Background(), "pred-1")
	require.NoError(t, err)
	assert.Equal(t, "pred-1", prediction.ID)
	assert.Equal(t, replicate.PredictionStatusProcessing, prediction.Status)
}

func TestPredictionsClient_Create_RequiresVersion(t *testing.T) {
	t.Parallel()

	client := NewTestClient("http://localhost:0")

	prediction, err := client.Predictions().Create(context.Background(), &replicate.PredictionCreateRequest{
		Input: map[string]interface{}{"prompt": "hi"},
	})

	require.Error(t, err)
	assert.Nil(t, prediction)
	require.ErrorIs(t, err, replicate.ErrVersionRequired)
}

func TestPredictionsClient_Create(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/predictions", request.URL.Path)
		assert.Equal(t, "POST", request.Method)

		var req replicate.PredictionCreateRequest

		_ = json.NewDecoder(request.Body).Decode(&req)
		assert.Equal(t, "v1", req.Version)
		assert.Equal(t, "hi", req.Input["prompt"])

		prediction := replicate.Prediction{
			ID:      "pred-1",
			Version: req.Version,
			Status:  replicate.PredictionStatusStarting,
		}

		writer.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(writer).Encode(prediction)
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	prediction, err := client.Predictions().Create(context.Background(), &replicate.PredictionCreateRequest{
		Version: "v1",
		Input:   map[string]interface{}{"prompt": "hi"},
	})

	require.NoError(t, err)
	assert.Equal(t, "pred-1", prediction.ID)
}

func TestPredictionsClient_CreateForModel_OfficialEndpoint(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/models/meta/llama/predictions", request.URL.Path)
		assert.Equal(t, "POST", request.Method)

		var body map[string]interface{}

		_ = json.NewDecoder(request.Body).Decode(&body)
		assert.NotContains(t, body, "version")

		prediction := replicate.Prediction{
			ID:     "pred-1",
			Model:  "meta/llama",
			Status: replicate.PredictionStatusStarting,
		}

		writer.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(writer).Encode(prediction)
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	prediction, err := client.Predictions().CreateForModel(context.Background(), replicate.ModelName("meta/llama"), &replicate.PredictionCreateRequest{
		Input: map[string]interface{}{"prompt": "hi"},
	})

	require.NoError(t, err)
	assert.Equal(t, "pred-1", prediction.ID)
}

func TestPredictionsClient_CreateForModel_ExplicitVersion(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		// A version supplied on the request wins over the reference and goes
		// through the standard endpoint; it is never dropped.
		assert.Equal(t, "/predictions", request.URL.Path)

		var req replicate.PredictionCreateRequest

		_ = json.NewDecoder(request.Body).Decode(&req)
		assert.Equal(t, "v9", req.Version)

		writer.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(writer).Encode(replicate.Prediction{ID: "pred-1", Version: req.Version})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	prediction, err := client.Predictions().CreateForModel(context.Background(),
		replicate.ModelName("meta/llama"),
		&replicate.PredictionCreateRequest{
			Version: "v9",
			Input:   map[string]interface{}{"prompt": "hi"},
		})

	require.NoError(t, err)
	assert.Equal(t, "v9", prediction.Version)
}

func TestPredictionsClient_CreateForModel_HandleWithVersion(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		// A handle that already carries a version goes through the standard
		// endpoint, never the official-model one.
		assert.Equal(t, "/predictions", request.URL.Path)

		var req replicate.PredictionCreateRequest

		_ = json.NewDecoder(request.Body).Decode(&req)
		assert.Equal(t, "v1", req.Version)

		prediction := replicate.Prediction{ID: "pred-1", Version: req.Version}

		writer.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(writer).Encode(prediction)
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	handle := &replicate.Model{
		Owner:         "meta",
		Name:          "llama",
		LatestVersion: &replicate.ModelVersion{ID: "v1"},
	}

	request := &replicate.PredictionCreateRequest{Input: map[string]interface{}{"prompt": "hi"}}

	prediction, err := client.Predictions().CreateForModel(context.Background(), handle, request)
	require.NoError(t, err)
	assert.Equal(t, "pred-1", prediction.ID)

	// The caller's request is not mutated by the routing decision.
	assert.Empty(t, request.Version)
}

func TestPredictionsClient_Create_DefaultWebhook(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		requestWebhook  string
		expectedWebhook string
	}{
		{
			name:            "default applied when absent",
			requestWebhook:  "",
			expectedWebhook: "https://hooks.example.com/default",
		},
		{
			name:            "explicit webhook wins",
			requestWebhook:  "https://hooks.example.com/mine",
			expectedWebhook: "https://hooks.example.com/mine",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				var req replicate.PredictionCreateRequest

				_ = json.NewDecoder(request.Body).Decode(&req)
				assert.Equal(t, testCase.expectedWebhook, req.Webhook)

				writer.WriteHeader(http.StatusCreated)
				_ = json.NewEncoder(writer).Encode(replicate.Prediction{ID: "pred-1"})
			}))
			defer server.Close()

			client, err := New(&replicate.Config{
				BaseURL:           server.URL,
				DefaultWebhookURL: "https://hooks.example.com/default",
			})
			require.NoError(t, err)

			request := &replicate.PredictionCreateRequest{
				Version: "v1",
				Webhook: testCase.requestWebhook,
			}

			_, err = client.Predictions().Create(context.Background(), request)
			require.NoError(t, err)

			// The caller's request is never mutated.
			assert.Equal(t, testCase.requestWebhook, request.Webhook)
		})
	}
}

func TestPredictionsClient_Cancel(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/predictions/pred-1/cancel", request.URL.Path)
		assert.Equal(t, "POST", request.Method)

		prediction := replicate.Prediction{
			ID:     "pred-1",
			Status: replicate.PredictionStatusCanceled,
		}

		_ = json.NewEncoder(writer).Encode(prediction)
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	prediction, err := client.Predictions().Cancel(context.Background(), "pred-1")
	require.NoError(t, err)
	assert.Equal(t, replicate.PredictionStatusCanceled, prediction.Status)
}

func TestPredictionsClient_Wait(t *testing.T) {
	t.Parallel()

	var polls int

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		polls++

		status := replicate.PredictionStatusProcessing
		if polls >= 3 {
			status = replicate.PredictionStatusSucceeded
		}

		_ = json.NewEncoder(writer).Encode(replicate.Prediction{ID: "pred-1", Status: status})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	prediction, err := client.Predictions().Wait(context.Background(), "pred-1", time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, replicate.PredictionStatusSucceeded, prediction.Status)
	assert.Equal(t, 3, polls)
}

func TestPredictionsClient_Wait_ContextCanceled(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_ = json.NewEncoder(writer).Encode(replicate.Prediction{
			ID:     "pred-1",
			Status: replicate.PredictionStatusProcessing,
		})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	prediction, err := client.Predictions().Wait(ctx, "pred-1", time.Hour)
	require.Error(t, err)
	require.True(t, errors.Is(err, context.DeadlineExceeded))

	// The last observed snapshot is still returned alongside the error.
	require.NotNil(t, prediction)
	assert.Equal(t, replicate.PredictionStatusProcessing, prediction.Status)
}

package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	replicatehttp "github.com/fivetwenty-io/replicate-client/internal/http"
	"github.com/fivetwenty-io/replicate-client/pkg/replicate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockTokenManager for testing.
type MockTokenManager struct {
	token string
	err   error
}

func (m *MockTokenManager) GetToken(ctx context.Context) (string, error) {
	return m.token, m.err
}

func (m *MockTokenManager) SetToken(token string) {
	m.token = token
}

// MockLogger for testing.
type MockLogger struct {
	logs []map[string]interface{}
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "debug", "msg": msg, "fields": fields})
}

func (l *MockLogger) Info(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "info", "msg": msg, "fields": fields})
}

func (l *MockLogger) Warn(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "warn", "msg": msg, "fields": fields})
}

func (l *MockLogger) Error(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "error", "msg": msg, "fields": fields})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Do(t *testing.T) {
	t.Parallel()
	t.Run("successful request", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/models", request.URL.Path)
			assert.Equal(t, "GET", request.Method)
			assert.Equal(t, "Bearer r8_test", request.Header.Get("Authorization"))
			assert.Equal(t, "application/json", request.Header.Get("Accept"))

			response := map[string]string{"owner": "acme", "name": "flan"}
			_ = json.NewEncoder(writer).Encode(response)
		}))
		defer server.Close()

		tokenManager := &MockTokenManager{token: "r8_test"}
		client := replicatehttp.NewClient(server.URL, tokenManager)

		req := &replicatehttp.Request{
			Method: "GET",
			Path:   "/models",
		}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var result map[string]string

		err = json.Unmarshal(resp.Body, &result)
		require.NoError(t, err)
		assert.Equal(t, "acme", result["owner"])
	})

	t.Run("no token manager sends no authorization", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Empty(t, request.Header.Get("Authorization"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := replicatehttp.NewClient(server.URL, nil)

		_, err := client.Get(context.Background(), "/models", nil)
		require.NoError(t, err)
	})

	t.Run("token manager error aborts request", func(t *testing.T) {
		t.Parallel()

		tokenManager := &MockTokenManager{err: errors.New("token store unavailable")}
		client := replicatehttp.NewClient("http://localhost:0", tokenManager)

		resp, err := client.Get(context.Background(), "/models", nil)
		require.Error(t, err)
		assert.Nil(t, resp)
		assert.Contains(t, err.Error(), "getting access token")
	})

	t.Run("request with query parameters", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/models", request.URL.Path)
			assert.Equal(t, "cursor=abc123", request.URL.RawQuery)
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := replicatehttp.NewClient(server.URL, nil)

		req := &replicatehttp.Request{
			Method: "GET",
			Path:   "/models",
			Query:  url.Values{"cursor": []string{"abc123"}},
		}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("request with body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "POST", request.Method)
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

			var body map[string]string

			_ = json.NewDecoder(request.Body).Decode(&body)
			assert.Equal(t, "v1", body["version"])

			writer.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		client := replicatehttp.NewClient(server.URL, nil)

		req := &replicatehttp.Request{
			Method: "POST",
			Path:   "/predictions",
			Body:   map[string]string{"version": "v1"},
		}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode)
	})

	t.Run("optional fields are pruned not nulled", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			var body map[string]interface{}

			_ = json.NewDecoder(request.Body).Decode(&body)
			assert.NotContains(t, body, "webhook")
			assert.NotContains(t, body, "webhook_events_filter")

			writer.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		client := replicatehttp.NewClient(server.URL, nil)

		_, err := client.Post(context.Background(), "/predictions", &replicate.PredictionCreateRequest{
			Version: "v1",
			Input:   map[string]interface{}{"prompt": "hi"},
		})
		require.NoError(t, err)
	})

	t.Run("error response", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(writer).Encode(map[string]string{
				"detail": "The requested resource could not be found.",
			})
		}))
		defer server.Close()

		client := replicatehttp.NewClient(server.URL, nil)

		req := &replicatehttp.Request{
			Method: "GET",
			Path:   "/models/acme/missing",
		}

		resp, err := client.Do(context.Background(), req)
		require.Error(t, err)

		// The response is returned alongside the typed error.
		require.NotNil(t, resp)
		assert.Equal(t, 404, resp.StatusCode)

		apiErr := &replicate.APIError{}
		ok := errors.As(err, &apiErr)
		require.True(t, ok)
		assert.Equal(t, 404, apiErr.Status)
		assert.Equal(t, "The requested resource could not be found.", apiErr.Detail)
		assert.True(t, replicate.IsNotFound(err))
	})

	t.Run("custom headers", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "custom-value", request.Header.Get("X-Custom-Header"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := replicatehttp.NewClient(server.URL, nil)

		req := &replicatehttp.Request{
			Method: "GET",
			Path:   "/models",
			Headers: map[string]string{
				"X-Custom-Header": "custom-value",
			},
		}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("with debug logging", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusOK)
			_ = json.NewEncoder(writer).Encode(map[string]string{"result": "ok"})
		}))
		defer server.Close()

		logger := &MockLogger{}
		client := replicatehttp.NewClient(server.URL, nil, replicatehttp.WithLogger(logger), replicatehttp.WithDebug(true))

		_, err := client.Get(context.Background(), "/models", nil)
		require.NoError(t, err)

		require.Len(t, logger.logs, 2)
		assert.Equal(t, "HTTP Request", logger.logs[0]["msg"])
		assert.Equal(t, "HTTP Response", logger.logs[1]["msg"])
	})

	t.Run("custom user agent", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "my-agent/1.0", request.Header.Get("User-Agent"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := replicatehttp.NewClient(server.URL, nil, replicatehttp.WithUserAgent("my-agent/1.0"))

		_, err := client.Get(context.Background(), "/models", nil)
		require.NoError(t, err)
	})
}

func TestClient_Methods(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		method string
		call   func(*replicatehttp.Client, string) (*replicatehttp.Response, error)
	}{
		{
			name:   "Get",
			method: "GET",
			call: func(client *replicatehttp.Client, path string) (*replicatehttp.Response, error) {
				return client.Get(context.Background(), path, nil)
			},
		},
		{
			name:   "Post",
			method: "POST",
			call: func(client *replicatehttp.Client, path string) (*replicatehttp.Response, error) {
				return client.Post(context.Background(), path, map[string]string{"key": "value"})
			},
		},
		{
			name:   "Patch",
			method: "PATCH",
			call: func(client *replicatehttp.Client, path string) (*replicatehttp.Response, error) {
				return client.Patch(context.Background(), path, map[string]string{"key": "value"})
			},
		},
		{
			name:   "Delete",
			method: "DELETE",
			call: func(client *replicatehttp.Client, path string) (*replicatehttp.Response, error) {
				return client.Delete(context.Background(), path)
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.method, request.Method)
				assert.Equal(t, "/resource", request.URL.Path)
				writer.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			client := replicatehttp.NewClient(server.URL, nil)

			resp, err := testCase.call(client, "/resource")
			require.NoError(t, err)
			assert.Equal(t, 200, resp.StatusCode)
		})
	}
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/models", request.URL.Path)
		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := replicatehttp.NewClient(server.URL+"/", nil)

	_, err := client.Get(context.Background(), "/models", nil)
	require.NoError(t, err)
}

package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/fivetwenty-io/replicate-client/internal/client"
	"github.com/fivetwenty-io/replicate-client/pkg/replicate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelsClient_Create(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/models", request.URL.Path)
		assert.Equal(t, "POST", request.Method)

		var req replicate.ModelCreateRequest

		_ = json.NewDecoder(request.Body).Decode(&req)
		assert.Equal(t, "acme", req.Owner)
		assert.Equal(t, "flan", req.Name)

		model := replicate.Model{
			Owner:      req.Owner,
			Name:       req.Name,
			Visibility: req.Visibility,
		}

		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(writer).Encode(model)
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	model, err := client.Models().Create(context.Background(), &replicate.ModelCreateRequest{
		Owner:      "acme",
		Name:       "flan",
		Visibility: "private",
		Hardware:   "cpu",
	})

	require.NoError(t, err)
	assert.Equal(t, "acme", model.Owner)
	assert.Equal(t, "flan", model.Name)
}

func TestModelsClient_Get(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/models/acme/flan", request.URL.Path)
		assert.Equal(t, "GET", request.Method)

		model := replicate.Model{
			Owner:      "acme",
			Name:       "flan",
			Visibility: "public",
			LatestVersion: &replicate.ModelVersion{
				ID:        "v1",
				CreatedAt: time.Now(),
			},
		}

		_ = json.NewEncoder(writer).Encode(model)
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	model, err := client.Models().Get(context.Background(), "acme", "flan")
	require.NoError(t, err)
	assert.Equal(t, "acme", model.Owner)
	require.NotNil(t, model.LatestVersion)
	assert.Equal(t, "v1", model.LatestVersion.ID)
}

func TestModelsClient_Get_NotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(writer).Encode(map[string]string{"detail": "The requested resource could not be found."})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	model, err := client.Models().Get(context.Background(), "acme", "missing")
	require.Error(t, err)
	assert.Nil(t, model)
	assert.True(t, replicate.IsNotFound(err))
}

func TestModelsClient_Find_NotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	model, err := client.Models().Find(context.Background(), "acme", "missing")
	require.NoError(t, err)
	assert.Nil(t, model)
}

func TestModelsClient_Find_OtherErrorsPropagate(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	model, err := client.Models().Find(context.Background(), "acme", "flan")
	require.Error(t, err)
	assert.Nil(t, model)
	assert.True(t, replicate.IsUnauthorized(err))
}

func TestModelsClient_List(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/models", request.URL.Path)
		assert.Equal(t, "GET", request.Method)
		assert.Equal(t, "abc", request.URL.Query().Get("cursor"))

		response := replicate.ModelList{
			Results: []replicate.Model{
				{Owner: "acme", Name: "flan"},
				{Owner: "acme", Name: "llama"},
			},
		}

		_ = json.NewEncoder(writer).Encode(response)
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	result, err := client.Models().List(context.Background(), &replicate.ListOptions{Cursor: "abc"})
	require.NoError(t, err)
	assert.Len(t, result.Results, 2)
	assert.Equal(t, "flan", result.Results[0].Name)
}

func TestModelsClient_All(t *testing.T) {
	t.Parallel()

	var requests int

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		requests++

		switch request.URL.Query().Get("cursor") {
		case "":
			next := "https://api.example.com/v1/models?cursor=page2"
			response := replicate.ModelList{
				Results: []replicate.Model{{Name: "one"}, {Name: "two"}},
				Next:    &next,
			}
			_ = json.NewEncoder(writer).Encode(response)
		case "page2":
			response := replicate.ModelList{
				Results: []replicate.Model{{Name: "three"}},
			}
			_ = json.NewEncoder(writer).Encode(response)
		default:
			writer.WriteHeader(http.StatusBadRequest)
		}
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	models, err := client.Models().All(context.Background()).All()
	require.NoError(t, err)
	require.Len(t, models, 3)
	assert.Equal(t, "one", models[0].Name)
	assert.Equal(t, "two", models[1].Name)
	assert.Equal(t, "three", models[2].Name)
	assert.Equal(t, 2, requests)
}

func TestModelsClient_Delete(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/models/acme/flan", request.URL.Path)
		assert.Equal(t, "DELETE", request.Method)
		writer.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	err := client.Models().Delete(context.Background(), "acme", "flan")
	require.NoError(t, err)
}

package supabase

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rest/v1/widgets", r.URL.Path)
		require.Equal(t, "*", r.URL.Query().Get("select"))
		require.Equal(t, "QWERTY", r.Header.Get("apikey"))
		require.Equal(t, "Bearer QWERTY", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"name":"a"},{"id":2,"name":"b"}]`))
	}))

	defer server.Close()

	client := NewClient(server.URL, "QWERTY")

	records, err := client.Fetch(context.Background(), "widgets")
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, []string{"id", "name"}, records[0].Fields())
}

func TestFetchEmptyTable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))

	defer server.Close()

	client := NewClient(server.URL, "QWERTY")

	records, err := client.Fetch(context.Background(), "widgets")
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestFetchErrorKeepsResponseBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"JWT expired"}`))
	}))

	defer server.Close()

	client := NewClient(server.URL, "QWERTY")

	_, err := client.Fetch(context.Background(), "widgets")

	fetchErr := &FetchError{}
	require.ErrorAs(t, err, &fetchErr)
	require.Equal(t, http.StatusUnauthorized, fetchErr.Status)
	require.Equal(t, `{"message":"JWT expired"}`, string(fetchErr.Body))
}

func TestFetchDecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))

	defer server.Close()

	client := NewClient(server.URL, "QWERTY")

	_, err := client.Fetch(context.Background(), "widgets")

	decodeErr := &DecodeError{}
	require.ErrorAs(t, err, &decodeErr)
	require.False(t, errors.As(err, new(*FetchError)))
}

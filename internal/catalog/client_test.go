package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_FetchTerm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/courses/1261.json", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[
			{"subject":"MATH","catalog_number":"135","title":"Algebra","term_id":"1261"},
			{"subject":"CS","catalog_number":"136","title":"Elementary Algorithm Design","term_id":"1261"}
		]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret", 5*time.Second)
	courses, err := client.FetchTerm(context.Background(), "1261")
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "MATH", courses[0].Subject)
	assert.Equal(t, "135", courses[0].CatalogNumber)
	assert.Equal(t, "Elementary Algorithm Design", courses[1].Title)
}

func TestClient_FetchTerm_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "wrong", 5*time.Second)
	_, err := client.FetchTerm(context.Background(), "1261")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestClient_FetchTerm_ContextCancelled(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := NewClient(srv.URL, "k", 5*time.Second)
	_, err := client.FetchTerm(ctx, "1261")
	require.Error(t, err)
}

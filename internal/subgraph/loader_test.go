package subgraph

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path"
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	testlogr "github.com/go-logr/logr/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvakame/fedecompose/internal/log"
)

func newServiceSDLServer(t *testing.T, sdl string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Query string `json:"query"`
		}
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if params.Query != serviceSDLQuery {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{
				"_service": map[string]interface{}{
					"sdl": sdl,
				},
			},
		})
	}))
	t.Cleanup(server.Close)

	return server
}

func TestLoad(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ctx = log.WithLogger(ctx, testlogr.NewTestLogger(t))

	dir := t.TempDir()
	filePath := path.Join(dir, "reviews.graphqls")
	require.NoError(t, os.WriteFile(filePath, []byte(heredoc.Doc(`
		type Review {
		  body: String
		}
	`)), 0644))

	server := newServiceSDLServer(t, heredoc.Doc(`
		type Query {
		  me: User
		}
		type User {
		  id: ID!
		}
	`))

	services, err := Load(ctx, []*Definition{
		{Name: "accounts", URL: server.URL, Source: &RemoteSource{URL: server.URL}},
		{Name: "reviews", Source: &FileSource{Path: filePath}},
		{Name: "inline", Source: StaticSource(`scalar Date`)},
	}, 2)
	require.NoError(t, err)
	require.Len(t, services, 3)

	assert.Equal(t, "accounts", services[0].Name)
	assert.Equal(t, server.URL, services[0].URL)
	assert.NotNil(t, services[0].TypeDefs.Definitions.ForName("User"))
	assert.Equal(t, "reviews", services[1].Name)
	assert.NotNil(t, services[1].TypeDefs.Definitions.ForName("Review"))
	assert.NotNil(t, services[2].TypeDefs.Definitions.ForName("Date"))
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ctx = log.WithLogger(ctx, testlogr.NewTestLogger(t))

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(failing.Close)

	tests := []struct {
		name string
		defs []*Definition
	}{
		{
			name: "no subgraph",
		},
		{
			name: "duplicated name",
			defs: []*Definition{
				{Name: "a", Source: StaticSource(`scalar A`)},
				{Name: "a", Source: StaticSource(`scalar B`)},
			},
		},
		{
			name: "missing source",
			defs: []*Definition{{Name: "a"}},
		},
		{
			name: "missing file",
			defs: []*Definition{{Name: "a", Source: &FileSource{Path: path.Join(t.TempDir(), "missing.graphqls")}}},
		},
		{
			name: "invalid sdl",
			defs: []*Definition{{Name: "a", Source: StaticSource(`type {`)}},
		},
		{
			name: "remote failure",
			defs: []*Definition{{Name: "a", Source: &RemoteSource{URL: failing.URL}}},
		},
		{
			name: "remote without sdl",
			defs: []*Definition{{Name: "a", Source: &RemoteSource{URL: newServiceSDLServer(t, "").URL}}},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Load(ctx, tt.defs, 0)
			assert.Error(t, err)
		})
	}
}

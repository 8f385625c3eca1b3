package subgraph

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

func TestRemoteSourceFetchSDL(t *testing.T) {
	t.Parallel()

	server := newServiceSDLServer(t, "type Query { a: String }")

	sdl, err := (&RemoteSource{URL: server.URL, Client: server.Client()}).FetchSDL(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "type Query { a: String }", sdl)
}

func TestRemoteSourceGraphQLErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"errors":[{"message":"Cannot query field \"_service\" on type \"Query\"."}],"data":null}`))
	}))
	t.Cleanup(server.Close)

	_, err := (&RemoteSource{URL: server.URL}).FetchSDL(context.Background())
	require.Error(t, err)

	var list gqlerror.List
	require.ErrorAs(t, err, &list)
	require.Len(t, list, 1)
	assert.Contains(t, list[0].Message, "_service")
}

func TestStaticSourceFetchSDL(t *testing.T) {
	t.Parallel()

	sdl, err := StaticSource("scalar Date").FetchSDL(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "scalar Date", sdl)
}

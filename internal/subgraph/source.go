package subgraph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

// Source provides the SDL of one subgraph.
type Source interface {
	FetchSDL(ctx context.Context) (string, error)
}

var (
	_ Source = (*FileSource)(nil)
	_ Source = (*RemoteSource)(nil)
	_ Source = StaticSource("")
)

// StaticSource is an SDL held in memory.
type StaticSource string

func (s StaticSource) FetchSDL(ctx context.Context) (string, error) {
	return string(s), nil
}

// FileSource reads the SDL from a local file.
type FileSource struct {
	Path string
}

func (s *FileSource) FetchSDL(ctx context.Context) (string, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// RemoteSource asks a running subgraph for its SDL with the `_service { sdl }` query.
type RemoteSource struct {
	URL    string
	Client *http.Client
}

const serviceSDLQuery = `{ _service { sdl } }`

func (s *RemoteSource) FetchSDL(ctx context.Context) (string, error) {
	hc := s.Client
	if hc == nil {
		hc = http.DefaultClient
	}

	type RawParams struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName,omitempty"`
		Variables     map[string]interface{} `json:"variables,omitempty"`
	}

	b, err := json.Marshal(&RawParams{Query: serviceSDLQuery})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewBuffer(b))
	if err != nil {
		return "", err
	}
	req.Header.Add("Content-Type", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	b, err = io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected response code from %s: %d", s.URL, resp.StatusCode)
	}

	gqlResp := &graphql.Response{}
	err = json.Unmarshal(b, gqlResp)
	if err != nil {
		return "", err
	}
	if len(gqlResp.Errors) != 0 {
		return "", gqlResp.Errors
	}

	type Resp struct {
		Service struct {
			SDL string `json:"sdl"`
		} `json:"_service"`
	}

	v := &Resp{}
	err = json.Unmarshal(gqlResp.Data, v)
	if err != nil {
		return "", gqlerror.List{gqlerror.Errorf("%s", err.Error())}
	}

	if v.Service.SDL == "" {
		return "", gqlerror.List{gqlerror.Errorf("sdl fetch failed from %s", s.URL)}
	}

	return v.Service.SDL, nil
}

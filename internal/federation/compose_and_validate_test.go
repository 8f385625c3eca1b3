package federation

import (
	"context"
	"encoding/json"
	"os"
	"path"
	"sort"
	"strings"
	"testing"

	testlogr "github.com/go-logr/logr/testing"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
	"github.com/vvakame/fedecompose/internal/log"
	"github.com/vvakame/fedecompose/internal/testutils"
)

func TestComposeAndValidate(t *testing.T) {
	t.Parallel()

	const testFileDir = "./_testdata/composeAndValidate/assets"
	expectFileDir := "./_testdata/composeAndValidate/expected"

	dirs, err := os.ReadDir(testFileDir)
	if err != nil {
		t.Fatal(err)
	}

	for _, dir := range dirs {
		if !dir.IsDir() {
			continue
		}
		dir := dir

		t.Run(dir.Name(), func(t *testing.T) {
			t.Parallel()

			dirPath := path.Join(testFileDir, dir.Name())
			files, err := os.ReadDir(dirPath)
			if err != nil {
				t.Fatal(err)
			}

			opts := &Options{}
			var serviceDefs []*ServiceDefinition
			for _, file := range files {
				if file.IsDir() {
					continue
				} else if !strings.HasSuffix(file.Name(), ".graphqls") {
					continue
				}

				filePath := path.Join(dirPath, file.Name())
				b, err := os.ReadFile(filePath)
				if err != nil {
					t.Fatal(err)
				}

				if testutils.FindOptionBool(t, "skip", string(b)) {
					t.Logf("test case skip by %s", filePath)
					t.SkipNow()
				}

				name := testutils.FindOptionString(t, "name", string(b))
				if name == "" {
					t.Fatalf("option:name is not exists on %s", filePath)
				}
				urlValue := testutils.FindOptionString(t, "url", string(b))

				opts.ExposeDirectives = append(opts.ExposeDirectives, testutils.FindOptionStrings(t, "expose", string(b))...)
				if testutils.FindOptionBool(t, "sort", string(b)) {
					opts.SortSchema = true
				}
				if v := testutils.FindOptionString(t, "builtins", string(b)); v != "" {
					policy, err := ParseBuiltInDirectivesPolicy(v)
					if err != nil {
						t.Fatal(err)
					}
					opts.BuiltInDirectives = policy
				}

				schemaDoc, gErr := parser.ParseSchema(&ast.Source{
					Name:  file.Name(),
					Input: string(b),
				})
				if gErr != nil {
					t.Fatal(gErr)
				}

				serviceDefs = append(serviceDefs, &ServiceDefinition{
					TypeDefs: schemaDoc,
					Name:     name,
					URL:      urlValue,
				})
			}
			sort.SliceStable(serviceDefs, func(i, j int) bool {
				return serviceDefs[i].Name < serviceDefs[j].Name
			})

			if len(serviceDefs) == 0 {
				t.Logf("%s doesn't have testing assets", dirPath)
				t.SkipNow()
			}

			ctx := context.Background()
			ctx = log.WithLogger(ctx, testlogr.NewTestLogger(t))

			result, err := ComposeAndValidate(ctx, serviceDefs, opts)
			if err != nil {
				if result.Schema != nil {
					t.Error("schema must be nil when composition fails")
				}
				b, err := json.MarshalIndent(result.Errors, "", "  ")
				if err != nil {
					t.Fatal(err)
				}

				testutils.CheckGoldenFile(t, b, path.Join(expectFileDir, dir.Name()+".error.json"))
				return
			}

			testutils.CheckGoldenFile(t, []byte(result.SupergraphSDL), path.Join(expectFileDir, dir.Name()+".graphqls"))
			if len(result.Hints) != 0 {
				testutils.CheckGoldenYAML(t, result.Hints, path.Join(expectFileDir, dir.Name()+".hints.yaml"))
			}
		})
	}
}

package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veritext/veritext"
	main "github.com/veritext/veritext/cmd/veritext"
)

const pageHTML = `<!DOCTYPE html>
<html>
<head><title>Obra da ponte entra na fase final</title></head>
<body>
<main>
<article>
<p>A obra da nova ponte sobre o rio entrou na fase final nesta semana, com a instalação das últimas vigas metálicas do vão central.</p>
<p>Segundo a concessionária responsável, o tráfego deve ser liberado nos dois sentidos até o fim do próximo mês, antes do prazo contratual.</p>
</article>
</main>
</body>
</html>`

func servePage(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, pageHTML)
	}))
}

func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("shows help with no arguments", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(), nil, stdout, stderr)

		require.Error(t, err)
		assert.Contains(t, stdout.String(), "veritext")
	})

	t.Run("help flag succeeds", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		err := main.NewMain().Run(context.Background(), []string{"--help"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Extract readable article text")
	})

	t.Run("rejects unknown flags", func(t *testing.T) {
		t.Parallel()

		err := main.NewMain().Run(context.Background(), []string{"--bogus"}, &bytes.Buffer{}, &bytes.Buffer{})
		require.Error(t, err)
	})

	t.Run("extracts a URL to JSON output", func(t *testing.T) {
		t.Parallel()

		srv := servePage(t)
		defer srv.Close()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(), []string{srv.URL + "/noticia"}, stdout, stderr)
		require.NoError(t, err)

		var result veritext.ExtractionResult
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &result))
		assert.True(t, result.Success)
		assert.Contains(t, result.Content, "vigas metálicas")
		assert.Equal(t, "lightweight_http", result.Metadata[veritext.MetaExtractionTool])
		assert.Equal(t, string(veritext.CategoryGenericWeb), result.Metadata[veritext.MetaSourceCategory])
	})

	t.Run("text format prints content only", func(t *testing.T) {
		t.Parallel()

		srv := servePage(t)
		defer srv.Close()

		stdout := &bytes.Buffer{}
		err := main.NewMain().Run(context.Background(), []string{"--format", "text", srv.URL + "/noticia"}, stdout, &bytes.Buffer{})
		require.NoError(t, err)

		assert.Contains(t, stdout.String(), "fase final")
		assert.NotContains(t, stdout.String(), `"success"`)
	})

	t.Run("fails when extraction fails", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer srv.Close()

		stdout := &bytes.Buffer{}
		err := main.NewMain().Run(context.Background(), []string{srv.URL + "/bloqueada"}, stdout, &bytes.Buffer{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "extraction failed")
	})

	t.Run("batch mode writes one result per line", func(t *testing.T) {
		t.Parallel()

		srv := servePage(t)
		defer srv.Close()

		input := filepath.Join(t.TempDir(), "urls.txt")
		content := srv.URL + "/a\n" +
			"# comentário\n" +
			srv.URL + "/b\n"
		require.NoError(t, os.WriteFile(input, []byte(content), 0o644))

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(), []string{"--input", input, "--rate", "100"}, stdout, stderr)
		require.NoError(t, err)

		lines := bytes.Split(bytes.TrimSpace(stdout.Bytes()), []byte("\n"))
		require.Len(t, lines, 2)
		for _, line := range lines {
			var result veritext.ExtractionResult
			require.NoError(t, json.Unmarshal(line, &result))
			assert.True(t, result.Success)
		}
		assert.Contains(t, stderr.String(), "Extracting 2 URLs")
	})

	t.Run("batch mode reports duplicate URLs", func(t *testing.T) {
		t.Parallel()

		srv := servePage(t)
		defer srv.Close()

		input := filepath.Join(t.TempDir(), "urls.txt")
		content := srv.URL + "/a\n" + srv.URL + "/a\n"
		require.NoError(t, os.WriteFile(input, []byte(content), 0o644))

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(), []string{"--input", input, "--rate", "100"}, stdout, stderr)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 of 2 URLs failed")
		assert.Contains(t, stderr.String(), "skipped duplicate")
	})

	t.Run("requires a URL or an input file", func(t *testing.T) {
		t.Parallel()

		err := main.NewMain().Run(context.Background(), []string{"--max-chars", "100"}, &bytes.Buffer{}, &bytes.Buffer{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "either a URL argument or --input is required")
	})
}

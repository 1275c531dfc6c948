package readability_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veritext/veritext"
	"github.com/veritext/veritext/readability"
)

const articleHTML = `<!DOCTYPE html>
<html>
<head><title>Cidade confirma novo hospital</title></head>
<body>
<nav><a href="/">Home</a><a href="/news">News</a></nav>
<article>
<h1>Cidade confirma construção de novo hospital regional</h1>
<p>A administração municipal confirmou nesta quarta-feira a construção de um novo hospital regional, com investimento estimado em oitenta milhões e capacidade para duzentos leitos de internação.</p>
<p>A unidade deve atender pacientes de doze municípios vizinhos e reduzir a fila de cirurgias eletivas da região, segundo a secretaria estadual de saúde.</p>
<p>As obras começam no primeiro semestre do próximo ano e têm prazo de conclusão de trinta meses.</p>
</article>
<footer>Copyright 2024 - Todos os direitos reservados</footer>
</body>
</html>`

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts article content and title", func(t *testing.T) {
		t.Parallel()

		extractor := readability.NewExtractor()
		result, err := extractor.Extract(articleHTML)
		require.NoError(t, err)

		assert.Contains(t, result.Title, "hospital")
		assert.Contains(t, result.ContentHTML, "hospital regional")
		assert.Contains(t, result.ContentHTML, "cirurgias eletivas")
	})

	t.Run("drops boilerplate navigation", func(t *testing.T) {
		t.Parallel()

		extractor := readability.NewExtractor()
		result, err := extractor.Extract(articleHTML)
		require.NoError(t, err)

		assert.False(t, strings.Contains(result.ContentHTML, "direitos reservados"))
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		extractor := readability.NewExtractor()
		_, err := extractor.Extract("")
		require.Error(t, err)
		assert.Equal(t, veritext.EINVALID, veritext.ErrorCode(err))
	})
}

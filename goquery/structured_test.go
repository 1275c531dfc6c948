package goquery_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veritext/veritext"
	vgoquery "github.com/veritext/veritext/goquery"
	"github.com/veritext/veritext/mock"
)

// emptyFallback is a fallback extractor that finds nothing.
var emptyFallback = &mock.Extractor{
	ExtractFn: func(html string) (*veritext.ExtractResult, error) {
		return &veritext.ExtractResult{}, nil
	},
}

// passthroughConverter returns the HTML it is given, which is good enough
// for tests that never exercise real conversion.
var passthroughConverter = &mock.Converter{
	ConvertFn: func(html string) (string, error) {
		return html, nil
	},
}

const g1Fixture = `<!DOCTYPE html>
<html>
<head><title>G1 - Notícia</title></head>
<body>
<h1>Governo anuncia pacote de medidas econômicas para o próximo ano</h1>
<div class="content-text">
<p>O governo federal anunciou nesta terça-feira um pacote de medidas econômicas voltado para o próximo ano fiscal.</p>
<p class="content-ad">Assine a newsletter e receba ofertas exclusivas dos nossos parceiros comerciais todos os dias.</p>
<p>Entre as medidas está a revisão das alíquotas de importação para bens de capital e insumos industriais.</p>
<h2>Veja também</h2>
<p>Entenda como a reforma tributária muda a cobrança de impostos sobre o consumo das famílias brasileiras.</p>
<p>Vídeo mostra bastidores da reunião ministerial desta semana no palácio do governo federal.</p>
</div>
</body>
</html>`

func TestStructured_Extract(t *testing.T) {
	t.Parallel()

	g1 := vgoquery.NewG1Profile()

	t.Run("collects body and stops at stop marker", func(t *testing.T) {
		t.Parallel()

		s := vgoquery.NewStructured(g1, htmlFetcher(g1Fixture), emptyFallback, passthroughConverter)
		result, err := s.Extract(context.Background(), veritext.ExtractionRequest{URL: "https://g1.globo.com/noticia"})
		require.NoError(t, err)

		assert.True(t, result.Success)
		assert.Contains(t, result.Content, "pacote de medidas econômicas")
		assert.Contains(t, result.Content, "alíquotas de importação")
		// Everything after the "Veja também" intertitle is navigation.
		assert.NotContains(t, result.Content, "reforma tributária")
		assert.NotContains(t, result.Content, "bastidores da reunião")
		assert.Equal(t, "structured_g1", result.Metadata[veritext.MetaExtractionTool])
		assert.Equal(t, "Governo anuncia pacote de medidas econômicas para o próximo ano", result.Metadata[veritext.MetaTitle])
	})

	t.Run("excludes noise-class paragraphs", func(t *testing.T) {
		t.Parallel()

		s := vgoquery.NewStructured(g1, htmlFetcher(g1Fixture), emptyFallback, passthroughConverter)
		result, err := s.Extract(context.Background(), veritext.ExtractionRequest{URL: "https://g1.globo.com/noticia"})
		require.NoError(t, err)
		assert.NotContains(t, result.Content, "ofertas exclusivas")
	})

	t.Run("classless-only policy excludes any classed paragraph", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div class="entry-content">
<p>Primeiro parágrafo do corpo da checagem, sem nenhuma classe aplicada ao elemento.</p>
<p class="css-1x2y3z">Parágrafo de interface com classe utilitária gerada que não está no conjunto de ruído.</p>
<p>Segundo parágrafo do corpo da checagem, também completamente livre de classes.</p>
</div></body></html>`

		s := vgoquery.NewStructured(vgoquery.NewAosFatosProfile(), htmlFetcher(html), emptyFallback, passthroughConverter)
		result, err := s.Extract(context.Background(), veritext.ExtractionRequest{URL: "https://www.aosfatos.org/noticias/x"})
		require.NoError(t, err)

		assert.Contains(t, result.Content, "Primeiro parágrafo do corpo")
		assert.Contains(t, result.Content, "Segundo parágrafo do corpo")
		assert.NotContains(t, result.Content, "classe utilitária gerada")
	})

	t.Run("short paragraphs are excluded as captions", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div class="content-text">
<p>Foto: Reuters</p>
<p>Parágrafo longo o suficiente para passar pelo piso de comprimento configurado no perfil.</p>
<p>Outro parágrafo igualmente longo o bastante para contar como corpo de matéria de verdade.</p>
</div></body></html>`

		s := vgoquery.NewStructured(g1, htmlFetcher(html), emptyFallback, passthroughConverter)
		result, err := s.Extract(context.Background(), veritext.ExtractionRequest{URL: "https://g1.globo.com/noticia"})
		require.NoError(t, err)
		assert.NotContains(t, result.Content, "Foto: Reuters")
	})

	t.Run("extracts ClaimReview metadata from JSON-LD", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
<script type="application/ld+json">
{"@context":"https://schema.org","@type":"ClaimReview",
 "author":{"@type":"Organization","name":"Aos Fatos"},
 "datePublished":"2024-03-15",
 "headline":"É falso que a vacina altere o DNA humano",
 "reviewRating":{"@type":"Rating","alternateName":"Falso"}}
</script>
</head><body><div class="entry-content">
<p>Circula nas redes sociais a alegação de que vacinas de RNA alteram o DNA das pessoas vacinadas.</p>
<p>A alegação é falsa, segundo os especialistas em imunologia consultados pela reportagem.</p>
</div></body></html>`

		s := vgoquery.NewStructured(vgoquery.NewAosFatosProfile(), htmlFetcher(html), emptyFallback, passthroughConverter)
		result, err := s.Extract(context.Background(), veritext.ExtractionRequest{URL: "https://www.aosfatos.org/noticias/x"})
		require.NoError(t, err)

		assert.Equal(t, "Aos Fatos", result.Metadata["author"])
		assert.Equal(t, "2024-03-15", result.Metadata["date_published"])
		assert.Equal(t, "Falso", result.Metadata["review_rating"])
		assert.Equal(t, "É falso que a vacina altere o DNA humano", result.Metadata["headline"])
	})

	t.Run("matches JSON-LD type declared as a list", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
<script type="application/ld+json">
{"@type":["NewsArticle","Article"],"datePublished":"2024-01-10"}
</script>
</head><body><div class="content-text">
<p>Parágrafo de corpo suficientemente longo para satisfazer o portão mínimo de cinquenta caracteres.</p>
</div></body></html>`

		s := vgoquery.NewStructured(g1, htmlFetcher(html), emptyFallback, passthroughConverter)
		result, err := s.Extract(context.Background(), veritext.ExtractionRequest{URL: "https://g1.globo.com/noticia"})
		require.NoError(t, err)
		assert.Equal(t, "2024-01-10", result.Metadata["date_published"])
	})

	t.Run("uses fallback when the structured body is empty", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div class="content-text">   </div></body></html>`
		fallbackText := strings.Repeat("Texto recuperado pelo extrator genérico de conteúdo. ", 3)
		fallback := &mock.Extractor{
			ExtractFn: func(html string) (*veritext.ExtractResult, error) {
				return &veritext.ExtractResult{ContentHTML: "<p>fallback</p>"}, nil
			},
		}
		converter := &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				return fallbackText, nil
			},
		}

		s := vgoquery.NewStructured(g1, htmlFetcher(html), fallback, converter)
		result, err := s.Extract(context.Background(), veritext.ExtractionRequest{URL: "https://g1.globo.com/noticia"})
		require.NoError(t, err)

		assert.True(t, result.Success)
		assert.Contains(t, result.Content, "extrator genérico")
		// The fallback is internal to the tier: the tool is still the
		// publisher extractor.
		assert.Equal(t, "structured_g1", result.Metadata[veritext.MetaExtractionTool])
	})

	t.Run("fails when both structured body and fallback are too short", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div class="content-text"></div></body></html>`
		s := vgoquery.NewStructured(g1, htmlFetcher(html), emptyFallback, passthroughConverter)
		_, err := s.Extract(context.Background(), veritext.ExtractionRequest{URL: "https://g1.globo.com/noticia"})
		require.Error(t, err)
		assert.Equal(t, veritext.ETOOSHORT, veritext.ErrorCode(err))
		assert.Equal(t, "extracted content too short or empty", veritext.ErrorMessage(err))
	})

	t.Run("applies the profile URL rewrite before fetching", func(t *testing.T) {
		t.Parallel()

		var fetched string
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*veritext.FetchResponse, error) {
				fetched = url
				return &veritext.FetchResponse{Body: []byte(`<html><body><article>
<p>Corpo de matéria extenso o suficiente para satisfazer o portão mínimo do pipeline.</p>
</article></body></html>`), ContentType: "text/html"}, nil
			},
		}

		s := vgoquery.NewStructured(vgoquery.NewFolhaProfile(), fetcher, emptyFallback, passthroughConverter)
		_, err := s.Extract(context.Background(), veritext.ExtractionRequest{URL: "https://folha.uol.com.br/poder/2024/01/materia.shtml"})
		require.NoError(t, err)
		assert.Equal(t, "https://www1.folha.uol.com.br/poder/2024/01/materia.shtml", fetched)
	})

	t.Run("propagates fetch errors for ladder fallback", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*veritext.FetchResponse, error) {
				return nil, veritext.Errorf(veritext.ENETWORK, "HTTP 403 for %s", url)
			},
		}
		s := vgoquery.NewStructured(g1, fetcher, emptyFallback, passthroughConverter)
		_, err := s.Extract(context.Background(), veritext.ExtractionRequest{URL: "https://g1.globo.com/noticia"})
		require.Error(t, err)
		assert.Equal(t, veritext.ENETWORK, veritext.ErrorCode(err))
	})
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	t.Run("registers and retrieves profiles by category", func(t *testing.T) {
		t.Parallel()

		r := vgoquery.NewRegistry()
		p := vgoquery.NewG1Profile()
		r.Register(p)

		assert.Equal(t, p, r.Get(veritext.CategoryG1))
		assert.Nil(t, r.Get(veritext.CategoryFolha))
	})

	t.Run("default profiles cover all known publishers", func(t *testing.T) {
		t.Parallel()

		r := vgoquery.NewRegistry()
		vgoquery.RegisterDefaultProfiles(r)

		for _, cat := range []veritext.SourceCategory{
			veritext.CategoryG1,
			veritext.CategoryFolha,
			veritext.CategoryEstadao,
			veritext.CategoryAosFatos,
			veritext.CategoryLupa,
		} {
			p := r.Get(cat)
			require.NotNil(t, p, "missing profile for %s", cat)
			assert.NoError(t, p.Validate())
		}
		assert.Len(t, r.List(), 5)
	})
}

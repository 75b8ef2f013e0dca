package wikipedia

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSummaryServer(t *testing.T, perLang map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parts := strings.SplitN(strings.TrimPrefix(r.URL.Path, "/"), "/", 2)
		body, ok := perLang[parts[0]]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
}

func TestGetSummaryParsesExtractAndPageURL(t *testing.T) {
	server := newSummaryServer(t, map[string]string{
		"tr": `{"extract":"Zeki Müren, Türk sanat müziği sanatçısıydı.","content_urls":{"desktop":{"page":"https://tr.wikipedia.org/wiki/Zeki_M%C3%BCren"}}}`,
	})
	defer server.Close()

	client := NewClient(server.URL+"/%s", "nasiloldu-test/1.0", zerolog.Nop())
	summary, err := client.GetSummary(context.Background(), "tr", "Zeki Müren")
	require.NoError(t, err)
	assert.Equal(t, "Zeki Müren, Türk sanat müziği sanatçısıydı.", summary.Extract)
	assert.Equal(t, "https://tr.wikipedia.org/wiki/Zeki_M%C3%BCren", summary.PageURL)
}

func TestGetSummaryTreatsNotFoundAsEmpty(t *testing.T) {
	server := newSummaryServer(t, map[string]string{})
	defer server.Close()

	client := NewClient(server.URL+"/%s", "nasiloldu-test/1.0", zerolog.Nop())
	summary, err := client.GetSummary(context.Background(), "tr", "Bilinmeyen Kişi")
	require.NoError(t, err)
	assert.Empty(t, summary.Extract)
}

func TestGetSummaryWithFallbackUsesEnglish(t *testing.T) {
	server := newSummaryServer(t, map[string]string{
		"en": `{"extract":"A Turkish singer.","content_urls":{"desktop":{"page":"https://en.wikipedia.org/wiki/Example"}}}`,
	})
	defer server.Close()

	client := NewClient(server.URL+"/%s", "nasiloldu-test/1.0", zerolog.Nop())
	summary := client.GetSummaryWithFallback(context.Background(), "Example Person")
	assert.Equal(t, "A Turkish singer.", summary.Extract)
	assert.Equal(t, "https://en.wikipedia.org/wiki/Example", summary.PageURL)
}

func TestGetSummaryWithFallbackPrefersTurkish(t *testing.T) {
	server := newSummaryServer(t, map[string]string{
		"tr": `{"extract":"Türkçe özet.","content_urls":{"desktop":{"page":"https://tr.wikipedia.org/wiki/X"}}}`,
		"en": `{"extract":"English summary.","content_urls":{"desktop":{"page":"https://en.wikipedia.org/wiki/X"}}}`,
	})
	defer server.Close()

	client := NewClient(server.URL+"/%s", "nasiloldu-test/1.0", zerolog.Nop())
	summary := client.GetSummaryWithFallback(context.Background(), "X")
	assert.Equal(t, "Türkçe özet.", summary.Extract)
}

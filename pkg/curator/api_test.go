package curator_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artlens/curator/pkg/curator"
	"github.com/artlens/curator/pkg/curator/harvard"
	"github.com/artlens/curator/pkg/curator/narrative"
	"github.com/artlens/curator/pkg/curator/setup"
)

func postForm(router http.Handler, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)
	return w
}

func TestCuratorApi_GetRouter(t *testing.T) {
	testCurator := setupTestCurator(t)
	router := testCurator.GetRouter()

	t.Run("GET /", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `name="object_number"`)
		assert.Contains(t, w.Body.String(), `value="Crusades"`)
		assert.NotContains(t, w.Body.String(), `id="error"`)
		assert.NotContains(t, w.Body.String(), `id="artwork"`)
		assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
	})

	t.Run("POST / renders artwork", func(t *testing.T) {
		w := postForm(router, url.Values{
			"object_number": {"47074"},
			"interests":     {"Crusades", "Pilgrimage"},
		})

		body := w.Body.String()
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, body, `<h2 id="title">Example Vase</h2>`)
		assert.Contains(t, body, `<dd id="artist">Jane Doe</dd>`)
		assert.Contains(t, body, `Relevance: 9 of 10.`)
		assert.Contains(t, body, `value="47074"`)
		assert.Contains(t, body, `value="Crusades" checked`)
		assert.Contains(t, body, `value="Pilgrimage" checked`)
		assert.Contains(t, body, `value="Warfare and arms">`)
	})

	t.Run("POST / accepts object_id", func(t *testing.T) {
		var got string
		testCurator := setupTestCurator(t, func(config *curator.CuratorConfig) {
			config.Lookup = &mockLookup{
				lookup: func(ctx context.Context, identifier string) (*harvard.ArtworkRecord, error) {
					got = identifier
					record := exampleVase
					return &record, nil
				},
			}
		})

		w := postForm(testCurator.GetRouter(), url.Values{"object_id": {"299843"}})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "299843", got)
	})

	t.Run("POST / not found", func(t *testing.T) {
		testCurator := setupTestCurator(t, func(config *curator.CuratorConfig) {
			config.Lookup = &mockLookup{
				lookup: func(ctx context.Context, identifier string) (*harvard.ArtworkRecord, error) {
					return nil, harvard.ErrNotFound
				},
			}
		})

		w := postForm(testCurator.GetRouter(), url.Values{"object_number": {"0000"}, "interests": {"Warfare and arms"}})

		body := w.Body.String()
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, body, curator.NotFoundMessage)
		assert.NotContains(t, body, `id="artwork"`)
		assert.Contains(t, body, `value="0000"`)
		assert.Contains(t, body, `value="Warfare and arms" checked`)
	})

	t.Run("request id is echoed", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-Id", "abc-123")
		router.ServeHTTP(w, req)

		assert.Equal(t, "abc-123", w.Header().Get("X-Request-Id"))
	})
}

func TestCuratorApi_EndToEnd(t *testing.T) {
	harvardServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("objectnumber") != "47074" {
			fmt.Fprint(w, `{"records":[]}`)
			return
		}
		fmt.Fprint(w, `{"records":[{"title":"Example Vase","people":[{"name":"Jane Doe"}],"dated":"1800","culture":"Greek","medium":"Ceramic","provenance":"Gift of X","primaryimageurl":"http://img/1.jpg"}]}`)
	}))
	defer harvardServer.Close()

	var receivedPrompt string
	claudeServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Messages, 1)
		receivedPrompt = body.Messages[0].Content

		fmt.Fprint(w, `{"content":[{"type":"text","text":"A Greek vase, relevance 2 of 10."}]}`)
	}))
	defer claudeServer.Close()

	config, err := curator.NewCuratorConfigFromSetupResult(&setup.SetupResult{
		HarvardApiKey:      "harvard",
		HarvardApiUrl:      harvardServer.URL,
		HarvardLookupMode:  harvard.LookupObjectNumber,
		NarrativeProvider:  setup.ProviderAnthropic,
		NarrativeApiKey:    "claude",
		NarrativeApiUrl:    claudeServer.URL,
		NarrativeMaxTokens: setup.DefaultNarrativeMaxTokens,
		NarrativeTheme:     setup.DefaultNarrativeTheme,
	})
	require.NoError(t, err)

	testCurator, err := curator.NewCurator(config)
	require.NoError(t, err)
	router := testCurator.GetRouter()

	t.Run("found", func(t *testing.T) {
		w := postForm(router, url.Values{"object_number": {"47074"}})

		body := w.Body.String()
		assert.Contains(t, body, `<h2 id="title">Example Vase</h2>`)
		assert.Contains(t, body, `<dd id="artist">Jane Doe</dd>`)
		assert.Contains(t, body, `A Greek vase, relevance 2 of 10.`)

		want := narrative.BuildPrompt(harvard.ArtworkRecord{
			Identifier: "47074",
			ImageURL:   "http://img/1.jpg",
			Title:      "Example Vase",
			Artist:     "Jane Doe",
			Dated:      "1800",
			Culture:    "Greek",
			Medium:     "Ceramic",
			Provenance: "Gift of X",
		}, setup.DefaultNarrativeTheme)
		assert.Equal(t, want, receivedPrompt)
	})

	t.Run("missing", func(t *testing.T) {
		w := postForm(router, url.Values{"object_number": {"1"}})

		body := w.Body.String()
		assert.Contains(t, body, curator.NotFoundMessage)
		assert.NotContains(t, body, `id="artwork"`)
	})
}

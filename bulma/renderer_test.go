package bulma_test

import (
	"bytes"
	"io/fs"
	"strings"
	"sync"
	"testing"

	"github.com/fwojciec/medialinks"
	"github.com/fwojciec/medialinks/bulma"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_RenderLinks(t *testing.T) {
	t.Parallel()

	t.Run("renders one download block per link under the page URL", func(t *testing.T) {
		t.Parallel()

		r, err := bulma.NewRenderer()
		require.NoError(t, err)

		var buf bytes.Buffer
		err = r.RenderLinks(&buf, &medialinks.ScrapeResult{
			PageURL: "https://s.test/p",
			Links: []medialinks.MediaLink{
				{Name: "intro.mp4", URL: "https://s.test/p/intro.mp4"},
				{Name: "song.mp3", URL: "https://cdn.test/song.mp3"},
			},
		})

		require.NoError(t, err)
		out := buf.String()
		assert.Contains(t, out, `<article class="panel is-info">`)
		assert.Contains(t, out, "https://s.test/p\n")
		assert.Contains(t, out, `<a class="panel-block" href="https://s.test/p/intro.mp4" target="_blank" download="intro.mp4">`)
		assert.Contains(t, out, `<a class="panel-block" href="https://cdn.test/song.mp3" target="_blank" download="song.mp3">`)
		assert.Less(t, strings.Index(out, "intro.mp4"), strings.Index(out, "song.mp3"))
	})

	t.Run("renders an empty panel when there are no links", func(t *testing.T) {
		t.Parallel()

		r, err := bulma.NewRenderer()
		require.NoError(t, err)

		var buf bytes.Buffer
		err = r.RenderLinks(&buf, &medialinks.ScrapeResult{PageURL: "https://s.test", Links: []medialinks.MediaLink{}})

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "panel-heading")
		assert.NotContains(t, buf.String(), "panel-block")
	})

	t.Run("escapes markup in names", func(t *testing.T) {
		t.Parallel()

		r, err := bulma.NewRenderer()
		require.NoError(t, err)

		var buf bytes.Buffer
		err = r.RenderLinks(&buf, &medialinks.ScrapeResult{
			PageURL: "https://s.test",
			Links:   []medialinks.MediaLink{{Name: "<b>x</b>.mp3", URL: "https://s.test/x.mp3"}},
		})

		require.NoError(t, err)
		assert.NotContains(t, buf.String(), "<b>x</b>")
		assert.Contains(t, buf.String(), "&lt;b&gt;x&lt;/b&gt;.mp3")
	})
}

func TestRenderer_RenderError(t *testing.T) {
	t.Parallel()

	r, err := bulma.NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = r.RenderError(&buf, medialinks.ScrapeFailedMessage)

	require.NoError(t, err)
	assert.Contains(t, buf.String(), `<div class="card">`)
	assert.Contains(t, buf.String(), "Cannot scrape media from this website")
}

func TestRenderer_RenderIndex(t *testing.T) {
	t.Parallel()

	t.Run("renders the form posting to the scrape endpoint", func(t *testing.T) {
		t.Parallel()

		r, err := bulma.NewRenderer()
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, r.RenderIndex(&buf))

		out := buf.String()
		assert.Contains(t, out, `id="website-url-form"`)
		assert.Contains(t, out, `hx-post="/scrape/media"`)
		assert.Contains(t, out, `name="url"`)
		assert.Contains(t, out, `id="media-container"`)
		assert.Contains(t, out, "<title>Media Links</title>")
	})

	t.Run("applies title and action options", func(t *testing.T) {
		t.Parallel()

		r, err := bulma.NewRenderer(bulma.WithTitle("Grab"), bulma.WithAction("/api/scrape"))
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, r.RenderIndex(&buf))

		assert.Contains(t, buf.String(), "<title>Grab</title>")
		assert.Contains(t, buf.String(), `hx-post="/api/scrape"`)
	})
}

func TestRenderer_ConcurrentUse(t *testing.T) {
	t.Parallel()

	r, err := bulma.NewRenderer()
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var buf bytes.Buffer
			if i%2 == 0 {
				assert.NoError(t, r.RenderError(&buf, "boom"))
			} else {
				assert.NoError(t, r.RenderLinks(&buf, &medialinks.ScrapeResult{PageURL: "https://s.test"}))
			}
		}()
	}
	wg.Wait()
}

func TestStaticFS(t *testing.T) {
	t.Parallel()

	data, err := fs.ReadFile(bulma.StaticFS(), "app.js")

	require.NoError(t, err)
	assert.Contains(t, string(data), "media-container")
}

package wiki_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artlens/curator/pkg/curator/wiki"
)

type mockResolver struct {
	mu    sync.Mutex
	calls map[string]int
	pages map[string]string
	err   error
}

func newMockResolver(pages map[string]string) *mockResolver {
	return &mockResolver{calls: map[string]int{}, pages: pages}
}

func (m *mockResolver) Resolve(ctx context.Context, term string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[term]++
	if m.err != nil {
		return "", false, m.err
	}
	page, ok := m.pages[term]
	return page, ok, nil
}

func TestLinker_Link(t *testing.T) {
	resolver := newMockResolver(map[string]string{
		"Python":           "https://en.wikipedia.org/wiki/Python",
		"Machine Learning": "https://en.wikipedia.org/wiki/Machine_learning",
		"Learning":         "https://en.wikipedia.org/wiki/Learning",
	})
	linker := wiki.NewLinker(resolver, 2)
	defer linker.Stop()

	t.Run("links whole words case-insensitively", func(t *testing.T) {
		out, err := linker.Link(context.Background(), `<p>I like Python and python, not Pythonic code.</p>`, []string{"Python"})
		require.NoError(t, err)
		assert.Equal(t,
			`<p>I like <a href="https://en.wikipedia.org/wiki/Python" target="_blank">Python</a> and `+
				`<a href="https://en.wikipedia.org/wiki/Python" target="_blank">python</a>, not Pythonic code.</p>`,
			out)
	})

	t.Run("skips script style and anchors", func(t *testing.T) {
		in := `<script>var Python = 1;</script><style>.Python{}</style><a href="/x">Python</a><span>Python</span>`
		out, err := linker.Link(context.Background(), in, []string{"Python"})
		require.NoError(t, err)
		assert.Contains(t, out, `<script>var Python = 1;</script>`)
		assert.Contains(t, out, `<style>.Python{}</style>`)
		assert.Contains(t, out, `<a href="/x">Python</a>`)
		assert.Contains(t, out, `<span><a href="https://en.wikipedia.org/wiki/Python" target="_blank">Python</a></span>`)
	})

	t.Run("longer terms win", func(t *testing.T) {
		out, err := linker.Link(context.Background(), `<p>Machine Learning is learning.</p>`, []string{"Learning", "Machine Learning"})
		require.NoError(t, err)
		assert.Equal(t,
			`<p><a href="https://en.wikipedia.org/wiki/Machine_learning" target="_blank">Machine Learning</a> is `+
				`<a href="https://en.wikipedia.org/wiki/Learning" target="_blank">learning</a>.</p>`,
			out)
	})

	t.Run("unknown terms are left alone", func(t *testing.T) {
		in := `<p>JavaScript</p>`
		out, err := linker.Link(context.Background(), in, []string{"JavaScript"})
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})

	t.Run("full documents keep their structure", func(t *testing.T) {
		in := `<!DOCTYPE html><html><head><title>t</title></head><body><p>Python</p></body></html>`
		out, err := linker.Link(context.Background(), in, []string{"Python"})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html><html>"))
		assert.Contains(t, out, `<body><p><a href="https://en.wikipedia.org/wiki/Python" target="_blank">Python</a></p></body>`)
	})
}

func TestLinker_LinkNonAsciiTerms(t *testing.T) {
	resolver := newMockResolver(map[string]string{
		"Église":  "https://en.wikipedia.org/wiki/%C3%89glise",
		"Brontë":  "https://en.wikipedia.org/wiki/Bront%C3%AB",
		"Córdoba": "https://en.wikipedia.org/wiki/C%C3%B3rdoba",
	})
	linker := wiki.NewLinker(resolver, 2)
	defer linker.Stop()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "leading non-ascii letter",
			in:   `<p>The Église stands.</p>`,
			want: `<p>The <a href="https://en.wikipedia.org/wiki/%C3%89glise" target="_blank">Église</a> stands.</p>`,
		},
		{
			name: "trailing non-ascii letter",
			in:   `<p>Emily Brontë wrote.</p>`,
			want: `<p>Emily <a href="https://en.wikipedia.org/wiki/Bront%C3%AB" target="_blank">Brontë</a> wrote.</p>`,
		},
		{
			name: "case folded",
			in:   `<p>ÉGLISE</p>`,
			want: `<p><a href="https://en.wikipedia.org/wiki/%C3%89glise" target="_blank">ÉGLISE</a></p>`,
		},
		{
			name: "followed by a letter",
			in:   `<p>The Brontës wrote.</p>`,
			want: `<p>The Brontës wrote.</p>`,
		},
		{
			name: "preceded by a letter",
			in:   `<p>AlCórdoba</p>`,
			want: `<p>AlCórdoba</p>`,
		},
		{
			name: "followed by an underscore",
			in:   `<p>Córdoba_2</p>`,
			want: `<p>Córdoba_2</p>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := linker.Link(context.Background(), tt.in, []string{"Église", "Brontë", "Córdoba"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestLinker_ResolvesEachTermOnce(t *testing.T) {
	resolver := newMockResolver(map[string]string{"Python": "https://en.wikipedia.org/wiki/Python"})
	linker := wiki.NewLinker(resolver, 4)
	defer linker.Stop()

	in := `<p>Python</p><p>Python</p><div><p>python</p></div>`
	_, err := linker.Link(context.Background(), in, []string{"Python", "python", " Python ", ""})
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"Python": 1}, resolver.calls)
}

func TestLinker_ResolutionErrorSkipsTerm(t *testing.T) {
	resolver := newMockResolver(nil)
	resolver.err = assert.AnError
	linker := wiki.NewLinker(resolver, 1)
	defer linker.Stop()

	in := `<p>Python</p>`
	out, err := linker.Link(context.Background(), in, []string{"Python"})
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

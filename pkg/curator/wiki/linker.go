package wiki

import (
	"context"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alitto/pond/v2"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const defaultConcurrency = 4

type TermResolver interface {
	Resolve(ctx context.Context, term string) (string, bool, error)
}

// Linker rewrites HTML so that known terms link to their Wikipedia article.
type Linker struct {
	resolver TermResolver
	pool     pond.Pool
}

func NewLinker(resolver TermResolver, concurrency int) *Linker {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	return &Linker{
		resolver: resolver,
		pool:     pond.NewPool(concurrency),
	}
}

// Stop waits for in-flight resolutions and releases the worker pool.
func (l *Linker) Stop() {
	l.pool.StopAndWait()
}

// Link resolves terms and wraps their whole-word, case-insensitive matches in
// anchors. Text inside script, style and existing links is left alone.
func (l *Linker) Link(ctx context.Context, document string, terms []string) (string, error) {
	links := l.resolveAll(ctx, terms)
	if len(links) == 0 {
		return document, nil
	}

	pattern := termPattern(links)

	if isFullDocument(document) {
		doc, err := html.Parse(strings.NewReader(document))
		if err != nil {
			return "", err
		}
		linkTextNodes(doc, pattern, links)
		return render(doc)
	}

	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(document), body)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, n := range nodes {
		body.AppendChild(n)
	}
	linkTextNodes(body, pattern, links)
	for n := body.FirstChild; n != nil; n = n.NextSibling {
		if err := html.Render(&b, n); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

// resolveAll returns lower-cased term -> article URL for the terms that exist.
func (l *Linker) resolveAll(ctx context.Context, terms []string) map[string]string {
	unique := make([]string, 0, len(terms))
	seen := make(map[string]bool, len(terms))
	for _, term := range terms {
		term = strings.TrimSpace(term)
		key := strings.ToLower(term)
		if term == "" || seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, term)
	}

	urls := make([]string, len(unique))
	group := l.pool.NewGroup()
	for i, term := range unique {
		group.Submit(func() {
			pageUrl, ok, err := l.resolver.Resolve(ctx, term)
			if err != nil {
				slog.Warn("failed to resolve term", "term", term, "error", err)
				return
			}
			if ok {
				urls[i] = pageUrl
			}
		})
	}
	group.Wait()

	links := make(map[string]string, len(unique))
	for i, term := range unique {
		if urls[i] != "" {
			links[strings.ToLower(term)] = urls[i]
		}
	}
	return links
}

func termPattern(links map[string]string) *regexp.Regexp {
	terms := make([]string, 0, len(links))
	for term := range links {
		terms = append(terms, term)
	}
	// Longest first so overlapping terms prefer the longer match.
	sort.Slice(terms, func(i, j int) bool {
		if len(terms[i]) != len(terms[j]) {
			return len(terms[i]) > len(terms[j])
		}
		return terms[i] < terms[j]
	})

	quoted := make([]string, len(terms))
	for i, term := range terms {
		quoted[i] = regexp.QuoteMeta(term)
	}
	return regexp.MustCompile(`(?i)(?:` + strings.Join(quoted, "|") + `)`)
}

// wholeWordMatches keeps the matches not glued to a letter, digit or underscore
// on either side. RE2's \b only knows ASCII word characters.
func wholeWordMatches(pattern *regexp.Regexp, text string) [][]int {
	var matches [][]int
	for _, m := range pattern.FindAllStringIndex(text, -1) {
		before, _ := utf8.DecodeLastRuneInString(text[:m[0]])
		after, _ := utf8.DecodeRuneInString(text[m[1]:])
		if isWordRune(before) || isWordRune(after) {
			continue
		}
		matches = append(matches, m)
	}
	return matches
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isFullDocument(document string) bool {
	head := strings.ToLower(document)
	if len(head) > 1024 {
		head = head[:1024]
	}
	return strings.Contains(head, "<html") || strings.Contains(head, "<!doctype")
}

func linkTextNodes(root *html.Node, pattern *regexp.Regexp, links map[string]string) {
	var textNodes []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.A:
				return
			}
		}
		if n.Type == html.TextNode {
			textNodes = append(textNodes, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	for _, n := range textNodes {
		replaceText(n, pattern, links)
	}
}

func replaceText(n *html.Node, pattern *regexp.Regexp, links map[string]string) {
	matches := wholeWordMatches(pattern, n.Data)
	if len(matches) == 0 || n.Parent == nil {
		return
	}

	parent := n.Parent
	text := n.Data
	last := 0
	for _, m := range matches {
		if m[0] > last {
			parent.InsertBefore(&html.Node{Type: html.TextNode, Data: text[last:m[0]]}, n)
		}

		matched := text[m[0]:m[1]]
		anchor := &html.Node{
			Type:     html.ElementNode,
			Data:     "a",
			DataAtom: atom.A,
			Attr: []html.Attribute{
				{Key: "href", Val: links[strings.ToLower(matched)]},
				{Key: "target", Val: "_blank"},
			},
		}
		anchor.AppendChild(&html.Node{Type: html.TextNode, Data: matched})
		parent.InsertBefore(anchor, n)
		last = m[1]
	}
	if last < len(text) {
		parent.InsertBefore(&html.Node{Type: html.TextNode, Data: text[last:]}, n)
	}
	parent.RemoveChild(n)
}

func render(n *html.Node) (string, error) {
	var b strings.Builder
	if err := html.Render(&b, n); err != nil {
		return "", err
	}
	return b.String(), nil
}

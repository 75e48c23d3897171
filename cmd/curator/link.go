package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/artlens/curator/pkg/curator/wiki"
)

const fetchTimeout = 30 * time.Second

type linkOptions struct {
	input       string
	output      string
	terms       []string
	wikiUrl     string
	concurrency int
}

func newLinkCommand() *cobra.Command {
	opts := linkOptions{}

	cmd := &cobra.Command{
		Use:   "link",
		Short: "Link terms in an HTML page to their Wikipedia articles",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLink(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "HTML file path or http(s) URL")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "output.html", "File to write; - for stdout")
	cmd.Flags().StringSliceVarP(&opts.terms, "term", "t", []string{"Python", "Machine Learning", "JavaScript"}, "Terms to link")
	cmd.Flags().StringVar(&opts.wikiUrl, "wiki-url", wiki.DefaultBaseUrl, "Wikipedia base URL")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 4, "Parallel term lookups")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runLink(cmd *cobra.Command, opts linkOptions) error {
	ctx := cmd.Context()

	document, err := readDocument(ctx, opts.input)
	if err != nil {
		return err
	}

	linker := wiki.NewLinker(wiki.NewResolver(wiki.ResolverConfig{BaseUrl: opts.wikiUrl}), opts.concurrency)
	defer linker.Stop()

	updated, err := linker.Link(ctx, document, opts.terms)
	if err != nil {
		return fmt.Errorf("failed to link terms: %w", err)
	}

	if opts.output == "-" {
		_, err := io.WriteString(cmd.OutOrStdout(), updated)
		return err
	}

	if err := os.WriteFile(opts.output, []byte(updated), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.output, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated HTML saved to %s\n", opts.output)
	return nil
}

func readDocument(ctx context.Context, input string) (string, error) {
	if !strings.HasPrefix(input, "http://") && !strings.HasPrefix(input, "https://") {
		data, err := os.ReadFile(input)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", input, err)
		}
		return string(data), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, input, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create GET request: %w", err)
	}

	client := &http.Client{Timeout: fetchTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to perform GET request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("failed to fetch %s: http %d", input, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	return string(data), nil
}

package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pkt.systems/tprint"
)

const fetchTimeout = 30 * time.Second

// document is one markup source with its own front matter.
type document struct {
	source  string
	config  documentConfig
	hasMeta bool
	body    string
}

// readDocuments loads every input named in args, or stdin when args is
// empty. Each source is validated and split from its front matter on its own
// so documents never run into each other.
func readDocuments(ctx context.Context, args []string, stdin io.Reader) ([]document, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("stdin: %w", err)
		}
		doc, err := parseDocument("stdin", data)
		if err != nil {
			return nil, err
		}
		return []document{doc}, nil
	}
	docs := make([]document, 0, len(args))
	for _, arg := range args {
		name := strings.TrimSpace(arg)
		if name == "" {
			return nil, fmt.Errorf("empty input argument")
		}
		data, err := loadSource(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		doc, err := parseDocument(name, data)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func parseDocument(source string, data []byte) (document, error) {
	doc := document{source: source}
	if err := tprint.ValidateInput(data); err != nil {
		return doc, fmt.Errorf("%s: %w", source, err)
	}
	meta, body, ok := tprint.SplitFrontMatter(data)
	if ok {
		cfg, err := parseDocumentConfig(meta)
		if err != nil {
			return doc, fmt.Errorf("%s: front matter: %w", source, err)
		}
		doc.config = cfg
		doc.hasMeta = true
	}
	doc.body = strings.TrimRight(string(body), "\r\n")
	return doc, nil
}

// loadSource reads a local path, a file:// URL or an http(s) URL.
func loadSource(ctx context.Context, name string) ([]byte, error) {
	u, err := url.Parse(name)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		return os.ReadFile(expandHome(name))
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
		defer cancel()
		return tprint.Fetch(ctx, tprint.FetchRequest{URL: name})
	case "file":
		path := u.Path
		if path == "" {
			path = u.Opaque
		}
		return os.ReadFile(path)
	default:
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
}

// createOutput opens path for the rendered text, creating parent directories.
func createOutput(path string) (*os.File, error) {
	path = expandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.Create(path)
}

func expandHome(path string) string {
	rest, ok := strings.CutPrefix(path, "~")
	if !ok || (rest != "" && rest[0] != '/' && rest[0] != filepath.Separator) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rest)
}

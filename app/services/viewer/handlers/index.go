package handlers

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"net/http"
	"strings"

	"github.com/ardanlabs/powledger/foundation/web"
)

//go:embed assets/index.html
var assets embed.FS

// index renders the dashboard page pointed at a node.
type index struct {
	page []byte
}

func newIndex(build string, nodeURL string) (index, error) {
	tmpl, err := template.ParseFS(assets, "assets/index.html")
	if err != nil {
		return index{}, err
	}

	nodeURL = strings.TrimSuffix(nodeURL, "/")
	wsURL := "ws" + strings.TrimPrefix(nodeURL, "http")

	data := struct {
		Build   string
		NodeURL string
		WSURL   string
	}{
		Build:   build,
		NodeURL: nodeURL,
		WSURL:   wsURL,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return index{}, err
	}

	return index{page: buf.Bytes()}, nil
}

func (ig index) handler(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if err := web.SetStatusCode(ctx, http.StatusOK); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	_, err := w.Write(ig.page)
	return err
}

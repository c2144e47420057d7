package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/shopverse/storefront/internal/domain"
	apperrors "github.com/shopverse/storefront/pkg/errors"
	"github.com/shopverse/storefront/pkg/httpclient"
)

// maxCatalogBytes bounds how much of the catalog resource is read.
const maxCatalogBytes = 16 << 20

// Loader reads the product catalog from its source exactly once per process.
// The source is either a local file path or an HTTP(S) URL serving a JSON
// array of products.
type Loader struct {
	source string
	client *httpclient.Client
	logger *slog.Logger
}

// NewLoader creates a catalog loader for the given source.
func NewLoader(source string, client *httpclient.Client, logger *slog.Logger) *Loader {
	return &Loader{
		source: source,
		client: client,
		logger: logger,
	}
}

// Load fetches and parses the catalog resource. Failures return a
// CatalogUnavailable error; the caller decides whether to degrade or abort.
func (l *Loader) Load(ctx context.Context) ([]domain.Product, error) {
	data, err := l.read(ctx)
	if err != nil {
		return nil, apperrors.CatalogUnavailable(fmt.Sprintf("read catalog %s: %v", l.source, err))
	}

	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, apperrors.CatalogUnavailable(fmt.Sprintf("parse catalog %s: %v", l.source, err))
	}

	l.logger.InfoContext(ctx, "catalog loaded",
		slog.String("source", l.source),
		slog.Int("products", len(products)),
	)

	return products, nil
}

func (l *Loader) read(ctx context.Context) ([]byte, error) {
	if strings.HasPrefix(l.source, "http://") || strings.HasPrefix(l.source, "https://") {
		resp, err := l.client.Get(ctx, l.source)
		if err != nil {
			return nil, err
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		return io.ReadAll(io.LimitReader(resp.Body, maxCatalogBytes))
	}

	return os.ReadFile(l.source)
}

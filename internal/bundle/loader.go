package bundle

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jenkins-infra/plugin-modernizer-stats/internal/domain"
	"github.com/jenkins-infra/plugin-modernizer-stats/internal/sample"
)

// Loader retrieves the three bundles from a base URL or a local directory
// and caches the result for the lifetime of the process. Any failure during
// a load falls back, as a unit, to the deterministic sample dataset, so the
// caller always receives a usable AppData.
type Loader struct {
	source string
	client *http.Client
	logger zerolog.Logger

	mu     sync.Mutex
	cached *domain.AppData
}

// NewLoader creates a Loader. source is either an http(s) base URL or a
// directory containing the bundle files.
func NewLoader(source string, logger zerolog.Logger) *Loader {
	return &Loader{
		source: source,
		client: &http.Client{Timeout: 30 * time.Second},
		logger: logger,
	}
}

// Load returns the cached AppData, fetching it on first use. Loads are
// serialized, so concurrent first callers trigger exactly one fetch.
func (l *Loader) Load(ctx context.Context) *domain.AppData {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cached != nil {
		return l.cached
	}

	data, err := l.fetchAll(ctx)
	if err != nil {
		l.logger.Warn().Err(err).Msg("failed to load live data, using sample data")
		data = sample.Data()
	}
	l.cached = data
	return l.cached
}

// Reset clears the cache so the next Load fetches again.
func (l *Loader) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cached = nil
}

func (l *Loader) fetchAll(ctx context.Context) (*domain.AppData, error) {
	var data domain.AppData
	if err := l.fetchDoc(ctx, PluginsFile, &data.Plugins); err != nil {
		return nil, err
	}
	if err := l.fetchDoc(ctx, RecipesFile, &data.Recipes); err != nil {
		return nil, err
	}
	if err := l.fetchDoc(ctx, SummaryFile, &data.Summary); err != nil {
		return nil, err
	}
	return &data, nil
}

func (l *Loader) fetchDoc(ctx context.Context, name string, v any) error {
	payload, err := l.read(ctx, name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return nil
}

func (l *Loader) read(ctx context.Context, name string) ([]byte, error) {
	if strings.HasPrefix(l.source, "http://") || strings.HasPrefix(l.source, "https://") {
		url := strings.TrimSuffix(l.source, "/") + "/" + name
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		resp, err := l.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", name, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("failed to fetch %s: status %d", name, resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	}
	return os.ReadFile(filepath.Join(l.source, name))
}

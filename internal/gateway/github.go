// Package gateway provides access to the upstream metadata repository on
// GitHub, abstracting away the underlying REST client.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/jenkins-infra/plugin-modernizer-stats/internal/domain"
)

const (
	// pluginReportPath is the per-plugin report location inside the
	// metadata repository, relative to the plugin directory.
	pluginReportPath = "reports/aggregated_migrations.json"
	recipeReportsDir = "reports/recipes"
	summaryPath      = "reports/summary.md"

	userAgent = "plugin-modernizer-stats"
)

// Fetcher defines the behavior of a gateway for retrieving migration
// telemetry documents from the upstream store.
type Fetcher interface {
	// DiscoverPlugins returns the sorted set of plugin names that have a
	// migration report in the upstream repository.
	DiscoverPlugins(ctx context.Context) ([]string, error)
	// FetchPluginReport retrieves and decodes one plugin's report.
	FetchPluginReport(ctx context.Context, pluginName string) (*domain.PluginReport, error)
	// ListRecipeFiles returns the JSON file names under the recipe reports directory.
	ListRecipeFiles(ctx context.Context) ([]string, error)
	// FetchRecipeReport retrieves and decodes one recipe report by file name.
	FetchRecipeReport(ctx context.Context, name string) (*domain.RecipeReport, error)
	// FetchSummary retrieves the free-text summary document.
	FetchSummary(ctx context.Context) (string, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	client *github.Client
	owner  string
	repo   string
	branch string
	logger zerolog.Logger
}

// NewGitHubGateway creates a gateway for the given "owner/repo" slug and
// branch. The token is optional; when empty, requests are unauthenticated
// and subject to the anonymous rate limit.
func NewGitHubGateway(repository, branch, token string, logger zerolog.Logger) (Fetcher, error) {
	owner, repo, err := splitRepository(repository)
	if err != nil {
		return nil, err
	}

	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}

	httpClient := &http.Client{Transport: rateLimitWaiter}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = &http.Client{
			Transport: &oauth2.Transport{
				Base:   rateLimitWaiter,
				Source: ts,
			},
		}
	}

	client := github.NewClient(httpClient)
	client.UserAgent = userAgent

	return &GitHubGateway{
		client: client,
		owner:  owner,
		repo:   repo,
		branch: branch,
		logger: logger,
	}, nil
}

func splitRepository(repository string) (owner, repo string, err error) {
	parts := strings.Split(repository, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository %q (must be owner/repo)", repository)
	}
	return parts[0], parts[1], nil
}

func (g *GitHubGateway) DiscoverPlugins(ctx context.Context) ([]string, error) {
	g.logger.Debug().Str("repo", g.owner+"/"+g.repo).Msg("discovering plugin directories")

	tree, _, err := g.client.Git.GetTree(ctx, g.owner, g.repo, g.branch, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list repository tree: %w", err)
	}

	seen := make(map[string]struct{})
	for _, entry := range tree.Entries {
		path := entry.GetPath()
		if !strings.Contains(path, "/"+pluginReportPath) {
			continue
		}
		if name, _, ok := strings.Cut(path, "/"); ok {
			seen[name] = struct{}{}
		}
	}

	plugins := make([]string, 0, len(seen))
	for name := range seen {
		plugins = append(plugins, name)
	}
	sort.Strings(plugins)

	g.logger.Info().Int("count", len(plugins)).Msg("discovered plugins")
	return plugins, nil
}

func (g *GitHubGateway) FetchPluginReport(ctx context.Context, pluginName string) (*domain.PluginReport, error) {
	var report domain.PluginReport
	if err := g.downloadJSON(ctx, pluginName+"/"+pluginReportPath, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (g *GitHubGateway) ListRecipeFiles(ctx context.Context) ([]string, error) {
	g.logger.Debug().Str("dir", recipeReportsDir).Msg("listing recipe reports")

	opts := &github.RepositoryContentGetOptions{Ref: g.branch}
	_, dir, _, err := g.client.Repositories.GetContents(ctx, g.owner, g.repo, recipeReportsDir, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipe reports: %w", err)
	}

	var names []string
	for _, entry := range dir {
		if name := entry.GetName(); strings.HasSuffix(name, ".json") {
			names = append(names, name)
		}
	}
	return names, nil
}

func (g *GitHubGateway) FetchRecipeReport(ctx context.Context, name string) (*domain.RecipeReport, error) {
	var report domain.RecipeReport
	if err := g.downloadJSON(ctx, recipeReportsDir+"/"+name, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (g *GitHubGateway) FetchSummary(ctx context.Context) (string, error) {
	data, err := g.download(ctx, summaryPath)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (g *GitHubGateway) downloadJSON(ctx context.Context, path string, v any) error {
	data, err := g.download(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

func (g *GitHubGateway) download(ctx context.Context, path string) ([]byte, error) {
	g.logger.Debug().Str("path", path).Msg("downloading content")

	opts := &github.RepositoryContentGetOptions{Ref: g.branch}
	rc, _, err := g.client.Repositories.DownloadContents(ctx, g.owner, g.repo, path, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", path, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

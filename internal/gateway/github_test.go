package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/go-github/v62/github"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestGateway creates a GitHubGateway that communicates with a mock HTTP server.
func setupTestGateway(t *testing.T, handler http.Handler) (*GitHubGateway, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	restClient := github.NewClient(server.Client())
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	restClient.BaseURL = baseURL

	gw := &GitHubGateway{
		client: restClient,
		owner:  "jenkins-infra",
		repo:   "metadata-plugin-modernizer",
		branch: "main",
		logger: zerolog.Nop(),
	}
	return gw, server
}

func TestNewGitHubGateway_InvalidRepository(t *testing.T) {
	_, err := NewGitHubGateway("not-a-slug", "main", "", zerolog.Nop())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "owner/repo")
}

func TestGitHubGateway_DiscoverPlugins(t *testing.T) {
	testCases := []struct {
		name        string
		handlerFunc func(w http.ResponseWriter, r *http.Request)
		expected    []string
		expectError bool
	}{
		{
			name: "happy path - plugins derived from matching tree paths",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				assert.Contains(t, r.URL.String(), "/git/trees/main")
				assert.Contains(t, r.URL.RawQuery, "recursive=1")
				fmt.Fprint(w, `{"sha": "abc", "tree": [
					{"path": "git/reports/aggregated_migrations.json", "type": "blob"},
					{"path": "credentials/reports/aggregated_migrations.json", "type": "blob"},
					{"path": "credentials/reports/other.json", "type": "blob"},
					{"path": "README.md", "type": "blob"}
				]}`)
			},
			expected: []string{"credentials", "git"},
		},
		{
			name: "no matches - empty result, no error",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"sha": "abc", "tree": [{"path": "README.md", "type": "blob"}]}`)
			},
			expected: []string{},
		},
		{
			name: "error case - tree listing fails",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				fmt.Fprint(w, `{"message": "Internal Server Error"}`)
			},
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gw, _ := setupTestGateway(t, http.HandlerFunc(tc.handlerFunc))
			plugins, err := gw.DiscoverPlugins(context.Background())
			if tc.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, plugins)
		})
	}
}

// newContentServer wires up the contents-listing plus raw-download pair of
// endpoints that DownloadContents requires.
func newContentServer(t *testing.T, dir, name, payload string) (*GitHubGateway, *httptest.Server) {
	t.Helper()
	var baseURL string
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/jenkins-infra/metadata-plugin-modernizer/contents/"+dir, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `[{"name": %q, "type": "file", "download_url": %q}]`, name, baseURL+"/raw/"+name)
	})
	mux.HandleFunc("/raw/"+name, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, payload)
	})
	gw, server := setupTestGateway(t, mux)
	baseURL = server.URL
	return gw, server
}

func TestGitHubGateway_FetchPluginReport(t *testing.T) {
	t.Run("happy path - report is downloaded and decoded", func(t *testing.T) {
		gw, _ := newContentServer(t, "credentials/reports", "aggregated_migrations.json",
			`{"pluginName": "credentials", "pluginRepository": "https://github.com/jenkinsci/credentials.git", "migrations": [{"migrationId": "r1", "migrationStatus": "success"}]}`)

		report, err := gw.FetchPluginReport(context.Background(), "credentials")
		require.NoError(t, err)
		assert.Equal(t, "credentials", report.PluginName)
		require.Len(t, report.Migrations, 1)
		assert.Equal(t, "r1", report.Migrations[0].MigrationID)
	})

	t.Run("error case - malformed JSON", func(t *testing.T) {
		gw, _ := newContentServer(t, "credentials/reports", "aggregated_migrations.json", `{not json`)

		_, err := gw.FetchPluginReport(context.Background(), "credentials")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode")
	})
}

func TestGitHubGateway_ListRecipeFiles(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/contents/reports/recipes")
		fmt.Fprint(w, `[
			{"name": "MigrateToJUnit5.json", "type": "file"},
			{"name": "README.md", "type": "file"},
			{"name": "SetupJenkinsfile.json", "type": "file"}
		]`)
	}
	gw, _ := setupTestGateway(t, http.HandlerFunc(handler))

	names, err := gw.ListRecipeFiles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"MigrateToJUnit5.json", "SetupJenkinsfile.json"}, names)
}

func TestGitHubGateway_FetchRecipeReport(t *testing.T) {
	gw, _ := newContentServer(t, "reports/recipes", "MigrateToJUnit5.json",
		`{"recipeId": "io.jenkins.tools.pluginmodernizer.MigrateToJUnit5", "totalApplications": 3, "successCount": 2, "failureCount": 1, "plugins": []}`)

	report, err := gw.FetchRecipeReport(context.Background(), "MigrateToJUnit5.json")
	require.NoError(t, err)
	assert.Equal(t, "io.jenkins.tools.pluginmodernizer.MigrateToJUnit5", report.RecipeID)
	assert.Equal(t, 3, report.TotalApplications)
}

func TestGitHubGateway_FetchSummary(t *testing.T) {
	gw, _ := newContentServer(t, "reports", "summary.md", "# Summary\n- **Total Migrations**: 12\n")

	text, err := gw.FetchSummary(context.Background())
	require.NoError(t, err)
	assert.Contains(t, text, "**Total Migrations**: 12")
}

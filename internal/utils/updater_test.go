package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUpdater(t *testing.T) {
	config := UpdaterConfig{
		Repository:     "test/repo",
		BinaryName:     "test-binary",
		CurrentVersion: "v1.0.0",
	}

	updater := NewUpdater(config)
	assert.NotNil(t, updater)
	assert.Equal(t, config.Repository, updater.config.Repository)
	assert.Equal(t, config.BinaryName, updater.config.BinaryName)
	assert.Equal(t, config.CurrentVersion, updater.config.CurrentVersion)
	assert.Equal(t, "https://api.github.com", updater.config.BaseURL)
	assert.NotNil(t, updater.httpClient)
	assert.NotNil(t, updater.logger)
}

func TestUpdaterCheckForUpdate(t *testing.T) {
	tests := []struct {
		name           string
		currentVersion string
		releaseData    GitHubRelease
		expectedUpdate bool
	}{
		{
			name:           "newer version available",
			currentVersion: "v1.0.0",
			releaseData: GitHubRelease{
				TagName: "v1.1.0",
				Name:    "Release v1.1.0",
			},
			expectedUpdate: true,
		},
		{
			name:           "same version",
			currentVersion: "v1.0.0",
			releaseData: GitHubRelease{
				TagName: "v1.0.0",
				Name:    "Release v1.0.0",
			},
			expectedUpdate: false,
		},
		{
			name:           "current is newer",
			currentVersion: "v1.1.0",
			releaseData: GitHubRelease{
				TagName: "v1.0.0",
				Name:    "Release v1.0.0",
			},
			expectedUpdate: false,
		},
		{
			name:           "draft release is skipped",
			currentVersion: "v1.0.0",
			releaseData: GitHubRelease{
				TagName: "v1.1.0",
				Name:    "Release v1.1.0",
				Draft:   true,
			},
			expectedUpdate: false,
		},
		{
			name:           "prerelease is skipped",
			currentVersion: "v1.0.0",
			releaseData: GitHubRelease{
				TagName:    "v1.1.0-beta.1",
				Name:       "Release v1.1.0-beta.1",
				Prerelease: true,
			},
			expectedUpdate: false,
		},
		{
			name:           "dev build never updates",
			currentVersion: "dev",
			releaseData: GitHubRelease{
				TagName: "v1.1.0",
				Name:    "Release v1.1.0",
			},
			expectedUpdate: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/repos/test/repo/releases/latest", r.URL.Path)

				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(tt.releaseData)
			}))
			defer server.Close()

			updater := NewUpdater(UpdaterConfig{
				Repository:     "test/repo",
				BinaryName:     "test-binary",
				CurrentVersion: tt.currentVersion,
				BaseURL:        server.URL,
			})

			release, hasUpdate, err := updater.CheckForUpdate(context.Background())
			require.NoError(t, err)
			assert.NotNil(t, release)
			assert.Equal(t, tt.expectedUpdate, hasUpdate)
			assert.Equal(t, tt.releaseData.TagName, release.TagName)
		})
	}
}

func TestUpdaterCheckForUpdateServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	updater := NewUpdater(UpdaterConfig{
		Repository:     "test/repo",
		BinaryName:     "test-binary",
		CurrentVersion: "v1.0.0",
		BaseURL:        server.URL,
	})

	_, _, err := updater.CheckForUpdate(context.Background())
	assert.Error(t, err)
}

func TestFindAssetForPlatform(t *testing.T) {
	updater := NewUpdater(UpdaterConfig{
		Repository:     "test/repo",
		BinaryName:     "test-binary",
		CurrentVersion: "v1.0.0",
	})

	matching := fmt.Sprintf("test-binary-%s-%s.tar.gz", runtime.GOOS, runtime.GOARCH)
	assets := []GitHubAsset{
		{Name: "test-binary-plan9-mips.tar.gz"},
		{Name: matching},
		{Name: "checksums.txt"},
	}

	asset, err := updater.findAssetForPlatform(assets)
	require.NoError(t, err)
	assert.Equal(t, matching, asset.Name)

	_, err = updater.findAssetForPlatform([]GitHubAsset{
		{Name: "test-binary-plan9-mips.tar.gz"},
	})
	assert.Error(t, err)
}

func TestIsNewerVersion(t *testing.T) {
	tests := []struct {
		latest  string
		current string
		want    bool
	}{
		{"v1.1.0", "v1.0.0", true},
		{"v2.0.0", "v1.9.9", true},
		{"v1.0.1", "v1.0.0", true},
		{"v1.0.0", "v1.0.0", false},
		{"v1.0.0", "v1.1.0", false},
		{"1.1.0", "1.0.0", true},
		{"v1.2", "v1.1.5", true},
		{"v1.1.0-rc.1", "v1.0.0", true},
		{"v1.1.0", "dev", false},
		{"not-a-version", "v1.0.0", false},
		{"v1.0.0", "", false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s_vs_%s", tt.latest, tt.current), func(t *testing.T) {
			if got := IsNewerVersion(tt.latest, tt.current); got != tt.want {
				t.Errorf("IsNewerVersion(%q, %q) = %v, want %v", tt.latest, tt.current, got, tt.want)
			}
		})
	}
}

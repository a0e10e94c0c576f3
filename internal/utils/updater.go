package utils

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// UpdaterConfig holds configuration for the updater
type UpdaterConfig struct {
	Repository     string
	BinaryName     string
	CurrentVersion string
	// BaseURL overrides the GitHub API endpoint. Empty means the public
	// API; tests point it at a local server.
	BaseURL string
	Logger  *Logger
}

// GitHubRelease represents a GitHub release
type GitHubRelease struct {
	TagName     string        `json:"tag_name"`
	Name        string        `json:"name"`
	Draft       bool          `json:"draft"`
	Prerelease  bool          `json:"prerelease"`
	PublishedAt time.Time     `json:"published_at"`
	Assets      []GitHubAsset `json:"assets"`
}

// GitHubAsset represents a GitHub release asset
type GitHubAsset struct {
	Name               string `json:"name"`
	Size               int64  `json:"size"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// Updater handles binary updates from GitHub releases
type Updater struct {
	config     UpdaterConfig
	httpClient *HTTPClient
	logger     *Logger
}

// NewUpdater creates a new updater
func NewUpdater(config UpdaterConfig) *Updater {
	logger := config.Logger
	if logger == nil {
		logger = NewDefaultLogger()
	}
	if config.BaseURL == "" {
		config.BaseURL = "https://api.github.com"
	}
	client := NewDefaultHTTPClient()
	client.SetLogger(logger)

	return &Updater{
		config:     config,
		httpClient: client,
		logger:     logger,
	}
}

// CheckForUpdate checks if a newer version is available
func (u *Updater) CheckForUpdate(ctx context.Context) (*GitHubRelease, bool, error) {
	u.logger.WithComponent("updater").Debugf("Checking for updates for %s", u.config.BinaryName)

	apiURL := fmt.Sprintf("%s/repos/%s/releases/latest", u.config.BaseURL, u.config.Repository)

	var release GitHubRelease
	if err := u.httpClient.GetJSON(ctx, apiURL, &release); err != nil {
		return nil, false, fmt.Errorf("failed to fetch latest release: %w", err)
	}

	if release.Draft || release.Prerelease {
		u.logger.WithComponent("updater").Debugf("Skipping draft/prerelease version: %s", release.TagName)
		return &release, false, nil
	}

	hasUpdate := IsNewerVersion(release.TagName, u.config.CurrentVersion)
	u.logger.WithComponent("updater").Debugf("Version comparison: current=%s, latest=%s, hasUpdate=%t",
		u.config.CurrentVersion, release.TagName, hasUpdate)

	return &release, hasUpdate, nil
}

// Update downloads the release asset for this platform and replaces the
// running binary with it.
func (u *Updater) Update(ctx context.Context, release *GitHubRelease) error {
	u.logger.WithComponent("updater").Infof("Starting update to version %s", release.TagName)

	asset, err := u.findAssetForPlatform(release.Assets)
	if err != nil {
		return fmt.Errorf("failed to find asset for platform: %w", err)
	}
	u.logger.WithComponent("updater").Infof("Found asset: %s (%d bytes)", asset.Name, asset.Size)

	tempDir, err := os.MkdirTemp("", "elfreader-update-*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	downloadPath := filepath.Join(tempDir, asset.Name)
	if err := u.httpClient.DownloadFile(ctx, asset.BrowserDownloadURL, downloadPath); err != nil {
		return fmt.Errorf("failed to download asset: %w", err)
	}

	if err := u.replaceBinary(downloadPath); err != nil {
		return fmt.Errorf("failed to install new binary: %w", err)
	}

	u.logger.WithComponent("updater").Infof("Updated to version %s", release.TagName)
	return nil
}

// findAssetForPlatform picks the release asset matching the current OS
// and architecture.
func (u *Updater) findAssetForPlatform(assets []GitHubAsset) (*GitHubAsset, error) {
	wantOS := runtime.GOOS
	wantArch := runtime.GOARCH

	for i := range assets {
		name := strings.ToLower(assets[i].Name)
		if strings.Contains(name, wantOS) && strings.Contains(name, wantArch) {
			return &assets[i], nil
		}
	}
	return nil, fmt.Errorf("no asset found for %s/%s", wantOS, wantArch)
}

// replaceBinary swaps the running executable for the downloaded one.
// The old binary is renamed aside first so the replacement is atomic on
// the same filesystem.
func (u *Updater) replaceBinary(newPath string) error {
	current, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to locate current binary: %w", err)
	}
	current, err = filepath.EvalSymlinks(current)
	if err != nil {
		return fmt.Errorf("failed to resolve current binary path: %w", err)
	}

	if err := os.Chmod(newPath, 0o755); err != nil {
		return fmt.Errorf("failed to mark new binary executable: %w", err)
	}

	backup := current + ".old"
	if err := os.Rename(current, backup); err != nil {
		return fmt.Errorf("failed to move current binary aside: %w", err)
	}
	if err := os.Rename(newPath, current); err != nil {
		// Try to restore the previous binary before giving up.
		if restoreErr := os.Rename(backup, current); restoreErr != nil {
			return fmt.Errorf("failed to install new binary (%v) and to restore the old one: %w",
				err, restoreErr)
		}
		return fmt.Errorf("failed to install new binary: %w", err)
	}
	os.Remove(backup)
	return nil
}

// IsNewerVersion reports whether latest is a strictly newer semantic
// version than current. Non-numeric versions (such as "dev") never
// trigger an update.
func IsNewerVersion(latest, current string) bool {
	latestParts, ok := parseVersion(latest)
	if !ok {
		return false
	}
	currentParts, ok := parseVersion(current)
	if !ok {
		return false
	}
	for i := 0; i < 3; i++ {
		if latestParts[i] != currentParts[i] {
			return latestParts[i] > currentParts[i]
		}
	}
	return false
}

func parseVersion(version string) ([3]int, bool) {
	var parts [3]int
	version = strings.TrimPrefix(version, "v")
	if idx := strings.IndexAny(version, "-+"); idx >= 0 {
		version = version[:idx]
	}
	fields := strings.Split(version, ".")
	if len(fields) == 0 || len(fields) > 3 {
		return parts, false
	}
	for i, field := range fields {
		n := 0
		if field == "" {
			return parts, false
		}
		for _, ch := range field {
			if ch < '0' || ch > '9' {
				return parts, false
			}
			n = n*10 + int(ch-'0')
		}
		parts[i] = n
	}
	return parts, true
}

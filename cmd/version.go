// Package cmd holds build metadata shared by the binaries.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-version"
	"go.uber.org/zap"
)

// AppVersion is overridden at build time with -ldflags "-X".
var AppVersion = "v0.0.0"

// ReleasesURL points at the latest-release endpoint of the GitHub API.
var ReleasesURL = "https://api.github.com/repos/nulzo/autorouter/releases/latest"

type githubRelease struct {
	TagName string `json:"tag_name"`
}

// LatestRelease returns the newest published version, or "" with a nil
// error when it is not newer than current.
func LatestRelease(ctx context.Context, client *http.Client, current string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ReleasesURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("release lookup returned %d", resp.StatusCode)
	}

	var release githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", err
	}

	cur, err := version.NewVersion(current)
	if err != nil {
		return "", err
	}
	latest, err := version.NewVersion(release.TagName)
	if err != nil {
		return "", err
	}
	if cur.LessThan(latest) {
		return release.TagName, nil
	}
	return "", nil
}

// CheckForUpdates logs a warning when a newer release exists. Failures are
// logged at debug level and otherwise ignored.
func CheckForUpdates(ctx context.Context, logger *zap.Logger) {
	client := &http.Client{Timeout: 2 * time.Second}

	latest, err := LatestRelease(ctx, client, AppVersion)
	if err != nil {
		logger.Debug("update check skipped", zap.Error(err))
		return
	}
	if latest != "" {
		logger.Warn("a newer release is available",
			zap.String("current", AppVersion),
			zap.String("latest", latest),
		)
	}
}

package version

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gxplayer/gxplayer/filesystem"
	"github.com/gxplayer/gxplayer/network"
	"github.com/gxplayer/gxplayer/where"
	"github.com/metafates/gache"
)

// ReleasesURL is the GitHub endpoint describing the latest release.
var ReleasesURL = "https://api.github.com/repos/gxplayer/gxplayer/releases/latest"

var (
	cacheOnce sync.Once
	cache     *gache.Cache[string]
)

func versionCache() *gache.Cache[string] {
	cacheOnce.Do(func() {
		cache = gache.New[string](&gache.Options{
			Path:       filepath.Join(where.Cache(), "version.json"),
			Lifetime:   time.Hour * 24 * 2,
			FileSystem: &filesystem.GacheFs{},
		})
	})
	return cache
}

// Latest returns the newest released version without its "v" prefix.
// Answers are cached for two days.
func Latest(ctx context.Context) (string, error) {
	c := versionCache()

	if ver, expired, err := c.Get(); err == nil && !expired && ver != "" {
		return ver, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ReleasesURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := network.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("latest release: %s", resp.Status)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", err
	}

	if release.TagName == "" {
		return "", errors.New("empty tag name")
	}

	ver := strings.TrimPrefix(release.TagName, "v")
	_ = c.Set(ver)
	return ver, nil
}

package updater

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/vrsetup/scenctl/pkg/types"
)

// DefaultFeedURL is the release feed consulted by Check.
const DefaultFeedURL = "https://api.github.com/repos/vrsetup/scenctl/releases/latest"

const userAgent = "scenctl-updater"

// checkTimeout bounds the release feed request.
const checkTimeout = 10 * time.Second

// Checker queries a GitHub-style latest-release feed.
type Checker struct {
	FeedURL string
	Client  *http.Client
}

// NewChecker returns a Checker against the default feed.
func NewChecker() *Checker {
	return &Checker{
		FeedURL: DefaultFeedURL,
		Client:  &http.Client{Timeout: checkTimeout},
	}
}

type release struct {
	TagName string  `json:"tag_name"`
	Body    string  `json:"body"`
	HTMLURL string  `json:"html_url"`
	Assets  []asset `json:"assets"`
}

type asset struct {
	Name               string `json:"name"`
	Size               int64  `json:"size"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// Check fetches the latest release and compares it to currentVersion. An
// update without a portable asset still reports HasUpdate so the user can
// be pointed at the release page.
func (c *Checker) Check(ctx context.Context, currentVersion string) (types.UpdateInfo, error) {
	var info types.UpdateInfo

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.FeedURL, nil)
	if err != nil {
		return info, fmt.Errorf("building release request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return info, fmt.Errorf("checking for updates: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return info, fmt.Errorf("reading release response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		snippet := string(body)
		if len(snippet) > 200 {
			snippet = snippet[:200]
		}
		return info, fmt.Errorf("release feed returned status %d: %s", resp.StatusCode, snippet)
	}

	var rel release
	if err := json.Unmarshal(body, &rel); err != nil {
		return info, fmt.Errorf("parsing release response: %w", err)
	}

	latest := strings.TrimPrefix(rel.TagName, "v")
	info = types.UpdateInfo{
		CurrentVersion: currentVersion,
		LatestVersion:  latest,
		HasUpdate:      CompareVersions(latest, currentVersion) > 0,
		ReleaseNotes:   rel.Body,
		ReleaseURL:     rel.HTMLURL,
	}

	if a, found := portableAsset(rel.Assets); info.HasUpdate && found {
		info.DownloadURL = a.BrowserDownloadURL
		info.DownloadSize = a.Size
		info.FileName = a.Name
	}
	return info, nil
}

// portableAsset picks the portable build for the running platform: the
// asset name must contain "portable" and carry the platform's executable
// suffix.
func portableAsset(assets []asset) (asset, bool) {
	suffix := "-" + runtime.GOOS
	if runtime.GOOS == "windows" {
		suffix = ".exe"
	}
	for _, a := range assets {
		if strings.Contains(a.Name, "portable") && strings.HasSuffix(a.Name, suffix) {
			return a, true
		}
	}
	return asset{}, false
}

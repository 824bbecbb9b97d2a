// Package update implements the CLI's self-update check against GitHub
// Releases, adapted from the image editor's update flow: same GitHub API
// fallback detector and blang/semver comparison, trimmed to a check-only
// report (no interactive prompt, no process-replacing exec) since the
// library core must stay side-effect free and the CLI caller decides
// whether to actually replace the binary.
package update

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/blang/semver"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
)

// Info reports the result of a version check.
type Info struct {
	Current   string
	Latest    string
	AssetURL  string
	UpToDate  bool
	HasUpdate bool
}

// Check queries repo's GitHub releases and compares the newest stable
// semver tag against currentVersion.
func Check(repo, currentVersion string) (Info, error) {
	latest, found, err := detectLatest(repo)
	if err != nil {
		return Info{}, fmt.Errorf("update check failed: %w", err)
	}
	info := Info{Current: currentVersion}
	if !found || latest == nil {
		return info, nil
	}
	info.Latest = latest.Version.String()
	info.AssetURL = latest.AssetURL

	current, perr := semver.Parse(currentVersion)
	if perr != nil {
		return info, nil
	}
	if latest.Version.Equals(current) || latest.Version.LT(current) {
		info.UpToDate = true
		return info, nil
	}
	info.HasUpdate = true
	return info, nil
}

// Apply downloads and installs the release at assetURL over exePath.
func Apply(assetURL, exePath string) error {
	return selfupdate.UpdateTo(assetURL, exePath)
}

func detectLatest(repo string) (*selfupdate.Release, bool, error) {
	apiURL := fmt.Sprintf("https://api.github.com/repos/%s/releases", repo)
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(apiURL)
	if err != nil {
		return nil, false, fmt.Errorf("github API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, false, fmt.Errorf("github API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("failed reading github response: %w", err)
	}

	var releases []struct {
		TagName    string `json:"tag_name"`
		Name       string `json:"name"`
		Draft      bool   `json:"draft"`
		Prerelease bool   `json:"prerelease"`
		Assets     []struct {
			Name               string `json:"name"`
			BrowserDownloadURL string `json:"browser_download_url"`
		} `json:"assets"`
	}
	if err := json.Unmarshal(body, &releases); err != nil {
		return nil, false, fmt.Errorf("failed to decode github releases: %w", err)
	}

	type candidate struct {
		ver      semver.Version
		assetURL string
	}
	semverRe := regexp.MustCompile(`v?\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?(\+[0-9A-Za-z.-]+)?`)

	var candidates []candidate
	for _, r := range releases {
		if r.Draft || r.Prerelease {
			continue
		}
		match := semverRe.FindString(r.TagName)
		if match == "" {
			match = semverRe.FindString(r.Name)
			if match == "" {
				continue
			}
		}
		v, perr := semver.Parse(strings.TrimPrefix(match, "v"))
		if perr != nil {
			continue
		}
		assetURL := ""
		for _, a := range r.Assets {
			lower := strings.ToLower(a.Name)
			if strings.Contains(lower, "linux") || strings.Contains(lower, "darwin") || strings.Contains(lower, "windows") {
				assetURL = a.BrowserDownloadURL
				break
			}
			if assetURL == "" {
				assetURL = a.BrowserDownloadURL
			}
		}
		candidates = append(candidates, candidate{ver: v, assetURL: assetURL})
	}
	if len(candidates) == 0 {
		return nil, false, nil
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].ver.GT(candidates[j].ver) })
	best := candidates[0]
	return &selfupdate.Release{Version: best.ver, AssetURL: best.assetURL}, true, nil
}

package types

// UpdateInfo describes the outcome of one release-feed check. It is built
// fresh on every check and never persisted.
//
// HasUpdate true with an empty DownloadURL is a distinct, user-visible
// state: a newer release exists but carries no downloadable portable asset.
type UpdateInfo struct {
	CurrentVersion string
	LatestVersion  string
	HasUpdate      bool
	ReleaseNotes   string
	ReleaseURL     string
	DownloadURL    string
	DownloadSize   int64
	FileName       string
}

// HasAsset reports whether the check found a downloadable portable asset.
func (u UpdateInfo) HasAsset() bool {
	return u.DownloadURL != ""
}

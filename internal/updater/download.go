package updater

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/vrsetup/scenctl/pkg/types"
)

// downloadTimeout bounds the whole transfer, redirects included.
const downloadTimeout = 300 * time.Second

const maxRedirects = 5

const fallbackFileName = "scenctl-update.bin"

// Progress reports transfer state to the caller. It is only emitted when
// the server announces a Content-Length.
type Progress struct {
	Percent     int
	Transferred int64
	Total       int64
}

// Downloader fetches update packages into a destination directory. The
// file is streamed to a .part temp name and renamed only after the body
// completes, so an interrupted transfer never leaves a plausible-looking
// package behind.
type Downloader struct {
	DestDir string
	Client  *http.Client
}

// NewDownloader returns a Downloader writing into destDir. Redirects are
// handled manually so the first hop's filename can be preserved.
func NewDownloader(destDir string) *Downloader {
	return &Downloader{
		DestDir: destDir,
		Client: &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Result describes a completed download.
type Result struct {
	FilePath  string
	FileName  string
	TotalSize int64
}

// Download fetches downloadURL into the destination directory. knownName
// is the asset name from the release feed; when non-empty it wins over
// anything the server suggests. onProgress may be nil.
func (d *Downloader) Download(ctx context.Context, downloadURL, knownName string, onProgress func(Progress)) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, downloadTimeout)
	defer cancel()

	resp, name, err := d.get(ctx, downloadURL, knownName, 0)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	fileName := resolveFileName(name, resp.Header.Get("Content-Disposition"), baseName(downloadURL))
	filePath := filepath.Join(d.DestDir, fileName)
	partPath := filePath + ".part"

	out, err := os.Create(partPath)
	if err != nil {
		return Result{}, fmt.Errorf("creating %s: %w", partPath, err)
	}

	written, err := copyWithProgress(out, resp.Body, resp.ContentLength, onProgress)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(partPath)
		if ctx.Err() != nil {
			return Result{}, fmt.Errorf("download interrupted: %w", ctx.Err())
		}
		return Result{}, fmt.Errorf("downloading %s: %w", fileName, err)
	}

	if err := os.Rename(partPath, filePath); err != nil {
		os.Remove(partPath)
		return Result{}, fmt.Errorf("finalizing %s: %w", fileName, err)
	}
	return Result{FilePath: filePath, FileName: fileName, TotalSize: written}, nil
}

// get issues the request and follows up to maxRedirects redirects by
// hand. The filename derived from the FIRST hop's URL path sticks even
// when later hops point at opaque blob URLs.
func (d *Downloader) get(ctx context.Context, rawURL, knownName string, depth int) (*http.Response, string, error) {
	if depth > maxRedirects {
		return nil, "", types.ErrTooManyRedirects
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("building download request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "*/*")

	resp, err := d.Client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("requesting %s: %w", rawURL, err)
	}

	switch resp.StatusCode {
	case http.StatusMovedPermanently, http.StatusFound, http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
		location := resp.Header.Get("Location")
		resp.Body.Close()
		if location == "" {
			return nil, "", fmt.Errorf("status %d: %w", resp.StatusCode, types.ErrMissingLocation)
		}
		next, err := absolutize(rawURL, location)
		if err != nil {
			return nil, "", err
		}
		if knownName == "" {
			knownName = baseName(rawURL)
		}
		return d.get(ctx, next, knownName, depth+1)
	case http.StatusOK:
		return resp, knownName, nil
	default:
		resp.Body.Close()
		return nil, "", fmt.Errorf("download failed with status %d", resp.StatusCode)
	}
}

func absolutize(base, location string) (string, error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return location, nil
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parsing %s: %w", base, err)
	}
	ref, err := url.Parse(location)
	if err != nil {
		return "", fmt.Errorf("parsing redirect target %s: %w", location, err)
	}
	return u.ResolveReference(ref).String(), nil
}

func baseName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" {
		return ""
	}
	return name
}

// resolveFileName picks the on-disk name: a preserved name (the release
// asset's, or one carried across a redirect hop) wins, then
// Content-Disposition, then the request URL's last path segment, then
// the fallback. Names without an extension are rejected as too opaque
// to trust.
func resolveFileName(preserved, contentDisposition, urlName string) string {
	if plausibleFileName(preserved) {
		return preserved
	}
	if contentDisposition != "" {
		if _, params, err := mime.ParseMediaType(contentDisposition); err == nil {
			name := params["filename"]
			if decoded, err := url.QueryUnescape(name); err == nil {
				name = decoded
			}
			name = filepath.Base(name)
			if plausibleFileName(name) {
				return name
			}
		}
	}
	if plausibleFileName(urlName) {
		return urlName
	}
	return fallbackFileName
}

func plausibleFileName(name string) bool {
	return len(name) >= 5 && strings.Contains(name, ".")
}

func copyWithProgress(dst io.Writer, src io.Reader, total int64, onProgress func(Progress)) (int64, error) {
	buf := make([]byte, 32*1024)
	var written int64
	for {
		n, err := src.Read(buf)
		if n > 0 {
			if _, werr := dst.Write(buf[:n]); werr != nil {
				return written, werr
			}
			written += int64(n)
			if onProgress != nil && total > 0 {
				onProgress(Progress{
					Percent:     int(written * 100 / total),
					Transferred: written,
					Total:       total,
				})
			}
		}
		if err == io.EOF {
			return written, nil
		}
		if err != nil {
			return written, err
		}
	}
}

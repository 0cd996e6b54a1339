package updater

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrsetup/scenctl/pkg/types"
)

func TestDownloadPreservesFirstHopFilename(t *testing.T) {
	payload := strings.Repeat("x", 4096)

	mux := http.NewServeMux()
	mux.HandleFunc("/releases/scenctl-portable-2.0.0.exe", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/blob/0a1b2c3d", http.StatusFound)
	})
	mux.HandleFunc("/blob/0a1b2c3d", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, payload)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	dir := t.TempDir()
	res, err := NewDownloader(dir).Download(context.Background(), srv.URL+"/releases/scenctl-portable-2.0.0.exe", "", nil)
	require.NoError(t, err)

	assert.Equal(t, "scenctl-portable-2.0.0.exe", res.FileName, "opaque blob URL must not rename the package")
	assert.Equal(t, int64(len(payload)), res.TotalSize)

	raw, err := os.ReadFile(res.FilePath)
	require.NoError(t, err)
	assert.Equal(t, payload, string(raw))

	_, err = os.Stat(res.FilePath + ".part")
	assert.True(t, os.IsNotExist(err), "temp file must be renamed away")
}

func TestDownloadKnownNameWins(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="server-says.bin"`)
		io.WriteString(w, "data!")
	}))
	defer srv.Close()

	res, err := NewDownloader(t.TempDir()).Download(context.Background(), srv.URL+"/x", "asset-name.exe", nil)
	require.NoError(t, err)
	assert.Equal(t, "asset-name.exe", res.FileName)
}

func TestDownloadContentDispositionFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="update%20v2.exe"`)
		io.WriteString(w, "data!")
	}))
	defer srv.Close()

	// URL path gives no usable name, so the header is consulted and
	// URL-decoded.
	res, err := NewDownloader(t.TempDir()).Download(context.Background(), srv.URL+"/d", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "update v2.exe", res.FileName)
}

func TestDownloadHeaderNameBeatsURLName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="scenctl-portable-3.1.0.exe"`)
		io.WriteString(w, "data!")
	}))
	defer srv.Close()

	// The server answers 200 directly; its Content-Disposition name
	// outranks the URL's last path segment.
	res, err := NewDownloader(t.TempDir()).Download(context.Background(), srv.URL+"/download/latest.bin", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "scenctl-portable-3.1.0.exe", res.FileName)
}

func TestDownloadURLNameFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "data!")
	}))
	defer srv.Close()

	res, err := NewDownloader(t.TempDir()).Download(context.Background(), srv.URL+"/files/tool-1.2.exe", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "tool-1.2.exe", res.FileName)
}

func TestDownloadTooManyRedirects(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, srv.URL+r.URL.Path, http.StatusFound)
	}))
	defer srv.Close()

	_, err := NewDownloader(t.TempDir()).Download(context.Background(), srv.URL+"/loop.exe", "", nil)
	assert.ErrorIs(t, err, types.ErrTooManyRedirects)
}

func TestDownloadRedirectWithoutLocation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusFound)
	}))
	defer srv.Close()

	_, err := NewDownloader(t.TempDir()).Download(context.Background(), srv.URL+"/x.exe", "", nil)
	assert.ErrorIs(t, err, types.ErrMissingLocation)
}

func TestDownloadRelativeRedirect(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/start.exe", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", "/moved")
		w.WriteHeader(http.StatusMovedPermanently)
	})
	mux.HandleFunc("/moved", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "body!")
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	res, err := NewDownloader(t.TempDir()).Download(context.Background(), srv.URL+"/start.exe", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "start.exe", res.FileName)
}

func TestDownloadServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewDownloader(t.TempDir()).Download(context.Background(), srv.URL+"/gone.exe", "", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestDownloadProgress(t *testing.T) {
	payload := strings.Repeat("y", 64*1024)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
		io.WriteString(w, payload)
	}))
	defer srv.Close()

	var events []Progress
	res, err := NewDownloader(t.TempDir()).Download(context.Background(), srv.URL+"/big.exe", "", func(p Progress) {
		events = append(events, p)
	})
	require.NoError(t, err)
	require.NotEmpty(t, events)

	last := events[len(events)-1]
	assert.Equal(t, 100, last.Percent)
	assert.Equal(t, res.TotalSize, last.Transferred)
	assert.Equal(t, int64(len(payload)), last.Total)
}

func TestDownloadCancelledRemovesPartFile(t *testing.T) {
	started := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "1000000")
		io.WriteString(w, strings.Repeat("z", 1024))
		w.(http.Flusher).Flush()
		close(started)
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	dir := t.TempDir()
	_, err := NewDownloader(dir).Download(ctx, srv.URL+"/slow.exe", "", nil)
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "interrupted download must not leave files behind")
}

func TestResolveFileName(t *testing.T) {
	tests := []struct {
		name        string
		preserved   string
		disposition string
		urlName     string
		want        string
	}{
		{name: "preserved wins", preserved: "pkg-1.0.exe", disposition: `attachment; filename="other.exe"`, urlName: "path.exe", want: "pkg-1.0.exe"},
		{name: "header beats url name", preserved: "", disposition: `attachment; filename="other.exe"`, urlName: "path.exe", want: "other.exe"},
		{name: "short preserved name rejected", preserved: "a.b", disposition: `attachment; filename="real-name.exe"`, want: "real-name.exe"},
		{name: "header path stripped to base", preserved: "", disposition: `attachment; filename="../../evil.exe"`, want: "evil.exe"},
		{name: "url name when no header", preserved: "", disposition: "", urlName: "path.exe", want: "path.exe"},
		{name: "short url name rejected", preserved: "", disposition: "", urlName: "d", want: fallbackFileName},
		{name: "fallback when nothing usable", preserved: "", disposition: "", want: fallbackFileName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveFileName(tt.preserved, tt.disposition, tt.urlName))
		})
	}
}

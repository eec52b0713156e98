package remotecontent

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	derrors "github.com/OpenStickCommunity/gp2040-ce-docs/internal/errors"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/frontmatter"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/logfields"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/metrics"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/retry"
)

const maxDocumentBytes = 10 * 1024 * 1024

// Result lists what a fetch did, by document.
type Result struct {
	Name      string
	Written   []string
	Unchanged []string
}

// Fetcher downloads the documents of one plugin activation.
type Fetcher struct {
	opts     Options
	client   *http.Client
	policy   retry.Policy
	recorder metrics.Recorder
}

// NewFetcher returns a fetcher with a 30s HTTP timeout and the default
// retry policy.
func NewFetcher(opts Options) *Fetcher {
	return &Fetcher{
		opts:     opts,
		client:   &http.Client{Timeout: 30 * time.Second},
		policy:   retry.DefaultPolicy(),
		recorder: metrics.NoopRecorder{},
	}
}

func (f *Fetcher) WithClient(c *http.Client) *Fetcher {
	if c != nil {
		f.client = c
	}
	return f
}

func (f *Fetcher) WithPolicy(p retry.Policy) *Fetcher {
	f.policy = p
	return f
}

func (f *Fetcher) WithRecorder(r metrics.Recorder) *Fetcher {
	if r != nil {
		f.recorder = r
	}
	return f
}

// Options returns the plugin options the fetcher was built from.
func (f *Fetcher) Options() Options { return f.opts }

// Fetch downloads every document to siteDir/outDir/document. A document
// whose fingerprint matches the file on disk is not rewritten. The first
// failure stops the fetch; the partial result is returned with the error.
func (f *Fetcher) Fetch(ctx context.Context, siteDir string) (*Result, error) {
	start := time.Now()
	res := &Result{Name: f.opts.Name}
	err := f.fetchAll(ctx, siteDir, res)
	f.recorder.ObserveFetchDuration(f.opts.Name, time.Since(start), err == nil)
	if err != nil {
		return res, err
	}
	slog.Info("Remote content fetched",
		logfields.Plugin(f.opts.Name),
		slog.Int("written", len(res.Written)),
		slog.Int("unchanged", len(res.Unchanged)),
		logfields.Duration(time.Since(start)))
	return res, nil
}

func (f *Fetcher) fetchAll(ctx context.Context, siteDir string, res *Result) error {
	for _, doc := range f.opts.Documents {
		if err := ctx.Err(); err != nil {
			return err
		}
		target, err := f.target(siteDir, doc)
		if err != nil {
			return err
		}
		data, err := f.download(ctx, doc)
		if err != nil {
			f.recorder.IncFetchResult(f.opts.Name, metrics.ResultFailed)
			return err
		}
		changed, err := writeIfChanged(target, data)
		if err != nil {
			f.recorder.IncFetchResult(f.opts.Name, metrics.ResultFailed)
			return err
		}
		if changed {
			res.Written = append(res.Written, doc)
			f.recorder.IncFetchResult(f.opts.Name, metrics.ResultSuccess)
			slog.Debug("Remote document written", logfields.Plugin(f.opts.Name), logfields.Document(doc), logfields.Path(target))
		} else {
			res.Unchanged = append(res.Unchanged, doc)
			f.recorder.IncFetchResult(f.opts.Name, metrics.ResultUnchanged)
			slog.Debug("Remote document unchanged", logfields.Plugin(f.opts.Name), logfields.Document(doc))
		}
	}
	return nil
}

func (f *Fetcher) target(siteDir, doc string) (string, error) {
	clean, ok := cleanDocument(doc)
	if !ok {
		return "", invalid("documents", fmt.Sprintf("document %q must be a relative path inside the output directory", doc))
	}
	return filepath.Join(siteDir, filepath.FromSlash(f.opts.OutDir), filepath.FromSlash(clean)), nil
}

func (f *Fetcher) download(ctx context.Context, doc string) ([]byte, error) {
	url := f.opts.SourceBaseURL + doc
	var data []byte
	err := f.policy.Do(ctx, func(attempt int) error {
		if attempt > 0 {
			f.recorder.IncFetchRetry(f.opts.Name)
			slog.Warn("Retrying remote document", logfields.Plugin(f.opts.Name), logfields.URL(url), slog.Int("attempt", attempt))
		}
		var err error
		data, err = f.get(ctx, url)
		return err
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryConfig, "invalid remote document URL").
			WithContext("url", url).
			Build()
	}
	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, derrors.WrapError(err, derrors.CategoryNetwork, "remote document request failed").
			Retryable().
			WithContext("url", url).
			Build()
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return nil, derrors.NotFoundError("remote document not found").
			WithContext("url", url).
			WithContext("status", resp.StatusCode).
			Build()
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return nil, derrors.NetworkError(fmt.Sprintf("remote document returned HTTP %d", resp.StatusCode)).
			WithContext("url", url).
			WithContext("status", resp.StatusCode).
			Build()
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, derrors.NewError(derrors.CategoryNetwork, fmt.Sprintf("remote document returned HTTP %d", resp.StatusCode)).
			WithContext("url", url).
			WithContext("status", resp.StatusCode).
			Build()
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes+1))
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryNetwork, "failed to read remote document").
			Retryable().
			WithContext("url", url).
			Build()
	}
	if len(data) > maxDocumentBytes {
		return nil, derrors.NewError(derrors.CategoryNetwork, "remote document too large").
			WithContext("url", url).
			WithContext("limit", maxDocumentBytes).
			Build()
	}
	return data, nil
}

// writeIfChanged replaces target with data through a temp file and rename.
// It reports false when the existing file already holds the same content.
func writeIfChanged(target string, data []byte) (bool, error) {
	existing, err := os.ReadFile(target)
	switch {
	case err == nil:
		if sameContent(existing, data) {
			return false, nil
		}
	case !errors.Is(err, os.ErrNotExist):
		return false, derrors.WrapError(err, derrors.CategoryFileSystem, "failed to read existing document").
			WithContext("path", target).
			Build()
	}

	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, derrors.WrapError(err, derrors.CategoryFileSystem, "failed to create output directory").
			WithContext("path", dir).
			Build()
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return false, derrors.WrapError(err, derrors.CategoryFileSystem, "failed to create temporary file").
			WithContext("path", dir).
			Build()
	}
	tmpPath := tmp.Name()
	_, werr := tmp.Write(data)
	cerr := tmp.Close()
	if werr == nil {
		werr = cerr
	}
	if werr == nil {
		werr = os.Chmod(tmpPath, 0o644)
	}
	if werr == nil {
		werr = os.Rename(tmpPath, target)
	}
	if werr != nil {
		_ = os.Remove(tmpPath)
		return false, derrors.WrapError(werr, derrors.CategoryFileSystem, "failed to write document").
			WithContext("path", target).
			Build()
	}
	return true, nil
}

// sameContent reports whether the local copy holds exactly the remote bytes
// once any fingerprint stamp is removed from it. Newline and frontmatter
// formatting differences count as changes.
func sameContent(local, remote []byte) bool {
	if bytes.Equal(local, remote) {
		return true
	}
	fl, errL := frontmatter.Fingerprint(local)
	fr, errR := frontmatter.Fingerprint(remote)
	if errL != nil || errR != nil || fl != fr {
		return false
	}
	unstamped, err := frontmatter.Unstamp(local)
	return err == nil && bytes.Equal(unstamped, remote)
}

// Cleanup removes the downloaded documents when the activation asks for it.
// It returns the number of files removed.
func (f *Fetcher) Cleanup(siteDir string) (int, error) {
	if !f.opts.PerformCleanup {
		return 0, nil
	}
	removed := 0
	for _, doc := range f.opts.Documents {
		target, err := f.target(siteDir, doc)
		if err != nil {
			return removed, err
		}
		err = os.Remove(target)
		switch {
		case err == nil:
			removed++
		case errors.Is(err, os.ErrNotExist):
		default:
			return removed, derrors.WrapError(err, derrors.CategoryFileSystem, "failed to remove document").
				WithContext("path", target).
				Build()
		}
	}
	slog.Info("Remote content cleaned up", logfields.Plugin(f.opts.Name), logfields.Count(removed))
	return removed, nil
}

package commands

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	derrors "github.com/OpenStickCommunity/gp2040-ce-docs/internal/errors"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/logfields"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/remotecontent"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/retry"
)

// FetchCmd implements the 'fetch' command.
type FetchCmd struct {
	Plugin     string        `short:"p" help:"Only run the remote content activation with this name"`
	Cleanup    bool          `help:"Remove downloaded documents instead of fetching (activations with performCleanup only)"`
	Retries    int           `help:"Retries per document after a transient failure" default:"2"`
	RetryDelay time.Duration `name:"retry-delay" help:"Initial delay between retries" default:"1s"`
	Timeout    time.Duration `help:"Overall timeout" default:"5m"`
}

func (f *FetchCmd) Run(g *Global, root *CLI) error {
	s, err := loadSite(root)
	if err != nil {
		return err
	}
	all, err := s.RemoteContent()
	if err != nil {
		return err
	}
	selected := all[:0:0]
	for _, opts := range all {
		if f.Plugin == "" || opts.Name == f.Plugin {
			selected = append(selected, opts)
		}
	}
	if f.Plugin != "" && len(selected) == 0 {
		return derrors.NotFoundError(fmt.Sprintf("no remote content activation named %q", f.Plugin)).
			WithContext("plugin", f.Plugin).
			Build()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, f.Timeout)
	defer cancelTimeout()

	policy := retry.NewPolicy(retry.ModeLinear, f.RetryDelay, 0, f.Retries)
	out := g.out()
	var errs []error
	for _, opts := range selected {
		fetcher := remotecontent.NewFetcher(opts).WithPolicy(policy)
		if f.Cleanup {
			n, err := fetcher.Cleanup(s.Dir())
			if err != nil {
				errs = append(errs, err)
				continue
			}
			_, _ = fmt.Fprintf(out, "%s: removed %d\n", opts.Name, n)
			continue
		}
		res, err := fetcher.Fetch(ctx, s.Dir())
		if res != nil {
			_, _ = fmt.Fprintf(out, "%s: %d written, %d unchanged\n", opts.Name, len(res.Written), len(res.Unchanged))
		}
		if err != nil {
			g.logger().Error("Remote content fetch failed", logfields.Plugin(opts.Name), logfields.Error(err))
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	// The first error decides the exit code.
	return errors.Join(errs...)
}

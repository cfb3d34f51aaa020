// Package download fetches URLs to local paths through the external
// download tools validated by the requirement check. Transports are tried
// in order, one attempt each, until one of them produces the destination
// file.
package download

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/myelo-dev/myelo-installer/internal/messages"
	"github.com/myelo-dev/myelo-installer/internal/run"
)

// Transport is one external download tool invocation strategy.
type Transport struct {
	// Tool is the executable name looked up on PATH.
	Tool string
	// Args builds the tool's argument list for a dest/url pair.
	Args func(dest string, url string) []string
}

// Transports is the ordered strategy list: curl first, wget as fallback.
func Transports() []Transport {
	return []Transport{
		{Tool: "curl", Args: func(dest, url string) []string {
			return []string{"-fL", "--retry", "0", "-o", dest, url}
		}},
		{Tool: "wget", Args: func(dest, url string) []string {
			return []string{"-O", dest, url}
		}},
	}
}

// Fetcher downloads URLs using the first transport that works.
type Fetcher struct {
	Runner run.Runner
}

// Fetch downloads url to dest, overwriting dest unconditionally. A
// transport succeeds only when the tool exits zero and dest exists
// afterwards. When every available transport fails the error carries a
// connectivity hint; no retries or backoff beyond the transport order.
func (f *Fetcher) Fetch(ctx context.Context, dest string, url string) error {
	attempted := false
	for _, tr := range Transports() {
		if _, err := f.Runner.LookPath(tr.Tool); err != nil {
			continue
		}
		attempted = true
		log.Debug().Str("tool", tr.Tool).Str("url", url).Msg("download attempt")
		err := f.Runner.Run(ctx, run.Cmd{Name: tr.Tool, Args: tr.Args(dest, url)})
		if err == nil && fileExists(dest) {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Warn().Str("tool", tr.Tool).Err(err).Msg("download transport failed")
	}
	if !attempted {
		return errors.New(messages.DownloadNoTransports)
	}
	return fmt.Errorf(messages.DownloadAllFailedFmt, url)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

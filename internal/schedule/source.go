package schedule

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/tartampluch/go-sitter/internal/config"
)

// SourceConfig tells LoadRoster where the roster lives.
type SourceConfig struct {
	Mode      string // config.SourceModeBuiltin, config.SourceModeLocal or config.SourceModeWeb
	LocalPath string // Path to a YAML roster
	WebURL    string // http(s) URL of a YAML roster
	WebUser   string // HTTP Basic Auth Username
	WebPass   string // HTTP Basic Auth Password
}

// SourceFromLocation picks the source mode from a single user-supplied location:
// empty means the built-in roster, an http(s) URL means web, anything else a file.
func SourceFromLocation(location, user string) SourceConfig {
	switch {
	case location == "":
		return SourceConfig{Mode: config.SourceModeBuiltin}
	case strings.HasPrefix(location, config.SchemeHTTP+"://"), strings.HasPrefix(location, config.SchemeHTTPS+"://"):
		return SourceConfig{Mode: config.SourceModeWeb, WebURL: location, WebUser: user}
	default:
		return SourceConfig{Mode: config.SourceModeLocal, LocalPath: location}
	}
}

// LoadRoster reads and validates the roster from the configured source.
func LoadRoster(ctx context.Context, cfg SourceConfig, fetcher RosterFetcher) (*Roster, error) {
	start := time.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompSchedule,
		config.LogKeyMode, cfg.Mode,
	)

	if cfg.Mode == config.SourceModeBuiltin || cfg.Mode == "" {
		roster, err := DefaultRoster()
		if err == nil {
			logLoaded(log, roster, start)
		}
		return roster, err
	}

	reader, err := acquireStream(ctx, cfg, fetcher)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s: %w", config.ErrRosterRead, err)
	}
	defer func() { _ = reader.Close() }()

	roster, err := DecodeRoster(reader)
	if err != nil {
		return nil, err
	}
	logLoaded(log, roster, start)
	return roster, nil
}

// acquireStream opens the appropriate data source based on configuration.
func acquireStream(ctx context.Context, cfg SourceConfig, fetcher RosterFetcher) (io.ReadCloser, error) {
	switch cfg.Mode {
	case config.SourceModeLocal:
		if cfg.LocalPath == "" {
			return nil, errors.New(config.ErrLocalPathEmpty)
		}
		return os.Open(cfg.LocalPath)
	case config.SourceModeWeb:
		if cfg.WebURL == "" {
			return nil, errors.New(config.ErrWebURLEmpty)
		}
		if fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return fetcher.Fetch(ctx, cfg.WebURL, cfg.WebUser, cfg.WebPass)
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrModeUnsupport, cfg.Mode)
	}
}

func logLoaded(log *slog.Logger, r *Roster, start time.Time) {
	shifts := 0
	for i := range r.Families {
		shifts += len(r.Families[i].Schedule)
	}
	log.Info(config.MsgRosterLoaded,
		config.LogKeyFamilies, len(r.Families),
		config.LogKeyShifts, shifts,
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
}

package hostlists

import (
	"github.com/agentstation/utc"

	"github.com/agentstation/hostlists/pkg/compiler"
	"github.com/agentstation/hostlists/pkg/constants"
	pkgerrors "github.com/agentstation/hostlists/pkg/errors"
)

// config holds a Registry's resolved settings.
type config struct {
	dir         string            // registry root
	assets      string            // published artifacts directory
	compiler    compiler.Compiler // list compiler collaborator
	baseURL     string            // download URL base for filter assets
	now         func() utc.Time   // clock, injectable for tests
	skipLocales bool              // build filters without folding locales
}

func defaultConfig() *config {
	return &config{
		dir:      ".",
		assets:   constants.AssetsDir,
		compiler: compiler.NewExec(""),
		now:      utc.Now,
	}
}

// Option configures a Registry.
type Option func(*config) error

// WithDir sets the registry root directory.
func WithDir(dir string) Option {
	return func(c *config) error {
		if dir == "" {
			return pkgerrors.NewConfigError("registry", "directory must not be empty", nil)
		}
		c.dir = dir
		return nil
	}
}

// WithAssetsDir sets the directory published artifacts are written to.
func WithAssetsDir(dir string) Option {
	return func(c *config) error {
		if dir == "" {
			return pkgerrors.NewConfigError("registry", "assets directory must not be empty", nil)
		}
		c.assets = dir
		return nil
	}
}

// WithCompiler sets the list compiler collaborator.
func WithCompiler(comp compiler.Compiler) Option {
	return func(c *config) error {
		if comp == nil {
			return pkgerrors.NewConfigError("registry", "compiler must not be nil", nil)
		}
		c.compiler = comp
		return nil
	}
}

// WithOfflineCompiler switches to the offline compiler, which assembles
// local sources without invoking the external compiler or the network.
func WithOfflineCompiler() Option {
	return func(c *config) error {
		c.compiler = compiler.NewOffline()
		return nil
	}
}

// WithDownloadURLBase overrides the base URL under which filter assets are
// published.
func WithDownloadURLBase(base string) Option {
	return func(c *config) error {
		c.baseURL = base
		return nil
	}
}

// WithClock overrides the timestamp source. Tests use this to pin revision
// times.
func WithClock(now func() utc.Time) Option {
	return func(c *config) error {
		if now != nil {
			c.now = now
		}
		return nil
	}
}

// WithSkipLocales builds the filter catalogs without folding locale
// fragments.
func WithSkipLocales() Option {
	return func(c *config) error {
		c.skipLocales = true
		return nil
	}
}

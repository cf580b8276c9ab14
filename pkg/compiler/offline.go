package compiler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/agentstation/utc"
	"github.com/miekg/dns"
	"github.com/tidwall/gjson"

	"github.com/agentstation/hostlists/pkg/constants"
	pkgerrors "github.com/agentstation/hostlists/pkg/errors"
	"github.com/agentstation/hostlists/pkg/logging"
)

// Offline compiles filter lists from local sources only. It concatenates the
// configured source files, normalizes line endings, drops rules whose
// hostnames fail validation, and emits a standard header. Remote sources are
// an error: fetching is the external compiler's job.
type Offline struct{}

// NewOffline creates an offline compiler.
func NewOffline() *Offline {
	return &Offline{}
}

// Compile assembles dir's local sources into compiled content.
func (o *Offline) Compile(ctx context.Context, dir string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	config := filepath.Join(dir, constants.ConfigurationFile)
	data, err := os.ReadFile(config)
	if err != nil {
		return nil, pkgerrors.WrapIO("read", config, err)
	}

	var out strings.Builder
	if name := gjson.GetBytes(data, "name").String(); name != "" {
		fmt.Fprintf(&out, "! Title: %s\n", name)
	}
	out.WriteString("! Compiled by the hostlists offline compiler\n")
	fmt.Fprintf(&out, "! Last modified: %s\n", utc.Now().Format(time.RFC3339))

	log := logging.FromContext(ctx)
	sources := gjson.GetBytes(data, "sources.#.source")
	for _, source := range sources.Array() {
		url := source.String()
		if url == "" {
			continue
		}
		if strings.Contains(url, "://") {
			return nil, pkgerrors.NewConfigError("offline compiler",
				fmt.Sprintf("remote source %s requires the external compiler", url), nil)
		}

		path := url
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, pkgerrors.WrapIO("read", path, err)
		}

		out.WriteString("\n")
		for _, line := range strings.Split(string(raw), "\n") {
			line = strings.TrimRight(line, "\r")
			if keep, reason := keepLine(line); keep {
				out.WriteString(line)
				out.WriteString("\n")
			} else if reason != "" {
				log.Warn().
					Str("source", url).
					Str("line", line).
					Msg(reason)
			}
		}
	}

	return []byte(out.String()), nil
}

// keepLine decides whether a source line belongs in the compiled output.
// Comments and adblock-style rules pass through untouched; hosts-style and
// bare-domain lines must carry a valid hostname. The reason is non-empty only
// when a line is dropped for a cause worth surfacing.
func keepLine(line string) (bool, string) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false, ""
	}
	if strings.HasPrefix(trimmed, "!") || strings.HasPrefix(trimmed, "#") {
		return true, ""
	}
	if strings.HasPrefix(trimmed, "||") || strings.HasPrefix(trimmed, "@@") ||
		strings.HasPrefix(trimmed, "/") || strings.ContainsAny(trimmed, "^$") {
		return true, ""
	}

	fields := strings.Fields(trimmed)
	if !validHostname(fields[len(fields)-1]) {
		return false, "Dropping rule with invalid hostname"
	}
	return true, ""
}

// validHostname reports whether s is an acceptable DNS name.
func validHostname(s string) bool {
	host := strings.TrimSuffix(strings.ToLower(s), ".")
	if host == "" {
		return false
	}
	_, ok := dns.IsDomainName(host)
	return ok
}

// Package compiler turns a filter list's source configuration into compiled
// rule content. The registry treats compilation as a black box: the default
// implementation shells out to the external hostlist compiler, while the
// offline implementation assembles local sources without network access.
package compiler

import (
	"context"
)

// Compiler compiles one filter list directory into rule content.
// The directory must contain a configuration.json describing the sources.
// Implementations return the compiled content without writing it anywhere;
// persistence decisions belong to the caller.
type Compiler interface {
	Compile(ctx context.Context, dir string) ([]byte, error)
}

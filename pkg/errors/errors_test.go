package errors_test

import (
	"errors"
	"testing"

	pkgerrors "github.com/agentstation/hostlists/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{
			Resource: "filter",
			ID:       "1_popular",
		}
		assert.Equal(t, "filter with ID 1_popular not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewNotFoundError("tag", "purpose:ads")
		assert.Equal(t, "tag with ID purpose:ads not found", err.Error())
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("service", "mastodon")
		wrapped := errors.Join(errors.New("failed"), base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "homepage",
			Message: "cannot be empty",
		}
		assert.Equal(t, "validation failed for field homepage: cannot be empty", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Message: "invalid descriptor",
		}
		assert.Equal(t, "validation failed: invalid descriptor", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewValidationError("expires", "15 weeks", "unknown unit")
		assert.Contains(t, err.Error(), "expires")
		assert.Contains(t, err.Error(), "unknown unit")
	})
}

func TestCompileError(t *testing.T) {
	t.Run("with output", func(t *testing.T) {
		err := &pkgerrors.CompileError{
			FilterID: "2_base",
			Output:   "fatal: source unreachable",
			Err:      errors.New("exit status 1"),
		}
		assert.Contains(t, err.Error(), "2_base")
		assert.Contains(t, err.Error(), "source unreachable")
		assert.True(t, errors.Is(err, pkgerrors.ErrCompileFailed))
	})

	t.Run("without output", func(t *testing.T) {
		err := pkgerrors.NewCompileError("3_spyware", "", errors.New("signal: killed"))
		assert.Contains(t, err.Error(), "3_spyware")
		assert.Contains(t, err.Error(), "signal: killed")
		assert.NotContains(t, err.Error(), "Output:")
	})

	t.Run("unwrap", func(t *testing.T) {
		baseErr := errors.New("exit status 2")
		err := &pkgerrors.CompileError{FilterID: "4_social", Err: baseErr}
		assert.Equal(t, baseErr, err.Unwrap())
		assert.True(t, pkgerrors.IsCompileFailed(err))
	})

	t.Run("wrap helper", func(t *testing.T) {
		err := pkgerrors.WrapCompile("5_annoyances", errors.New("timed out"))
		compErr, ok := err.(*pkgerrors.CompileError)
		require.True(t, ok)
		assert.Equal(t, "5_annoyances", compErr.FilterID)

		assert.Nil(t, pkgerrors.WrapCompile("5_annoyances", nil))
	})
}

func TestAssetError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.AssetError{
			ServiceID: "tiktok",
			Asset:     "icon",
			Message:   "not a valid SVG document",
		}
		assert.Equal(t, "invalid icon asset for service tiktok: not a valid SVG document", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidAsset))
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewAssetError("snapchat", "icon", "empty document")
		assert.Contains(t, err.Error(), "snapchat")
		assert.True(t, pkgerrors.IsInvalidAsset(err))
	})
}

func TestConfigError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.ConfigError{
			Component: "registry",
			Message:   "filters directory missing",
		}
		assert.Contains(t, err.Error(), "registry")
		assert.Contains(t, err.Error(), "filters directory missing")
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewConfigError("compiler", "command cannot be empty", nil)
		assert.Contains(t, err.Error(), "compiler")
		assert.Contains(t, err.Error(), "cannot be empty")
	})
}

func TestIOError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.IOError{
			Operation: "read",
			Path:      "/tmp/metadata.json",
			Message:   "permission denied",
			Err:       errors.New("permission denied"),
		}
		assert.Contains(t, err.Error(), "read")
		assert.Contains(t, err.Error(), "/tmp/metadata.json")
		assert.Contains(t, err.Error(), "permission denied")
	})

	t.Run("unwrap", func(t *testing.T) {
		baseErr := errors.New("disk full")
		err := pkgerrors.NewIOError("write", "/data/filters.json", baseErr)
		assert.Equal(t, baseErr, err.Unwrap())
	})

	t.Run("wrap helper", func(t *testing.T) {
		baseErr := errors.New("no such file")
		err := pkgerrors.WrapIO("open", "filters/1/filter.txt", baseErr)
		ioErr, ok := err.(*pkgerrors.IOError)
		require.True(t, ok)
		assert.Equal(t, "open", ioErr.Operation)
		assert.Equal(t, "filters/1/filter.txt", ioErr.Path)
	})
}

func TestResourceError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.ResourceError{
			Operation: "create",
			Resource:  "service",
			ID:        "facebook",
			Message:   "already exists",
			Err:       pkgerrors.ErrAlreadyExists,
		}
		assert.Contains(t, err.Error(), "create")
		assert.Contains(t, err.Error(), "service")
		assert.Contains(t, err.Error(), "facebook")
		assert.Contains(t, err.Error(), "already exists")
		assert.True(t, errors.Is(err, pkgerrors.ErrAlreadyExists))
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewResourceError("load", "locale", "zh-cn", errors.New("malformed"))
		assert.Contains(t, err.Error(), "load")
		assert.Contains(t, err.Error(), "locale")
		assert.Contains(t, err.Error(), "zh-cn")
	})

	t.Run("wrap helper", func(t *testing.T) {
		err := pkgerrors.WrapResource("update", "filter", "1_popular", errors.New("stale revision"))
		resErr, ok := err.(*pkgerrors.ResourceError)
		require.True(t, ok)
		assert.Equal(t, "update", resErr.Operation)
		assert.Equal(t, "filter", resErr.Resource)
	})
}

func TestParseError(t *testing.T) {
	t.Run("with file and position", func(t *testing.T) {
		err := &pkgerrors.ParseError{
			Format:  "json",
			File:    "metadata.json",
			Line:    10,
			Column:  5,
			Message: "unexpected token",
		}
		assert.Contains(t, err.Error(), "json")
		assert.Contains(t, err.Error(), "metadata.json")
		assert.Contains(t, err.Error(), "10:5")
		assert.Contains(t, err.Error(), "unexpected token")
	})

	t.Run("with file only", func(t *testing.T) {
		err := &pkgerrors.ParseError{
			Format:  "yaml",
			File:    "services/whatsapp.yaml",
			Message: "invalid indentation",
		}
		assert.Contains(t, err.Error(), "yaml")
		assert.Contains(t, err.Error(), "services/whatsapp.yaml")
		assert.Contains(t, err.Error(), "invalid indentation")
	})

	t.Run("format only", func(t *testing.T) {
		err := &pkgerrors.ParseError{
			Format:  "svg",
			Message: "syntax error",
		}
		assert.Contains(t, err.Error(), "svg parse error")
		assert.Contains(t, err.Error(), "syntax error")
	})

	t.Run("constructor and wrap", func(t *testing.T) {
		baseErr := errors.New("EOF")
		err := pkgerrors.NewParseError("json", "revision.json", "unexpected end", baseErr)
		assert.Contains(t, err.Error(), "json")
		assert.Equal(t, baseErr, err.Unwrap())

		wrapped := pkgerrors.WrapParse("yaml", "services/x.yaml", baseErr)
		parseErr, ok := wrapped.(*pkgerrors.ParseError)
		require.True(t, ok)
		assert.Equal(t, "yaml", parseErr.Format)
		assert.Equal(t, "services/x.yaml", parseErr.File)
	})
}

func TestProcessError(t *testing.T) {
	t.Run("with output", func(t *testing.T) {
		err := &pkgerrors.ProcessError{
			Operation: "compile filter",
			Command:   "hostlist-compiler -c configuration.json",
			Output:    "Error: source not found",
			ExitCode:  1,
			Err:       errors.New("exit status 1"),
		}
		assert.Contains(t, err.Error(), "compile filter")
		assert.Contains(t, err.Error(), "hostlist-compiler")
		assert.Contains(t, err.Error(), "source not found")
	})

	t.Run("without output", func(t *testing.T) {
		err := pkgerrors.NewProcessError("compile filter", "hostlist-compiler", "", errors.New("signal: killed"))
		assert.Contains(t, err.Error(), "compile filter")
		assert.Contains(t, err.Error(), "signal: killed")
		assert.NotContains(t, err.Error(), "Output:")
	})

	t.Run("unwrap", func(t *testing.T) {
		baseErr := errors.New("command not found")
		err := &pkgerrors.ProcessError{
			Operation: "compile",
			Command:   "hostlist-compiler",
			Err:       baseErr,
		}
		assert.Equal(t, baseErr, err.Unwrap())
	})
}

func TestHelperFunctions(t *testing.T) {
	t.Run("IsNotFound", func(t *testing.T) {
		err1 := pkgerrors.NewNotFoundError("filter", "missing")
		err2 := errors.New("not found")
		err3 := pkgerrors.ErrNotFound

		assert.True(t, pkgerrors.IsNotFound(err1))
		assert.False(t, pkgerrors.IsNotFound(err2))
		assert.True(t, pkgerrors.IsNotFound(err3))
	})

	t.Run("IsAlreadyExists", func(t *testing.T) {
		err1 := &pkgerrors.ResourceError{Err: pkgerrors.ErrAlreadyExists}
		err2 := pkgerrors.ErrAlreadyExists

		assert.True(t, pkgerrors.IsAlreadyExists(err1))
		assert.True(t, pkgerrors.IsAlreadyExists(err2))
	})

	t.Run("IsCompileFailed", func(t *testing.T) {
		err := pkgerrors.NewCompileError("1_popular", "", errors.New("boom"))
		assert.True(t, pkgerrors.IsCompileFailed(err))
		assert.False(t, pkgerrors.IsCompileFailed(errors.New("boom")))
	})

	t.Run("IsInvalidAsset", func(t *testing.T) {
		err := pkgerrors.NewAssetError("vk", "icon", "empty")
		assert.True(t, pkgerrors.IsInvalidAsset(err))
	})

	t.Run("IsTimeout", func(t *testing.T) {
		assert.True(t, pkgerrors.IsTimeout(pkgerrors.ErrTimeout))
	})

	t.Run("IsCanceled", func(t *testing.T) {
		assert.True(t, pkgerrors.IsCanceled(pkgerrors.ErrCanceled))
	})
}

func TestWrapHelpers(t *testing.T) {
	t.Run("WrapValidation", func(t *testing.T) {
		err := pkgerrors.WrapValidation("name", errors.New("too short"))
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "name")
		assert.Contains(t, err.Error(), "too short")

		// nil error returns nil
		assert.Nil(t, pkgerrors.WrapValidation("field", nil))
	})

	t.Run("WrapIO", func(t *testing.T) {
		err := pkgerrors.WrapIO("write", "/tmp/file", errors.New("disk full"))
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "write")
		assert.Contains(t, err.Error(), "/tmp/file")

		assert.Nil(t, pkgerrors.WrapIO("read", "file", nil))
	})

	t.Run("WrapResource", func(t *testing.T) {
		err := pkgerrors.WrapResource("delete", "service", "tinder", errors.New("in use"))
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "delete")
		assert.Contains(t, err.Error(), "service")
		assert.Contains(t, err.Error(), "tinder")

		assert.Nil(t, pkgerrors.WrapResource("create", "filter", "test", nil))
	})

	t.Run("WrapParse", func(t *testing.T) {
		err := pkgerrors.WrapParse("json", "configuration.json", errors.New("invalid syntax"))
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "json")
		assert.Contains(t, err.Error(), "configuration.json")

		assert.Nil(t, pkgerrors.WrapParse("yaml", "file.yaml", nil))
	})
}

func TestErrorChaining(t *testing.T) {
	t.Run("multiple wrapping", func(t *testing.T) {
		baseErr := errors.New("exit status 1")
		procErr := &pkgerrors.ProcessError{
			Operation: "compile filter",
			Command:   "hostlist-compiler",
			Err:       baseErr,
		}
		compErr := &pkgerrors.CompileError{
			FilterID: "1_popular",
			Err:      procErr,
		}

		// Check unwrapping chain
		assert.Equal(t, procErr, compErr.Unwrap())
		assert.Equal(t, baseErr, procErr.Unwrap())

		// errors.As should work through the chain
		var targetProcErr *pkgerrors.ProcessError
		assert.True(t, errors.As(compErr, &targetProcErr))
		assert.Equal(t, "compile filter", targetProcErr.Operation)
	})
}

func TestSentinelErrors(t *testing.T) {
	sentinels := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", pkgerrors.ErrNotFound},
		{"ErrAlreadyExists", pkgerrors.ErrAlreadyExists},
		{"ErrInvalidInput", pkgerrors.ErrInvalidInput},
		{"ErrCompileFailed", pkgerrors.ErrCompileFailed},
		{"ErrInvalidAsset", pkgerrors.ErrInvalidAsset},
		{"ErrTimeout", pkgerrors.ErrTimeout},
		{"ErrCanceled", pkgerrors.ErrCanceled},
	}

	for _, tc := range sentinels {
		t.Run(tc.name, func(t *testing.T) {
			assert.NotNil(t, tc.err)
			assert.NotEmpty(t, tc.err.Error())
		})
	}
}

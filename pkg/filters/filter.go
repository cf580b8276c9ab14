// Package filters models the filter list registry: per-list descriptors, the
// shared tag registry, revision tracking, and the aggregation of everything
// into the published metadata catalogs.
package filters

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/agentstation/utc"
	"github.com/go-playground/validator/v10"

	"github.com/agentstation/hostlists/pkg/constants"
	pkgerrors "github.com/agentstation/hostlists/pkg/errors"
)

// Environment marks which catalogs a filter list is published to.
type Environment string

// String returns the string representation of an Environment.
func (e Environment) String() string {
	return string(e)
}

// Known environments. Anything other than prod is published only to the
// all-environments catalog.
const (
	EnvironmentProd Environment = "prod" // Published to production and dev catalogs
)

// IsProd reports whether the environment is production.
func (e Environment) IsProd() bool {
	return e == EnvironmentProd
}

// Filter is one list's descriptor as stored in metadata.json.
// Immutable during a build run.
type Filter struct {
	ID          int         `json:"id" yaml:"id" validate:"gt=0"`                         // Numeric list identifier, unique across the registry
	Name        string      `json:"name" yaml:"name" validate:"required"`                 // Display name
	Description string      `json:"description" yaml:"description" validate:"required"`   // Short description of what the list blocks
	Homepage    string      `json:"homepage" yaml:"homepage" validate:"required,url"`     // Upstream project page
	Expires     string      `json:"expires,omitempty" yaml:"expires,omitempty"`           // Human update period, e.g. "4 days"
	Environment Environment `json:"environment" yaml:"environment" validate:"required"`   // "prod" or a staging marker
	Disabled    bool        `json:"disabled,omitempty" yaml:"disabled,omitempty"`         // Frozen: no recompilation, content kept as is
	Tags        []string    `json:"tags" yaml:"tags"`                                     // Tag keywords resolved against the tag registry
	TimeAdded   utc.Time    `json:"timeAdded" yaml:"timeAdded"`                           // First publication time
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// descriptorValidator returns the shared validator configured to report
// json field names.
func descriptorValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("json")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			return tag
		})
		validate = v
	})
	return validate
}

// Validate checks the descriptor's struct constraints. All violations are
// reported, joined into one error.
func (f *Filter) Validate() error {
	err := descriptorValidator().Struct(f)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return pkgerrors.WrapValidation("filter", err)
	}

	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		message := fmt.Sprintf("must satisfy rule %q", fe.Tag())
		if fe.Param() != "" {
			message = fmt.Sprintf("must satisfy rule %q (%s)", fe.Tag(), fe.Param())
		}
		errs = append(errs, pkgerrors.NewValidationError(fe.Field(), fe.Value(), message))
	}
	return errors.Join(errs...)
}

// ExpiresSeconds resolves the descriptor's update period to seconds.
// "N days" and "N hours" are the only recognized forms; everything else,
// including an unknown unit, falls back to the default rather than guessing.
func (f *Filter) ExpiresSeconds() int {
	fields := strings.Fields(f.Expires)
	if len(fields) < 2 {
		return constants.DefaultExpirySeconds
	}

	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 0 {
		return constants.DefaultExpirySeconds
	}

	switch strings.TrimSuffix(strings.ToLower(fields[1]), "s") {
	case "day":
		return n * constants.SecondsPerDay
	case "hour":
		return n * constants.SecondsPerHour
	}
	return constants.DefaultExpirySeconds
}

// AssetName returns the published filename for the list's compiled content.
func (f *Filter) AssetName() string {
	return constants.FilterAssetPrefix + strconv.Itoa(f.ID) + constants.FilterAssetSuffix
}

package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/anyulbade/card-fee-simulator/internal/model"
)

var (
	ErrCatalogUnavailable = errors.New("rate catalog unavailable")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

type LoadErrorKind string

const (
	SourceNotFound   LoadErrorKind = "source_not_found"
	SourceParseError LoadErrorKind = "source_parse_error"
)

// LoadError records why one rate source could not be loaded.
type LoadError struct {
	Kind   LoadErrorKind
	Source model.RateSource
	Err    error
}

func (e *LoadError) Error() string {
	if e.Kind == SourceNotFound {
		return fmt.Sprintf("%s: source not found (%s)", e.Source.Provider+"/"+e.Source.Brand, e.Source.Locator)
	}
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// LoadErrors is every source failure of one catalog load.
type LoadErrors []*LoadError

func (e LoadErrors) Error() string {
	msgs := make([]string, len(e))
	for i, le := range e {
		msgs[i] = le.Error()
	}
	return fmt.Sprintf("%d rate source(s) failed: %s", len(e), strings.Join(msgs, "; "))
}

// Is lets errors.Is(err, ErrCatalogUnavailable) match a failed load.
func (e LoadErrors) Is(target error) bool {
	return target == ErrCatalogUnavailable
}

func (e LoadErrors) Count(kind LoadErrorKind) int {
	n := 0
	for _, le := range e {
		if le.Kind == kind {
			n++
		}
	}
	return n
}

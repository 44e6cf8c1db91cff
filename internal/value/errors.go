package value

import "github.com/vkazan/tlarun/internal/tlaerr"

func newDomainError(format string, args ...any) error {
	return tlaerr.New(tlaerr.KindDomain, format, args...)
}

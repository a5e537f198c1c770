package filler

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alecthomas/units"
)

// suffixes are checked in order, so "kb" never shadows "gb" or "mb".
var suffixes = []struct {
	suffix string
	unit   units.Base2Bytes
}{
	{"gb", units.GiB},
	{"mb", units.MiB},
	{"kb", units.KiB},
}

// ParseSize parses a size such as "4.78gb", "100MB" or "512" into a number of
// bytes. Units are binary multiples, a token without a unit is already a byte
// count and fractional results are truncated toward zero.
func ParseSize(s string) (int64, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	unit := units.Base2Bytes(1)
	for _, u := range suffixes {
		if strings.HasSuffix(v, u.suffix) {
			v, unit = strings.TrimSpace(strings.TrimSuffix(v, u.suffix)), u.unit
			break
		}
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			err = numErr.Err
		}
		return 0, fmt.Errorf("%w %q: %v", ErrInvalidSize, s, err)
	}
	n := f * float64(unit)
	switch {
	case math.IsNaN(n), n >= math.MaxInt64:
		return 0, fmt.Errorf("%w %q: out of range", ErrInvalidSize, s)
	case n < 1:
		return 0, fmt.Errorf("%w %q: must be at least one byte", ErrInvalidSize, s)
	}
	return int64(n), nil
}

package shaper

import (
	"errors"
	"fmt"

	"fredscope/internal/models"
)

// Method names a missing-value strategy.
type Method string

const (
	// MethodDrop removes missing observations.
	MethodDrop Method = "drop"
	// MethodForwardFill carries the nearest preceding value forward.
	// Leading gaps stay missing.
	MethodForwardFill Method = "forward_fill"
	// MethodInterpolate fills interior gaps linearly between the
	// nearest known neighbors. Gaps with no bound on one side stay
	// missing.
	MethodInterpolate Method = "interpolate"
	// MethodZero replaces every missing value with 0.
	MethodZero Method = "zero"
)

var ErrUnknownMethod = errors.New("shaper: unknown cleaning method")

// ParseMethod validates a method name from configuration.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodDrop, MethodForwardFill, MethodInterpolate, MethodZero:
		return Method(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
}

// Clean closes gaps in a series according to method. The input is
// never mutated. All methods except drop preserve length and order;
// drop may shorten the series but keeps relative order.
func Clean(s models.Series, method Method) (models.Series, error) {
	switch method {
	case MethodDrop:
		return dropMissing(s), nil
	case MethodForwardFill:
		return forwardFill(s), nil
	case MethodInterpolate:
		return interpolate(s), nil
	case MethodZero:
		return zeroFill(s), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
}

func dropMissing(s models.Series) models.Series {
	out := make(models.Series, 0, len(s))
	for _, obs := range s {
		if obs.Value != nil {
			out = append(out, obs)
		}
	}
	return out
}

func forwardFill(s models.Series) models.Series {
	out := s.Copy()
	var last *float64
	for i := range out {
		if out[i].Value != nil {
			last = out[i].Value
			continue
		}
		if last != nil {
			v := *last
			out[i].Value = &v
		}
	}
	return out
}

// interpolate fills each interior gap by linear interpolation over
// observation position, matching the equal-spacing behavior of the
// usual dataframe tooling. Runs before the first or after the last
// known value are left missing.
func interpolate(s models.Series) models.Series {
	out := s.Copy()
	prev := -1
	for i := 0; i < len(out); i++ {
		if out[i].Value == nil {
			continue
		}
		if prev >= 0 && i-prev > 1 {
			lo, hi := *out[prev].Value, *out[i].Value
			span := float64(i - prev)
			for j := prev + 1; j < i; j++ {
				v := lo + (hi-lo)*float64(j-prev)/span
				out[j].Value = &v
			}
		}
		prev = i
	}
	return out
}

func zeroFill(s models.Series) models.Series {
	out := s.Copy()
	for i := range out {
		if out[i].Value == nil {
			v := 0.0
			out[i].Value = &v
		}
	}
	return out
}

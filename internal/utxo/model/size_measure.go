package model

import (
	"errors"
	"fmt"
)

// SizeMeasure selects which transaction size a fee rate is computed against.
type SizeMeasure string

var (
	SizeTotal   SizeMeasure = "total"
	SizeBase    SizeMeasure = "base"
	SizeWeight  SizeMeasure = "weight"
	SizeVirtual SizeMeasure = "virtual"
)

// DefaultSizeMeasure is used when the caller does not pick one.
var DefaultSizeMeasure = SizeVirtual

// ErrInvalidArgument is returned for arguments outside of an accepted set.
var ErrInvalidArgument = errors.New("invalid argument")

// ParseSizeMeasure maps a measure token to a SizeMeasure. An empty token selects the default.
func ParseSizeMeasure(token string) (SizeMeasure, error) {
	switch SizeMeasure(token) {
	case "":
		return DefaultSizeMeasure, nil
	case SizeTotal, SizeBase, SizeWeight, SizeVirtual:
		return SizeMeasure(token), nil
	default:
		return "", fmt.Errorf("%w: size measure must be one of total, base, weight, or virtual, got %q", ErrInvalidArgument, token)
	}
}

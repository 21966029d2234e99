package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidVersion is returned when a version string is empty or
// contains a non-numeric segment.
var ErrInvalidVersion = errors.New("invalid version format")

// Version is an ordered tuple of non-negative integers parsed from a
// dot-separated string (e.g. "2.4.93"). NuGet versions carry two to
// four segments, so this is deliberately not semver.
type Version []int

// Comparison is the three-way result of comparing two versions.
type Comparison int

const (
	Less    Comparison = iota - 1 // a < b
	Equal                         // a == b
	Greater                       // a > b
)

// ParseVersion parses a dot-separated numeric version string.
func ParseVersion(text string) (Version, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: empty version string", ErrInvalidVersion)
	}

	segments := strings.Split(text, ".")
	version := make(Version, 0, len(segments))
	for _, segment := range segments {
		number, err := strconv.Atoi(segment)
		if err != nil || number < 0 {
			return nil, fmt.Errorf("%w: segment %q in %q is not a non-negative integer", ErrInvalidVersion, segment, text)
		}
		version = append(version, number)
	}

	return version, nil
}

// Compare performs a segment-wise lexicographic comparison. When the
// tuples have different lengths the shorter one is padded with zeros,
// so "1.2" and "1.2.0" compare equal.
func (v Version) Compare(other Version) Comparison {
	length := len(v)
	if len(other) > length {
		length = len(other)
	}

	for i := 0; i < length; i++ {
		a, b := 0, 0
		if i < len(v) {
			a = v[i]
		}
		if i < len(other) {
			b = other[i]
		}
		if a < b {
			return Less
		}
		if a > b {
			return Greater
		}
	}

	return Equal
}

// String renders the version back to its dot-separated form.
func (v Version) String() string {
	segments := make([]string, len(v))
	for i, number := range v {
		segments[i] = strconv.Itoa(number)
	}
	return strings.Join(segments, ".")
}

// Action describes what to do with one discovered declaration.
type Action int

const (
	// ActionUpdate rewrites the declaration to the target version.
	ActionUpdate Action = iota
	// ActionUpToDate leaves the declaration alone; it already matches.
	ActionUpToDate
	// ActionSkipNewer leaves a newer declaration alone because
	// downgrades were not requested.
	ActionSkipNewer
)

// Classify decides the action for a declaration currently at current,
// given the requested target and whether downgrades are allowed.
// Older versions are always updated; newer ones only with rollback.
func Classify(current, target Version, rollback bool) Action {
	switch current.Compare(target) {
	case Less:
		return ActionUpdate
	case Greater:
		if rollback {
			return ActionUpdate
		}
		return ActionSkipNewer
	default:
		return ActionUpToDate
	}
}

package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// Version is a bundle version: major.minor.micro with an optional
// qualifier. Missing numeric parts default to zero, a missing qualifier
// to the empty string. The raw input is kept so that revision strings
// round-trip unchanged.
type Version struct {
	raw       string
	major     int
	minor     int
	micro     int
	qualifier string
}

func ParseVersion(raw string) (Version, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Version{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("empty version")
	}
	parts := strings.SplitN(trimmed, ".", 4)
	version := Version{raw: trimmed}
	numeric := []*int{&version.major, &version.minor, &version.micro}
	for i, part := range parts {
		if i == 3 {
			version.qualifier = part
			break
		}
		value, err := strconv.Atoi(part)
		if err != nil || value < 0 {
			return Version{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid version: %s", raw))
		}
		*numeric[i] = value
	}
	return version, nil
}

func (v Version) String() string {
	return v.raw
}

// Compare orders versions numerically on major.minor.micro, then
// lexically on the qualifier (an absent qualifier sorts first).
func (v Version) Compare(other Version) int {
	if v.major != other.major {
		return v.major - other.major
	}
	if v.minor != other.minor {
		return v.minor - other.minor
	}
	if v.micro != other.micro {
		return v.micro - other.micro
	}
	return strings.Compare(v.qualifier, other.qualifier)
}

// VersionRange is an interval version constraint: "[1.0,2.0)" style
// brackets, or a bare version meaning an inclusive unbounded lower bound.
type VersionRange struct {
	start          Version
	end            Version
	hasEnd         bool
	startExclusive bool
	endExclusive   bool
}

func ParseVersionRange(raw string) (VersionRange, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return VersionRange{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("empty version range")
	}
	if trimmed[0] != '[' && trimmed[0] != '(' {
		start, err := ParseVersion(trimmed)
		if err != nil {
			return VersionRange{}, err
		}
		return VersionRange{start: start}, nil
	}
	last := trimmed[len(trimmed)-1]
	if last != ']' && last != ')' {
		return VersionRange{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unclosed version range: %s", raw))
	}
	inner := trimmed[1 : len(trimmed)-1]
	bounds := strings.Split(inner, ",")
	if len(bounds) != 2 {
		return VersionRange{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("version range needs two bounds: %s", raw))
	}
	start, err := ParseVersion(bounds[0])
	if err != nil {
		return VersionRange{}, err
	}
	end, err := ParseVersion(bounds[1])
	if err != nil {
		return VersionRange{}, err
	}
	return VersionRange{
		start:          start,
		end:            end,
		hasEnd:         true,
		startExclusive: trimmed[0] == '(',
		endExclusive:   last == ')',
	}, nil
}

// Contains reports whether the version falls inside the range.
func (r VersionRange) Contains(v Version) bool {
	startCmp := r.start.Compare(v)
	if startCmp > 0 || (r.startExclusive && startCmp == 0) {
		return false
	}
	if !r.hasEnd {
		return true
	}
	endCmp := v.Compare(r.end)
	if endCmp > 0 || (r.endExclusive && endCmp == 0) {
		return false
	}
	return true
}

// ToRevision renders the range as a descriptor revision string. A bare
// lower bound becomes the half-open interval "[v,)".
func (r VersionRange) ToRevision() string {
	open := "["
	if r.startExclusive {
		open = "("
	}
	if !r.hasEnd {
		return fmt.Sprintf("%s%s,)", open, r.start)
	}
	closing := "]"
	if r.endExclusive {
		closing = ")"
	}
	return fmt.Sprintf("%s%s,%s%s", open, r.start, r.end, closing)
}

// requirementRevision maps a requirement's raw version constraint to the
// revision string carried by its dependency edge. An absent constraint
// means any version.
func requirementRevision(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "[0,)", nil
	}
	versionRange, err := ParseVersionRange(raw)
	if err != nil {
		return "", err
	}
	return versionRange.ToRevision(), nil
}

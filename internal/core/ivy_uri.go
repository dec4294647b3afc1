package core

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"bundlebridge/internal/types"
)

// IvyURIScheme marks artifact URIs that reference another resolved
// module instead of a file.
const IvyURIScheme = "ivy"

// BuildIvyURI encodes an artifact coordinate as a compact
// "ivy:///org/name?k=v&..." URI. Only present fields appear in the
// query, joined by "&" with no leading separator.
func BuildIvyURI(coord types.ArtifactCoordinate) string {
	rid := coord.RevisionID
	var sb strings.Builder
	sb.WriteString("ivy:///")
	sb.WriteString(rid.Organisation)
	sb.WriteString("/")
	sb.WriteString(rid.Name)
	sb.WriteString("?")
	fields := []struct {
		key   string
		value string
	}{
		{"branch", rid.Branch},
		{"rev", rid.Revision},
		{"type", coord.Type},
		{"art", coord.Name},
		{"ext", coord.Ext},
	}
	first := true
	for _, field := range fields {
		if field.value == "" {
			continue
		}
		if !first {
			sb.WriteString("&")
		}
		first = false
		sb.WriteString(field.key)
		sb.WriteString("=")
		sb.WriteString(field.value)
	}
	return sb.String()
}

// DecodeIvyURI parses an ivy URI back into an artifact coordinate.
// Structural defects (missing org/name separator, malformed or unknown
// query parameters) fail with an invalid-argument error.
func DecodeIvyURI(raw string) (types.ArtifactCoordinate, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return types.ArtifactCoordinate{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unparsable ivy uri: %s", raw)).
			WithCause(err)
	}
	path := parsed.Path
	if !strings.HasPrefix(path, "/") {
		return types.ArtifactCoordinate{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("an ivy uri should be of the form ivy:///org/module but was: %s", raw))
	}
	sep := strings.Index(path[1:], "/")
	if sep < 0 {
		return types.ArtifactCoordinate{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("expecting an organisation in the ivy uri: %s", raw))
	}
	org := path[1 : sep+1]
	name := path[sep+2:]

	var branch, rev, art, typ, ext string
	for _, parameter := range strings.Split(parsed.RawQuery, "&") {
		if parameter == "" {
			continue
		}
		pair := strings.Split(parameter, "=")
		if len(pair) != 2 {
			return types.ArtifactCoordinate{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("malformed query string in the ivy uri: %s", raw))
		}
		switch pair[0] {
		case "branch":
			branch = pair[1]
		case "rev":
			rev = pair[1]
		case "art":
			art = pair[1]
		case "type":
			typ = pair[1]
		case "ext":
			ext = pair[1]
		default:
			return types.ArtifactCoordinate{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("unrecognized parameter %q in the ivy uri: %s", pair[0], raw))
		}
	}

	return types.ArtifactCoordinate{
		RevisionID: types.NewModuleRevisionID(org, name, branch, rev),
		Name:       art,
		Type:       typ,
		Ext:        ext,
	}, nil
}

package model

import (
	"encoding/xml"
	"sort"
	"strings"
)

// Depth header values for PROPFIND/COPY.
const (
	Depth0        = "0"
	Depth1        = "1"
	DepthInfinity = "infinity"
)

// ContentTypeXML is the body content type of PROPFIND/PROPPATCH requests.
const ContentTypeXML = "application/xml; charset=utf-8"

const xmlHeader = `<?xml version="1.0" encoding="utf-8"?>`

// PropfindBody builds the PROPFIND request body. An empty property list asks
// for allprop, otherwise one empty element per requested property, all in the
// DAV: namespace.
func PropfindBody(props []string) []byte {
	sb := &strings.Builder{}
	sb.WriteString(xmlHeader)
	sb.WriteString(`<D:propfind xmlns:D="DAV:">`)
	if len(props) == 0 {
		sb.WriteString(`<D:allprop/>`)
	} else {
		sb.WriteString(`<D:prop>`)
		for _, name := range props {
			sb.WriteString(`<D:` + name + `/>`)
		}
		sb.WriteString(`</D:prop>`)
	}
	sb.WriteString(`</D:propfind>`)
	return []byte(sb.String())
}

// ProppatchBody builds a PROPPATCH set block, one element per entry with the
// value as escaped text content. Keys are emitted in sorted order so the body
// is deterministic.
func ProppatchBody(set map[string]string) []byte {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	sb := &strings.Builder{}
	sb.WriteString(xmlHeader)
	sb.WriteString(`<D:propertyupdate xmlns:D="DAV:"><D:set><D:prop>`)
	for _, k := range keys {
		sb.WriteString(`<D:` + k + `>`)
		_ = xml.EscapeText(sb, []byte(set[k]))
		sb.WriteString(`</D:` + k + `>`)
	}
	sb.WriteString(`</D:prop></D:set></D:propertyupdate>`)
	return []byte(sb.String())
}

// CopyMoveHeaders builds the header set of COPY/MOVE requests. dest must be
// the absolute url of the target, depth is ignored when empty (MOVE is always
// full-tree per RFC 4918).
func CopyMoveHeaders(dest string, overwrite bool, depth string) map[string]string {
	hdr := map[string]string{
		"Destination": dest,
		"Overwrite":   "F",
	}
	if overwrite {
		hdr["Overwrite"] = "T"
	}
	if depth != "" {
		hdr["Depth"] = depth
	}
	return hdr
}

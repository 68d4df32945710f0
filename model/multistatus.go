package model

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Wire model of an RFC 4918 multistatus document. Tags carry only local
// names, so any declared namespace prefix (D:, d:, ns0:...) unmarshals the
// same way.

type Multistatus struct {
	XMLName   xml.Name   `xml:"multistatus"`
	Responses []Response `xml:"response"`
}

type Response struct {
	Href      string     `xml:"href"`
	Propstats []Propstat `xml:"propstat"`
	Status    string     `xml:"status"`
}

type Propstat struct {
	Status string `xml:"status"`
	Prop   Prop   `xml:"prop"`
}

type Prop struct {
	DisplayName   string       `xml:"displayname"`
	ResourceType  ResourceType `xml:"resourcetype"`
	ContentLength string       `xml:"getcontentlength"`
	ContentType   string       `xml:"getcontenttype"`
	LastModified  string       `xml:"getlastmodified"`
	CreationDate  string       `xml:"creationdate"`
	ETag          string       `xml:"getetag"`
}

// ResourceType marks collections. Presence of the nested element is the
// signal, its content is irrelevant.
type ResourceType struct {
	Collection *struct{} `xml:"collection"`
}

// EntryProps is the normalized property set of one response element.
// Timestamps stay zero when the server omits the property or sends an
// unparsable value.
type EntryProps struct {
	DisplayName  string
	IsDir        bool
	Size         int64
	LastModified time.Time
	CreatedAt    time.Time
	ContentType  string
	ETag         string
}

type ResponseEntry struct {
	Href   string
	Status int
	Props  EntryProps
}

// ParseMultistatus decodes a multistatus body into ordered response entries.
// A document with zero response elements yields an empty list.
func ParseMultistatus(raw []byte) ([]*ResponseEntry, error) {
	ms := &Multistatus{}
	if err := xml.Unmarshal(raw, ms); err != nil {
		return nil, fmt.Errorf("decode multistatus failed: %w", err)
	}
	rs := make([]*ResponseEntry, 0, len(ms.Responses))
	for _, resp := range ms.Responses {
		rs = append(rs, convertResponse(&resp))
	}
	return rs, nil
}

func convertResponse(resp *Response) *ResponseEntry {
	ent := &ResponseEntry{
		Href:   decodeHref(resp.Href),
		Status: parseStatusLine(resp.Status),
	}
	ps := pickPropstat(resp.Propstats)
	if ps == nil {
		return ent
	}
	if ent.Status == 0 {
		ent.Status = parseStatusLine(ps.Status)
	}
	prop := &ps.Prop
	ent.Props = EntryProps{
		DisplayName:  prop.DisplayName,
		IsDir:        prop.ResourceType.Collection != nil,
		Size:         parseSize(prop.ContentLength),
		LastModified: parseHTTPDate(prop.LastModified),
		CreatedAt:    parseCreationDate(prop.CreationDate),
		ContentType:  prop.ContentType,
		ETag:         prop.ETag,
	}
	return ent
}

// pickPropstat prefers the 2xx propstat block; servers report unavailable
// properties in a separate 404 block.
func pickPropstat(list []Propstat) *Propstat {
	for i := range list {
		code := parseStatusLine(list[i].Status)
		if code >= 200 && code < 300 {
			return &list[i]
		}
	}
	if len(list) == 0 {
		return nil
	}
	return &list[0]
}

func decodeHref(href string) string {
	href = strings.TrimSpace(href)
	if decoded, err := url.PathUnescape(href); err == nil {
		return decoded
	}
	return href
}

// parseStatusLine extracts the code from "HTTP/1.1 200 OK" style lines.
func parseStatusLine(line string) int {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0
	}
	code, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0
	}
	return code
}

func parseSize(raw string) int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	size, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || size < 0 {
		return 0
	}
	return size
}

var httpDateLayouts = []string{
	http.TimeFormat,
	time.RFC1123,
	time.RFC1123Z,
	time.RFC850,
	time.ANSIC,
}

func parseHTTPDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range httpDateLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts
		}
	}
	return time.Time{}
}

// creationdate is ISO 8601 per RFC 4918, but some servers send http dates.
func parseCreationDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return ts
	}
	return parseHTTPDate(raw)
}

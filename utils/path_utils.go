package utils

import (
	"mime"
	"net/url"
	"path"
	"strings"
)

// Normalize rebuilds p as an absolute slash path: leading "/" enforced, runs
// of "/" collapsed, trailing "/" stripped unless the result is the root.
// Normalize is idempotent.
func Normalize(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	for strings.Contains(p, "//") {
		p = strings.ReplaceAll(p, "//", "/")
	}
	if len(p) > 1 {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}

// JoinURL resolves base's path component and appends the given segments. If
// the first segment already starts with base's mount path, the duplicate is
// collapsed, so base "http://h/webdav" plus "/webdav/file" yields
// "http://h/webdav/file" and not ".../webdav/webdav/file". A trailing slash
// on the last segment survives, everything else is normalized.
func JoinURL(base string, segments ...string) string {
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" {
		return joinRawPath(base, segments...)
	}
	mount := strings.TrimSuffix(u.Path, "/")
	p := mount
	trailing := strings.HasSuffix(u.Path, "/") && len(segments) == 0
	for i, seg := range segments {
		if seg == "" {
			continue
		}
		trailing = strings.HasSuffix(seg, "/")
		s := Normalize(seg)
		if i == 0 && mount != "" && (s == mount || strings.HasPrefix(s, mount+"/")) {
			p = s
			continue
		}
		if s != "/" {
			p += s
		}
	}
	if p == "" {
		p = "/"
	}
	if trailing && p != "/" {
		p += "/"
	}
	u.Path = p
	return u.String()
}

func joinRawPath(base string, segments ...string) string {
	p := strings.TrimSuffix(base, "/")
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		s := Normalize(seg)
		if s != "/" {
			p += s
		}
	}
	if p == "" {
		p = "/"
	}
	return p
}

// ParentOf returns the directory holding p, "/" for top level entries.
func ParentOf(p string) string {
	p = Normalize(p)
	if p == "/" {
		return "/"
	}
	idx := strings.LastIndex(p, "/")
	if idx <= 0 {
		return "/"
	}
	return p[:idx]
}

// Basename returns the last segment of p, "" for the root.
func Basename(p string) string {
	p = Normalize(p)
	if p == "/" {
		return ""
	}
	return p[strings.LastIndex(p, "/")+1:]
}

// ContentTypeFor classifies a filename by extension, falling back to
// application/octet-stream for anything unknown.
func ContentTypeFor(filename string) string {
	ext := path.Ext(filename)
	mimeType := mime.TypeByExtension(ext)
	if mimeType == "" {
		return "application/octet-stream"
	}
	return mimeType
}

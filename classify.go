package medialinks

import "strings"

// MimeType is a MIME media type split into its top-level type and subtype.
type MimeType struct {
	Type    string
	Subtype string
}

// TextPlain is the type assumed for extensions the table does not know.
var TextPlain = MimeType{Type: "text", Subtype: "plain"}

// String returns the type in "type/subtype" form.
func (m MimeType) String() string {
	return m.Type + "/" + m.Subtype
}

// IsPlayable reports whether the top-level type is audio or video.
func (m MimeType) IsPlayable() bool {
	return m.Type == "audio" || m.Type == "video"
}

// MimeTable maps file extensions to MIME types.
// Implementations must be safe for concurrent use.
type MimeTable interface {
	// Lookup returns the MIME type registered for ext (without the leading dot).
	// Extensions match case-insensitively. Returns false if the extension is unknown.
	Lookup(ext string) (MimeType, bool)
}

// MimeTypeFor looks ext up in table, defaulting to TextPlain.
func MimeTypeFor(table MimeTable, ext string) MimeType {
	if ext == "" {
		return TextPlain
	}
	if m, ok := table.Lookup(ext); ok {
		return m
	}
	return TextPlain
}

// StripQuery truncates s at the first '?'.
func StripQuery(s string) string {
	if i := strings.IndexByte(s, '?'); i >= 0 {
		return s[:i]
	}
	return s
}

// FileName returns the part of s after the last '/', or s itself if it
// contains no '/'.
func FileName(s string) string {
	return s[strings.LastIndexByte(s, '/')+1:]
}

// Extension returns the part of name after the last '.', or "" if name
// contains no '.'.
func Extension(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return ""
	}
	return name[i+1:]
}

// ResolveURL makes link absolute using plain string rules:
//
//   - links starting with "http" are returned unchanged
//   - protocol-relative links ("//host/...") get an "https:" prefix
//   - site-root-relative links ("/path") get baseURL prepended as is
//   - anything else gets baseURL and a single "/" prepended
//
// baseURL is never parsed or normalized, so slashes are not collapsed.
func ResolveURL(link, baseURL string) string {
	switch {
	case strings.HasPrefix(link, "http"):
		return link
	case strings.HasPrefix(link, "//"):
		return "https:" + link
	case strings.HasPrefix(link, "/"):
		return baseURL + link
	default:
		return baseURL + "/" + link
	}
}

// Classify turns a raw attribute value into a MediaLink.
// It returns false when the value does not name an audio or video resource.
func Classify(raw, baseURL string, table MimeTable) (MediaLink, bool) {
	link := StripQuery(strings.TrimSpace(raw))
	name := FileName(link)
	if !MimeTypeFor(table, Extension(name)).IsPlayable() {
		return MediaLink{}, false
	}
	return MediaLink{
		Name: name,
		URL:  ResolveURL(link, baseURL),
	}, true
}

// Package filetype provides a medialinks.MimeTable backed by the extension
// registry of github.com/h2non/filetype, extended with the common audio and
// video extensions that registry does not carry.
package filetype

import (
	"strings"

	"github.com/fwojciec/medialinks"
	"github.com/h2non/filetype"
)

// Ensure Table implements medialinks.MimeTable at compile time.
var _ medialinks.MimeTable = (*Table)(nil)

// extraTypes covers extensions missing from the filetype registry.
var extraTypes = map[string]string{
	"aif":  "audio/aiff",
	"aifc": "audio/aiff",
	"au":   "audio/basic",
	"caf":  "audio/x-caf",
	"m3u":  "audio/x-mpegurl",
	"mka":  "audio/x-matroska",
	"mp2":  "audio/mpeg",
	"mpga": "audio/mpeg",
	"oga":  "audio/ogg",
	"opus": "audio/ogg",
	"ra":   "audio/x-pn-realaudio",
	"snd":  "audio/basic",
	"weba": "audio/webm",
	"wma":  "audio/x-ms-wma",

	"3g2":  "video/3gpp2",
	"asf":  "video/x-ms-asf",
	"f4v":  "video/mp4",
	"m2ts": "video/mp2t",
	"mpe":  "video/mpeg",
	"mpeg": "video/mpeg",
	"ogv":  "video/ogg",
	"qt":   "video/quicktime",
	"ts":   "video/mp2t",
	"vob":  "video/x-ms-vob",

	"txt":  "text/plain",
	"htm":  "text/html",
	"html": "text/html",
	"vtt":  "text/vtt",
	"srt":  "text/plain",
	"json": "application/json",
	"js":   "text/javascript",
	"css":  "text/css",
}

// Table resolves file extensions to MIME types. It holds no mutable state
// and is safe for concurrent use.
type Table struct {
	extra map[string]medialinks.MimeType
}

// NewTable returns a Table.
func NewTable() *Table {
	extra := make(map[string]medialinks.MimeType, len(extraTypes))
	for ext, value := range extraTypes {
		extra[ext] = parseMimeType(value)
	}
	return &Table{extra: extra}
}

// Lookup returns the MIME type for ext. The match is case-insensitive.
func (t *Table) Lookup(ext string) (medialinks.MimeType, bool) {
	ext = strings.ToLower(ext)
	if m, ok := t.extra[ext]; ok {
		return m, true
	}

	kind := filetype.GetType(ext)
	if kind == filetype.Unknown || kind.MIME.Type == "" {
		return medialinks.MimeType{}, false
	}
	return medialinks.MimeType{
		Type:    strings.ToLower(kind.MIME.Type),
		Subtype: strings.ToLower(kind.MIME.Subtype),
	}, true
}

func parseMimeType(value string) medialinks.MimeType {
	typ, subtype, _ := strings.Cut(value, "/")
	return medialinks.MimeType{Type: typ, Subtype: subtype}
}

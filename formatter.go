package medialinks

import "strings"

// Format names an output representation of a ScrapeResult.
type Format string

// Supported output formats.
const (
	TextFormat Format = "text"
	JSONFormat Format = "json"
	M3UFormat  Format = "m3u"
	XSPFFormat Format = "xspf"
	HTMLFormat Format = "html"
)

// Formats lists every supported format.
func Formats() []Format {
	return []Format{TextFormat, JSONFormat, M3UFormat, XSPFFormat, HTMLFormat}
}

// ParseFormat returns the Format named by s.
// Returns EINVALID for unknown names.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats() {
		if string(f) == s {
			return f, nil
		}
	}
	return "", Errorf(EINVALID, "unknown format %q", s)
}

// Extension returns the file extension used when writing the format to disk.
func (f Format) Extension() string {
	switch f {
	case TextFormat:
		return "txt"
	default:
		return string(f)
	}
}

// FormatText formats links as one "name<TAB>url" line each.
func FormatText(result *ScrapeResult) string {
	var b strings.Builder
	for _, link := range result.Links {
		b.WriteString(link.Name)
		b.WriteByte('\t')
		b.WriteString(link.URL)
		b.WriteByte('\n')
	}
	return b.String()
}

// FormatM3U formats links as an extended M3U playlist.
func FormatM3U(result *ScrapeResult) string {
	var b strings.Builder
	b.WriteString("#EXTM3U\n")
	for _, link := range result.Links {
		b.WriteString("#EXTINF:-1,")
		b.WriteString(link.Name)
		b.WriteByte('\n')
		b.WriteString(link.URL)
		b.WriteByte('\n')
	}
	return b.String()
}

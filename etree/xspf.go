// Package etree renders scrape results as XSPF playlists.
package etree

import (
	"github.com/beevik/etree"
	"github.com/fwojciec/medialinks"
)

// XSPFNamespace is the XML namespace of XSPF version 1.
const XSPFNamespace = "http://xspf.org/ns/0/"

// FormatXSPF formats a result as an XSPF playlist. The playlist title is
// the page URL and each link becomes one track.
func FormatXSPF(result *medialinks.ScrapeResult) (string, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	playlist := doc.CreateElement("playlist")
	playlist.CreateAttr("version", "1")
	playlist.CreateAttr("xmlns", XSPFNamespace)
	playlist.CreateElement("title").SetText(result.PageURL)
	playlist.CreateElement("location").SetText(result.PageURL)

	trackList := playlist.CreateElement("trackList")
	for _, link := range result.Links {
		track := trackList.CreateElement("track")
		track.CreateElement("location").SetText(link.URL)
		track.CreateElement("title").SetText(link.Name)
	}

	doc.Indent(2)
	return doc.WriteToString()
}

// Package medialinks extracts playable media links (audio and video) from
// a single web page. It fetches the page, selects media-bearing elements,
// classifies each candidate link by its file extension, resolves it to an
// absolute URL and returns the distinct links in document order.
//
// This package contains domain types, the extraction pipeline and the
// interfaces of its collaborators, following Ben Johnson's Standard
// Package Layout. Implementations live in subdirectories named after
// their primary dependency (e.g., goquery/, sqlite/, rod/).
package medialinks

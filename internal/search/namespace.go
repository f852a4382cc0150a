// Package search holds the request descriptors shared by every list view:
// the namespaces partitioning the results cache and the query values kept
// in each namespace.
package search

// Namespaces partition the shared results cache so list views never read
// or overwrite each other's state. Each logical view owns exactly one.
const (
	AuthorPublicationsNS   = "authorPublications"
	AuthorHighlightsNS     = "authorHighlights"
	LiteratureReferencesNS = "literatureReferences"
)

// Namespaces lists every namespace known to the application.
func Namespaces() []string {
	return []string{AuthorPublicationsNS, AuthorHighlightsNS, LiteratureReferencesNS}
}

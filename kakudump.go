// Package kakudump downloads serialized novels from kakuyomu.jp and writes
// them out as a single markdown file ready for pandoc.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, gjson/, sqlite/).
package kakudump

// Version is reported in the HTTP user agent.
const Version = "0.3.0"

// DefaultBaseURL is the site root novels are fetched from.
const DefaultBaseURL = "https://kakuyomu.jp"

// WorkURL returns the index page URL of a novel.
func WorkURL(baseURL, novelID string) string {
	return baseURL + "/works/" + novelID
}

// EpisodeURL returns the page URL of a single chapter.
func EpisodeURL(baseURL, novelID, chapterID string) string {
	return WorkURL(baseURL, novelID) + "/episodes/" + chapterID
}

package github

import "regexp"

//nolint:gochecknoglobals // Fixed pattern.
var untaggedSegment = regexp.MustCompile(`/download/untagged-[^/]+/`)

// RewriteUntaggedURL fixes a download URL issued while the release draft had
// no tag yet. With a tag name the segment points at that tag, without one it
// falls back to the latest-release download path. URLs without an untagged
// segment pass through unchanged.
func RewriteUntaggedURL(downloadURL, tagName string) string {
	loc := untaggedSegment.FindStringIndex(downloadURL)
	if loc == nil {
		return downloadURL
	}

	replacement := "/latest/download/"
	if tagName != "" {
		replacement = "/download/" + tagName + "/"
	}

	return downloadURL[:loc[0]] + replacement + downloadURL[loc[1]:]
}

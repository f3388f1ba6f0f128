// Package show fetches the manifest published on a release and renders it
// for inspection, as a table on terminals and as raw JSON when piped.
package show

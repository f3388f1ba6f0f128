// Package github talks to the GitHub releases API on behalf of the beacon
// services.
//
// It authenticates from the environment, lists and fetches release assets,
// deletes and uploads the manifest asset, and repairs download URLs minted
// for untagged release drafts. All decision logic stays with the callers,
// this package is a thin transport wrapper.
package github

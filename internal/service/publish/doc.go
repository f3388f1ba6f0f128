// Package publish reconciles the update manifest on a release against a
// freshly built artifact set.
//
// A run matches local artifacts to uploaded assets, picks the single
// signature worth advertising, derives the platform keys to write, merges
// them into any manifest already published and swaps the result onto the
// release. Runs are deterministic and idempotent so CI retries converge on
// the same manifest.
package publish

// Package config defines reconciliation settings used by binaries and
// provides helpers to load, validate and save them in YAML format.
//
// The Config type holds the release coordinates, the artifact glob set and
// the platform toggles steering manifest publication.
package config

// Package platform derives manifest platform keys from build-pipeline OS and
// architecture identifiers.
//
// It normalizes both vocabularies to the update client's expected values and
// plans the set of platform-map writes for a build, including the fan-out of
// universal macOS binaries into per-architecture keys.
package platform

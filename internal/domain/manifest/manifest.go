package manifest

import (
	"encoding/json"
	"fmt"
	"io"
)

// Filename is the canonical name of the manifest asset on a release.
const Filename = "latest.json"

// PlatformEntry describes the download advertised for one platform key.
type PlatformEntry struct {
	// Signature is the detached minisign signature of the download, verbatim.
	Signature string `json:"signature"`
	// URL is the browser download URL of the installer archive.
	URL string `json:"url"`
}

// Manifest is the update descriptor consumed by clients polling a release.
type Manifest struct {
	// Version is the semantic version being advertised.
	Version string `json:"version"`
	// Notes carries the human-readable release notes.
	Notes string `json:"notes"`
	// PubDate is the publication timestamp in RFC 3339 form. It is kept as a
	// string so foreign manifests survive a decode/encode cycle untouched.
	PubDate string `json:"pub_date"`
	// Platforms maps platform keys ("darwin-aarch64", "windows-x86_64", ...)
	// to their download entries.
	Platforms map[string]PlatformEntry `json:"platforms"`
}

// New returns an empty manifest with an initialized platform table.
func New() *Manifest {
	return &Manifest{
		Platforms: make(map[string]PlatformEntry),
	}
}

// Decode parses a manifest document from the reader.
func Decode(r io.Reader) (*Manifest, error) {
	var m Manifest
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}

	if m.Platforms == nil {
		m.Platforms = make(map[string]PlatformEntry)
	}

	return &m, nil
}

// Encode renders the manifest as indented JSON suitable for publication.
func (m *Manifest) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}

	return data, nil
}

// SetPlatform stores the entry under the key, replacing any previous one.
func (m *Manifest) SetPlatform(key string, entry PlatformEntry) {
	if m.Platforms == nil {
		m.Platforms = make(map[string]PlatformEntry)
	}

	m.Platforms[key] = entry
}

// AddPlatformIfAbsent stores the entry only when the key is not present yet.
// It reports whether the entry was stored.
func (m *Manifest) AddPlatformIfAbsent(key string, entry PlatformEntry) bool {
	if m.Platforms == nil {
		m.Platforms = make(map[string]PlatformEntry)
	}

	if _, ok := m.Platforms[key]; ok {
		return false
	}

	m.Platforms[key] = entry

	return true
}

// Clone returns a copy of the manifest to avoid leaking internal references.
func (m *Manifest) Clone() *Manifest {
	cloned := &Manifest{
		Version: m.Version,
		Notes:   m.Notes,
		PubDate: m.PubDate,
	}

	if m.Platforms != nil {
		cloned.Platforms = make(map[string]PlatformEntry, len(m.Platforms))
		for key, entry := range m.Platforms {
			cloned.Platforms[key] = entry
		}
	}

	return cloned
}

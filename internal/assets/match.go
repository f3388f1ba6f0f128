package assets

// Artifact is one locally built file handed over by the build pipeline.
type Artifact struct {
	// Path is the file location on local disk.
	Path string
	// Arch is the architecture tag the build matrix assigned to the file.
	Arch string
}

// RemoteAsset is an asset already attached to the release.
type RemoteAsset struct {
	// Name is the asset name as reported by the hosting platform.
	Name string
	// ID identifies the asset for fetch and delete calls.
	ID int64
	// DownloadURL is the asset's browser download URL.
	DownloadURL string
}

// MatchedAsset is an artifact correlated with its uploaded counterpart.
type MatchedAsset struct {
	// DownloadURL is the uploaded asset's browser download URL.
	DownloadURL string
	// AssetName is the canonical name both sides agree on.
	AssetName string
	// Path is the artifact's local file location.
	Path string
	// Arch is the artifact's architecture tag.
	Arch string
}

// IndexByName keys remote assets by their reported name.
func IndexByName(remote []RemoteAsset) map[string]RemoteAsset {
	index := make(map[string]RemoteAsset, len(remote))
	for _, asset := range remote {
		index[asset.Name] = asset
	}

	return index
}

// Match correlates artifacts with uploaded assets via the canonical name.
// Artifacts without an uploaded counterpart are dropped silently, which is
// the expected outcome when the build matrix skipped an artifact type.
// Input order is preserved.
func Match(artifacts []Artifact, remoteByName map[string]RemoteAsset) []MatchedAsset {
	matched := make([]MatchedAsset, 0, len(artifacts))

	for _, artifact := range artifacts {
		name := NormalizeName(artifact.Path)

		remote, ok := remoteByName[name]
		if !ok {
			continue
		}

		matched = append(matched, MatchedAsset{
			DownloadURL: remote.DownloadURL,
			AssetName:   name,
			Path:        artifact.Path,
			Arch:        artifact.Arch,
		})
	}

	return matched
}

package assets

import (
	"sort"
	"strings"
)

// SignatureSuffix marks detached signature assets.
const SignatureSuffix = ".sig"

var (
	//nolint:gochecknoglobals // Fixed priority table.
	nsisFirstPriorities = []string{".nsis.zip.sig", ".exe.sig", ".msi.zip.sig", ".msi.sig"}

	//nolint:gochecknoglobals // Fixed priority table.
	msiFirstPriorities = []string{".msi.zip.sig", ".msi.sig", ".nsis.zip.sig", ".exe.sig"}
)

// SelectSignature picks the single signature asset to advertise out of the
// matched set. Candidates are the matched assets whose canonical name ends
// in the signature suffix; they are ranked by installer type, NSIS or MSI
// first depending on preferNsis, with stable order on ties. It reports false
// when the matched set holds no signature at all.
func SelectSignature(matched []MatchedAsset, preferNsis bool) (MatchedAsset, bool) {
	priorities := msiFirstPriorities
	if preferNsis {
		priorities = nsisFirstPriorities
	}

	signatures := make([]MatchedAsset, 0, len(matched))

	for _, asset := range matched {
		if strings.HasSuffix(asset.AssetName, SignatureSuffix) {
			signatures = append(signatures, asset)
		}
	}

	if len(signatures) == 0 {
		return MatchedAsset{}, false
	}

	// Priorities are ranked against the local path, not the canonical name.
	sort.SliceStable(signatures, func(i, j int) bool {
		return priorityScore(priorities, signatures[i].Path) > priorityScore(priorities, signatures[j].Path)
	})

	return signatures[0], true
}

// priorityScore rates a path by the first priority suffix it carries,
// higher is better, zero when none applies.
func priorityScore(priorities []string, path string) int {
	for i, suffix := range priorities {
		if strings.HasSuffix(path, suffix) {
			return 100 - i
		}
	}

	return 0
}

package platform

const (
	// OSDarwin is the update-client name for macOS targets.
	OSDarwin = "darwin"

	// ArchUniversal tags fat macOS binaries covering both architectures.
	ArchUniversal = "universal"
)

//nolint:gochecknoglobals // Fixed alias table.
var archAliases = map[string]string{
	"amd64":  "x86_64",
	"x86_64": "x86_64",
	"x64":    "x86_64",
	"x86":    "i686",
	"i386":   "i686",
	"arm":    "armv7",
	"arm64":  "aarch64",
}

// ResolveOS maps a build-pipeline OS identifier to the update-client
// vocabulary. Only "macos" differs; every other value passes through.
func ResolveOS(name string) string {
	if name == "macos" {
		return OSDarwin
	}

	return name
}

// ResolveArch maps an architecture tag to the update-client vocabulary.
// Unknown values pass through unchanged.
func ResolveArch(arch string) string {
	if resolved, ok := archAliases[arch]; ok {
		return resolved
	}

	return arch
}

// Key joins a resolved OS and arch pair into a manifest platform key.
func Key(osName, arch string) string {
	return osName + "-" + arch
}

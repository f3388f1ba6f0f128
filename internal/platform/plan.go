package platform

// WriteMode states how a planned write treats an existing manifest entry.
type WriteMode int

const (
	// InsertOrReplace stores the entry unconditionally.
	InsertOrReplace WriteMode = iota
	// InsertIfAbsent keeps any entry already present.
	InsertIfAbsent
)

// Write is one planned mutation of the manifest's platform map.
type Write struct {
	// Key is the platform key to write.
	Key string
	// Mode states whether an existing entry survives.
	Mode WriteMode
}

// PlanWrites resolves an OS and arch pair into the platform keys to write.
//
// A darwin universal build fans out to both architecture keys so clients on
// either CPU find an entry, without touching keys a native build already
// published. Both keys then advertise the same artifact, so a binary that
// truly covers both CPUs is a precondition on the build pipeline. The
// literal darwin-universal key is written on top only when keepUniversal is
// set. Every other pair maps to its single literal key, replacing
// unconditionally.
func PlanWrites(osName, arch string, keepUniversal bool) []Write {
	resolvedOS := ResolveOS(osName)
	resolvedArch := ResolveArch(arch)

	if resolvedOS == OSDarwin && resolvedArch == ArchUniversal {
		writes := []Write{
			{Key: Key(OSDarwin, "aarch64"), Mode: InsertIfAbsent},
			{Key: Key(OSDarwin, "x86_64"), Mode: InsertIfAbsent},
		}

		if keepUniversal {
			writes = append(writes, Write{Key: Key(resolvedOS, resolvedArch), Mode: InsertOrReplace})
		}

		return writes
	}

	return []Write{{Key: Key(resolvedOS, resolvedArch), Mode: InsertOrReplace}}
}

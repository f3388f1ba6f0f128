// Package manifest contains the core domain type for update publication.
//
// It defines Manifest (the latest.json document advertised on a release) and
// PlatformEntry (one platform's download and signature), plus encode, decode
// and schema validation helpers.
package manifest

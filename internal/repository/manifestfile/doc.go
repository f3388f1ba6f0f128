// Package manifestfile implements persistence for the update Manifest.
//
// The FileRepository stores and loads the manifest as JSON on disk and
// exposes a Repository interface that the publish service depends on.
package manifestfile

// Package assets correlates locally built artifacts with the assets already
// attached to a release.
//
// It normalizes file names the way the hosting platform rewrites them on
// upload, joins local artifacts against remote assets by that canonical
// name, expands artifact glob patterns, and picks the single signature
// asset worth advertising when several installer types were built.
package assets

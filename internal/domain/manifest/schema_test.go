package manifest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestValidateDocument checks schema acceptance and rejection cases.
func TestValidateDocument(t *testing.T) {
	t.Parallel()

	// Complete document.
	valid := []byte(`{
  "version": "1.0.0",
  "notes": "",
  "pub_date": "2024-05-01T10:00:00Z",
  "platforms": {
    "darwin-x86_64": {"signature": "c2ln", "url": "https://example.com/app.tar.gz"}
  }
}`)
	require.NoError(t, ValidateDocument(valid))

	// Foreign platform entries may carry extra fields.
	extra := []byte(`{
  "version": "1.0.0",
  "platforms": {
    "windows-x86_64": {"signature": "c2ln", "url": "https://example.com/app.msi", "with_elevated_task": true}
  }
}`)
	require.NoError(t, ValidateDocument(extra))

	// Missing version.
	require.Error(t, ValidateDocument([]byte(`{"platforms": {}}`)))

	// Missing platform table.
	require.Error(t, ValidateDocument([]byte(`{"version": "1.0.0"}`)))

	// Entry without a URL.
	require.Error(t, ValidateDocument([]byte(`{
  "version": "1.0.0",
  "platforms": {"linux-x86_64": {"signature": "c2ln"}}
}`)))

	// Not JSON at all.
	require.Error(t, ValidateDocument([]byte("not json")))
}

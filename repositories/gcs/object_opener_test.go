package gcs

import (
	// Go Internal Packages
	"context"
	"testing"

	// Local Packages
	errors "ledger-recon/errors"

	// External Packages
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseURI(t *testing.T) {
	bucket, object, err := ParseURI("gs://ledgers/2025/02/our.csv")
	require.NoError(t, err)
	assert.Equal(t, "ledgers", bucket)
	assert.Equal(t, "2025/02/our.csv", object)

	for _, bad := range []string{"ledgers/our.csv", "gs://ledgers", "gs://ledgers/", "gs:///our.csv", "s3://ledgers/our.csv"} {
		_, _, err := ParseURI(bad)
		assert.True(t, errors.Is(errors.Invalid, err), bad)
	}
}

func TestOpenRejectsMalformedURIBeforeDialing(t *testing.T) {
	_, err := NewObjectOpener().Open(context.Background(), "gs://only-bucket")
	require.Error(t, err)
	assert.Equal(t, errors.Invalid, errors.KindOf(err))
}

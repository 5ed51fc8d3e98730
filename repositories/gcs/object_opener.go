package gcs

import (
	// Go Internal Packages
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	// Local Packages
	errors "ledger-recon/errors"

	// External Packages
	"cloud.google.com/go/storage"
)

const Scheme = "gs://"

// ParseURI splits gs://bucket/path/to/object into bucket and object names.
func ParseURI(uri string) (bucket, object string, err error) {
	rest, ok := strings.CutPrefix(uri, Scheme)
	if !ok {
		return "", "", errors.E(errors.Invalid, fmt.Sprintf("%q is not a %s uri", uri, Scheme), nil)
	}
	bucket, object, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || object == "" {
		return "", "", errors.E(errors.Invalid, fmt.Sprintf("%q must name a bucket and an object", uri), nil)
	}
	return bucket, object, nil
}

// ObjectOpener reads ledger exports stored in Cloud Storage. A client is created
// per object and released when the returned reader is closed.
type ObjectOpener struct{}

func NewObjectOpener() *ObjectOpener {
	return &ObjectOpener{}
}

func (o *ObjectOpener) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	bucket, object, err := ParseURI(uri)
	if err != nil {
		return nil, err
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, errors.E(errors.IO, "create storage client", err)
	}

	r, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		_ = client.Close()
		if stderrors.Is(err, storage.ErrObjectNotExist) || stderrors.Is(err, storage.ErrBucketNotExist) {
			return nil, errors.E(errors.NotFound, fmt.Sprintf("cannot open %s", uri), err)
		}
		return nil, errors.OpenErr(uri, err)
	}
	return &objectReader{Reader: r, client: client}, nil
}

type objectReader struct {
	*storage.Reader
	client *storage.Client
}

func (r *objectReader) Close() error {
	err := r.Reader.Close()
	if cerr := r.client.Close(); err == nil {
		err = cerr
	}
	return err
}

package files

import (
	// Go Internal Packages
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	// Local Packages
	errors "ledger-recon/errors"
)

type RemoteOpener interface {
	Open(ctx context.Context, uri string) (io.ReadCloser, error)
}

// Opener opens local files and hands URIs (scheme://...) to Remote.
type Opener struct {
	Remote RemoteOpener
}

func NewOpener(remote RemoteOpener) *Opener {
	return &Opener{Remote: remote}
}

func (o *Opener) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	if strings.Contains(location, "://") {
		if o.Remote == nil {
			return nil, errors.E(errors.Invalid, fmt.Sprintf("no remote source configured for %s", location), nil)
		}
		return o.Remote.Open(ctx, location)
	}

	info, err := os.Stat(location)
	if err != nil {
		return nil, errors.OpenErr(location, err)
	}
	if info.IsDir() {
		return nil, errors.E(errors.Invalid, fmt.Sprintf("%s is a directory", location), nil)
	}

	f, err := os.Open(location)
	if err != nil {
		return nil, errors.OpenErr(location, err)
	}
	return f, nil
}

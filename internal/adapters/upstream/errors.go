// Package upstream maps transport failures of catalog upstreams onto the
// domain error taxonomy.
package upstream

import (
	"errors"
	"fmt"

	"github.com/nulzo/autorouter/internal/core/domain"
	"github.com/nulzo/autorouter/internal/httpclient"
)

// MapError converts an httpclient failure from the named upstream into a
// domain UpstreamUnavailable error.
func MapError(source string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := domain.AsError(err); ok {
		return err
	}

	var upstreamErr *httpclient.UpstreamError
	if errors.As(err, &upstreamErr) {
		return domain.UpstreamStatusError(
			upstreamErr.StatusCode,
			fmt.Sprintf("%s returned status %d", source, upstreamErr.StatusCode),
			err,
		)
	}

	var decodeErr *httpclient.DecodeError
	if errors.As(err, &decodeErr) {
		return SchemaError(source, err)
	}

	if httpclient.IsTimeout(err) {
		return domain.UpstreamUnavailableError(domain.CauseUpstream, fmt.Sprintf("%s timed out", source), err)
	}

	return domain.UpstreamUnavailableError(domain.CauseUpstream, fmt.Sprintf("%s is unreachable", source), err)
}

// SchemaError reports a response that did not match the expected shape.
func SchemaError(source string, err error) error {
	return domain.UpstreamUnavailableError(domain.CauseUpstream, fmt.Sprintf("%s returned an unexpected payload", source), err)
}

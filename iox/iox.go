// Package iox holds small I/O helpers shared by the file reader, the
// upload transport and the notification adapters.
package iox

import "io"

// DiscardClose closes c and drops the error. Close errors on a
// read-only file or a response body leave nothing to act on:
//
//	defer iox.DiscardClose(f)
func DiscardClose(c io.Closer) { _ = c.Close() }

// DrainClose reads rc to EOF, discarding the data, then closes it.
// Draining lets an HTTP client reuse the connection:
//
//	iox.DrainClose(resp.Body)
func DrainClose(rc io.ReadCloser) {
	_, _ = io.Copy(io.Discard, rc)
	_ = rc.Close()
}

// ReadCapped reads at most limit bytes from r. Anything past limit is left
// unread, so callers that need the connection back should DrainClose after.
func ReadCapped(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return nil, nil
	}
	return io.ReadAll(io.LimitReader(r, limit))
}

// CloseFunc returns a cleanup function that closes c, for t.Cleanup:
//
//	t.Cleanup(iox.CloseFunc(adapter))
func CloseFunc(c io.Closer) func() {
	return func() { _ = c.Close() }
}

package submit

import (
	"context"
	"sync"

	"github.com/justapithecus/photodrop/transport"
)

// call records one transport invocation.
type call struct {
	phase    string // "A" or "B"
	endpoint string
	body     []byte
}

// fakeTransport is a scripted, counting Transport double.
type fakeTransport struct {
	mu    sync.Mutex
	calls []call

	postResp *transport.Response
	postErr  error
	blindErr error
}

func (f *fakeTransport) Post(_ context.Context, endpoint string, body []byte) (*transport.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{phase: "A", endpoint: endpoint, body: append([]byte(nil), body...)})
	return f.postResp, f.postErr
}

func (f *fakeTransport) PostOpaque(_ context.Context, endpoint string, body []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{phase: "B", endpoint: endpoint, body: append([]byte(nil), body...)})
	return f.blindErr
}

func (f *fakeTransport) phases() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.phase
	}
	return out
}

var _ transport.Transport = (*fakeTransport)(nil)

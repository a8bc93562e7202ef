package metrics

import (
	"net/http"
	"time"
)

// RequestWatcher collects duration of the outgoing requests. The method label
// is taken from the alias header set by the SDK clients.
type RequestWatcher struct {
	name string
	next http.RoundTripper
}

func NewRequestWatcher(name string) *RequestWatcher {
	return &RequestWatcher{
		name: name,
		next: http.DefaultTransport,
	}
}

func (m *RequestWatcher) RoundTrip(r *http.Request) (*http.Response, error) {
	var err error
	defer func(start time.Time) {
		CollectRequestsMetric(m.name, r.Header.Get("alias"), err, start)
	}(time.Now())

	resp, err := m.next.RoundTrip(r)
	if err != nil {
		return nil, err
	}

	return resp, nil
}

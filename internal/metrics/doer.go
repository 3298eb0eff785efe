package metrics

import (
	"net/http"
	"strconv"
	"time"
)

// Doer matches http.Client.Do.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

type instrumentedDoer struct {
	service string
	next    Doer
}

// InstrumentDoer records count and latency of every request made through next.
func InstrumentDoer(service string, next Doer) Doer {
	return &instrumentedDoer{service: service, next: next}
}

func (d *instrumentedDoer) Do(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := d.next.Do(req)
	OutboundRequestDuration.WithLabelValues(d.service).Observe(time.Since(start).Seconds())

	status := "error"
	if err == nil {
		status = strconv.Itoa(resp.StatusCode)
	}
	OutboundRequestsTotal.WithLabelValues(d.service, status).Inc()
	return resp, err
}

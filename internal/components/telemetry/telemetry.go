package telemetry

import (
	"fmt"
)

// API is where components send what they observe instead of logging
// directly. The CLI backs it with slog, tests back it with a Recorder and
// assert on what a scrape reported.
//
// note: fault injection point
type API interface {
	// ReportBroken reports that a step of a scrape failed and the service
	// probably changed under us, ex. the bootstrap script lost an anchor.
	//
	// `id` names the client operation (`client.init`, `client.view`), the
	// failing stage travels in the wrapped error passed as a param.
	// Ids are lowercase, dots separate a component from its operation and
	// dashes join words (`client.find-school`).
	ReportBroken(id string, params ...any)

	// ReportWarning reports something unexpected that did not fail the
	// operation, ex. a search that matched no school. Ids follow ReportBroken.
	ReportWarning(id string, params ...any)

	// ReportDebug reports details only useful with -v, like resolved keys or
	// request timings.
	ReportDebug(msg string, params ...any)

	// ReportCount reports a size observed at this moment, ex. the periods of
	// a decoded timetable. Counts are samples, summing them means nothing.
	ReportCount(id string, count int64)
}

// ScopedAPI prefixes every id with a namespace, `comcigan_scraper: client.view`.
type ScopedAPI struct {
	namespace string
	inner     API
}

func NewScopedAPI(namespace string, inner API) ScopedAPI {
	return ScopedAPI{namespace: namespace, inner: inner}
}

func (s ScopedAPI) scoped(id string) string {
	return fmt.Sprintf("%s: %s", s.namespace, id)
}

func (s ScopedAPI) ReportBroken(id string, params ...any) {
	s.inner.ReportBroken(s.scoped(id), params...)
}

func (s ScopedAPI) ReportWarning(id string, params ...any) {
	s.inner.ReportWarning(s.scoped(id), params...)
}

func (s ScopedAPI) ReportDebug(msg string, params ...any) {
	s.inner.ReportDebug(s.scoped(msg), params...)
}

func (s ScopedAPI) ReportCount(id string, count int64) {
	s.inner.ReportCount(s.scoped(id), count)
}

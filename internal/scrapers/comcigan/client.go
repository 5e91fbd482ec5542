package comcigan

import (
	"comcigan/internal/components/assert"
	"comcigan/internal/components/telemetry"
	"comcigan/internal/timetable"
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultBaseUrl       = "http://comci.net:4082"
	DefaultBootstrapPath = "/st"

	report_client_init        = "client.init"
	report_client_search      = "client.search"
	report_client_find_school = "client.find-school"
	report_client_view        = "client.view"
	report_client_periods     = "client.periods"
)

var tracer = otel.Tracer("comcigan/scraper")

type ClientOptions struct {
	// BootstrapPath defaults to DefaultBootstrapPath.
	BootstrapPath string
	// Patterns defaults to DefaultPatterns.
	Patterns PatternTable
	// Protocol defaults to CurrentProtocol.
	Protocol *Protocol
	// MeterProvider defaults to the global provider.
	MeterProvider metric.MeterProvider
}

// Client drives one session against the service: Init resolves the keys,
// Search finds a school and View fetches its timetable.
//
// A Client holds no mutable state, it can be used from multiple goroutines.
type Client struct {
	transport     Transport
	tel           telemetry.API
	resolver      Resolver
	protocol      Protocol
	bootstrapPath string

	viewCounter  metric.Int64Counter
	periodsGauge metric.Int64Gauge
}

func NewClient(transport Transport, tel telemetry.API, opts ClientOptions) (Client, error) {
	assert.NotNil(transport)
	assert.NotNil(tel)

	tel = telemetry.NewScopedAPI("comcigan_scraper", tel)

	resolver := defaultResolver
	if opts.Patterns != nil {
		var err error
		resolver, err = NewResolver(opts.Patterns)
		if err != nil {
			return Client{}, err
		}
	}

	protocol := CurrentProtocol
	if opts.Protocol != nil {
		protocol = *opts.Protocol
	}
	assert.Positive(protocol.Base)

	bootstrapPath := opts.BootstrapPath
	if bootstrapPath == "" {
		bootstrapPath = DefaultBootstrapPath
	}

	meterProvider := opts.MeterProvider
	if meterProvider == nil {
		meterProvider = otel.GetMeterProvider()
	}
	meter := meterProvider.Meter("comcigan/scraper")
	viewCounter, err := meter.Int64Counter(
		"comcigan_view_total",
		metric.WithDescription("The total amount of timetables fetched, by outcome."),
	)
	if err != nil {
		return Client{}, err
	}
	periodsGauge, err := meter.Int64Gauge(
		"comcigan_view_periods",
		metric.WithDescription("The amount of periods in the last timetable fetched for a school."),
	)
	if err != nil {
		return Client{}, err
	}

	return Client{
		transport:     transport,
		tel:           tel,
		resolver:      resolver,
		protocol:      protocol,
		bootstrapPath: bootstrapPath,
		viewCounter:   viewCounter,
		periodsGauge:  periodsGauge,
	}, nil
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// Init fetches the bootstrap page and resolves the keys of this session.
func (c Client) Init(ctx context.Context) (SchemaKeys, error) {
	ctx, span := tracer.Start(ctx, "client:Init")
	defer span.End()

	body, err := c.transport.FetchBytes(ctx, c.bootstrapPath)
	if err != nil {
		c.tel.ReportBroken(report_client_init, fmt.Errorf("fetch: %w", err))
		return SchemaKeys{}, fail(span, err)
	}
	page, err := decodePage(body)
	if err != nil {
		c.tel.ReportBroken(report_client_init, err)
		return SchemaKeys{}, fail(span, fmt.Errorf("%w: %w", ErrMalformedPayload, err))
	}

	keys, err := c.resolver.Resolve(page)
	if err != nil {
		c.tel.ReportBroken(report_client_init, err, c.bootstrapPath)
		return SchemaKeys{}, fail(span, err)
	}

	c.tel.ReportDebug(report_client_init, keys)
	return keys, nil
}

// Search returns the schools matching query, possibly none.
func (c Client) Search(ctx context.Context, query string, keys SchemaKeys) ([]DirectoryEntry, error) {
	ctx, span := tracer.Start(ctx, "client:Search")
	defer span.End()
	span.SetAttributes(attribute.String("query", query))

	entries, err := c.protocol.Search(ctx, c.transport, query, keys)
	if err != nil {
		c.tel.ReportBroken(report_client_search, err, query)
		return nil, fail(span, err)
	}

	c.tel.ReportDebug(report_client_search, query, len(entries))
	return entries, nil
}

// FindSchool searches for query and returns the entry whose name is the
// closest match, ErrEmptyResult if there are none.
func (c Client) FindSchool(ctx context.Context, query string, keys SchemaKeys) (DirectoryEntry, error) {
	entries, err := c.Search(ctx, query, keys)
	if err != nil {
		return DirectoryEntry{}, err
	}
	best, ok := BestMatch(query, entries)
	if !ok {
		c.tel.ReportWarning(report_client_find_school, query)
		return DirectoryEntry{}, fmt.Errorf("%w: %q", ErrEmptyResult, query)
	}
	return best, nil
}

// View fetches and decodes the full timetable of a school.
func (c Client) View(ctx context.Context, entry DirectoryEntry, keys SchemaKeys) (*timetable.School, error) {
	ctx, span := tracer.Start(ctx, "client:View")
	defer span.End()

	school, err := c.view(ctx, span, entry, keys)
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.viewCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
	return school, err
}

func (c Client) view(ctx context.Context, span trace.Span, entry DirectoryEntry, keys SchemaKeys) (*timetable.School, error) {
	span.SetAttributes(
		attribute.String("school", entry.Name),
		attribute.Int("internal_id", entry.InternalId),
		attribute.String("protocol", c.protocol.Version),
	)

	url := c.TimetableURL(keys, entry)
	text, err := FetchText(ctx, c.transport, url)
	if err != nil {
		c.tel.ReportBroken(report_client_view, fmt.Errorf("fetch: %w", err), url)
		return nil, fail(span, err)
	}

	payload, err := ParsePayload(Normalize(text), keys)
	if err != nil {
		c.tel.ReportBroken(report_client_view, fmt.Errorf("parse: %w", err), url)
		return nil, fail(span, err)
	}

	school, err := c.protocol.AssemblePayload(entry.Name, payload)
	if err != nil {
		c.tel.ReportBroken(report_client_view, fmt.Errorf("assemble: %w", err), entry)
		return nil, fail(span, err)
	}

	periods := int64(school.CountPeriods())
	c.periodsGauge.Record(ctx, periods, metric.WithAttributes(attribute.String("school", entry.Name)))
	c.tel.ReportCount(report_client_periods, periods)
	return school, nil
}

// TimetableURL returns the url View fetches for entry.
func (c Client) TimetableURL(keys SchemaKeys, entry DirectoryEntry) string {
	return c.protocol.TimetableURL(keys, entry)
}

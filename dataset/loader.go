// Copyright 2026 The Annuaire Authors
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mattn/go-isatty"
	"github.com/mgirard/annuaire/diag"
	"github.com/mgirard/annuaire/utils/httputils"
	"github.com/schollz/progressbar/v3"
)

// fieldSeparator used by the data.gouv.fr CSV exports.
const fieldSeparator = ';'

// LoaderOptions configuration for the dataset Loader.
type LoaderOptions struct {
	// UserAgent is the User-Agent header to use in HTTP requests
	UserAgent string

	// Enables light tracing of HTTP requests and responses
	EnableHTTPTrace bool

	// Enables full HTTP body tracing
	EnableHTTPBodyTrace bool

	// Timeout of the whole HTTP transaction. Defaults to 60s.
	Timeout time.Duration

	// ShowProgress renders a download progress bar when stderr is a TTY
	ShowProgress bool
}

// LoadMetrics tracks statistics about the last fetch.
type LoadMetrics struct {
	Rows        int   // well-formed rows parsed
	RowsSkipped int   // malformed rows dropped
	Bytes       int64 // payload size after decoding
}

// Merge combines two LoadMetrics.
func (m *LoadMetrics) Merge(o *LoadMetrics) *LoadMetrics {
	m.Rows += o.Rows
	m.RowsSkipped += o.RowsSkipped
	m.Bytes += o.Bytes

	return m
}

// Loader retrieves a dataset's raw bytes and parses them into a Table.
// Every failure degrades to an empty table plus a diagnostic; no error
// crosses into the caller.
type Loader struct {
	client  *http.Client
	options *LoaderOptions
	Metrics LoadMetrics
}

// NewLoader creates a loader with the provided options.
func NewLoader(options *LoaderOptions) *Loader {
	if options == nil {
		options = &LoaderOptions{}
	}

	var httpLogWriter io.Writer
	if options.EnableHTTPTrace {
		httpLogWriter = os.Stderr
	}

	transport := &http.Transport{
		MaxIdleConns:          10,
		MaxIdleConnsPerHost:   4,
		MaxConnsPerHost:       4,
		IdleConnTimeout:       30 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		DisableKeepAlives:     false,
		DisableCompression:    false,
	}

	loggingTransport := &httputils.LoggingRoundTripper{
		Writer:    httpLogWriter,
		DumpBody:  options.EnableHTTPBodyTrace,
		Transport: transport,
	}

	userAgent := "annuaire/unknown"
	if options.UserAgent != "" {
		userAgent = options.UserAgent
	}

	headerTransport := &httputils.AppendRequestHeadersRoundTripper{
		Headers: map[string]string{
			"User-Agent": userAgent,
			"Accept":     "text/csv, */*",
		},
		Transport: loggingTransport,
	}

	timeout := 60 * time.Second
	if options.Timeout > 0 {
		timeout = options.Timeout
	}

	return &Loader{
		client: &http.Client{
			Timeout:   timeout,
			Transport: headerTransport,
		},
		options: options,
	}
}

// FetchReference retrieves the table behind a registry entry.
func (l *Loader) FetchReference(ref *Reference) (*Table, []diag.Diagnostic) {
	return l.Fetch(ref.Name, ref.URL)
}

// Fetch issues a GET for the dataset URL and parses the `;`-separated
// payload. The returned diagnostics distinguish timeout, HTTP status
// failure, and everything else; the table is empty in all three cases.
func (l *Loader) Fetch(name, url string) (*Table, []diag.Diagnostic) {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		return NewTable(), []diag.Diagnostic{diag.Errorf("building request for %q: %v", name, err)}
	}

	resp, err := l.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return NewTable(), []diag.Diagnostic{diag.Errorf("timeout fetching %q", name)}
		}

		return NewTable(), []diag.Diagnostic{diag.Errorf("fetching %q: %v", name, err)}
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return NewTable(), []diag.Diagnostic{diag.Errorf("HTTP error %d fetching %q", resp.StatusCode, name)}
	}

	var reader io.Reader = resp.Body

	if l.options.ShowProgress && isatty.IsTerminal(os.Stderr.Fd()) {
		bar := progressbar.NewOptions64(resp.ContentLength,
			progressbar.OptionSetDescription("Downloading "+name),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowBytes(true),
			progressbar.OptionClearOnFinish(),
		)
		reader = io.TeeReader(resp.Body, bar)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		if isTimeout(err) {
			return NewTable(), []diag.Diagnostic{diag.Errorf("timeout fetching %q", name)}
		}

		return NewTable(), []diag.Diagnostic{diag.Errorf("reading %q: %v", name, err)}
	}

	table, skipped := parseDelimited(decodePermissive(data))

	l.Metrics.Rows = table.Len()
	l.Metrics.RowsSkipped = skipped
	l.Metrics.Bytes = int64(len(data))

	var diags []diag.Diagnostic
	if skipped > 0 {
		diags = append(diags, diag.Warningf("skipped %d malformed rows in %q", skipped, name))
	}

	return table, diags
}

// isTimeout reports whether the transport gave up waiting.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error

	return errors.As(err, &netErr) && netErr.Timeout()
}

// decodePermissive interprets the payload as UTF-8, substituting the
// replacement character for byte sequences that cannot be decoded. It
// never fails on malformed text.
func decodePermissive(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}

	return strings.ToValidUTF8(string(data), string(utf8.RuneError))
}

// parseDelimited parses `;`-separated text with a header row. Rows with
// more fields than the header are dropped and counted; short rows are
// padded with empty cells. Cell types are not inferred; everything stays a
// string and consumers coerce as needed.
func parseDelimited(content string) (*Table, int) {
	cr := csv.NewReader(strings.NewReader(content))
	cr.Comma = fieldSeparator
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return NewTable(), 0
	}

	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	table := NewTable(header...)
	skipped := 0

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				skipped++

				continue
			}

			break
		}

		if len(record) > len(header) {
			skipped++

			continue
		}

		row := make(Row, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}

		table.Append(row)
	}

	return table, skipped
}

// Package nse downloads and parses NSE bhavcopy files, the daily end-of-day
// market data archives published by the exchange.
package nse

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the NSE archive host serving bhavcopy files.
const DefaultBaseURL = "https://archives.nseindia.com"

// Client defines the interface for fetching bhavcopy files.
// This interface enables dependency injection and testing with mock implementations.
type Client interface {
	DownloadBhavcopy(ctx context.Context, date time.Time) (*Bhavcopy, error)
}

// ArchiveClient fetches bhavcopy ZIP archives from the NSE archive host.
type ArchiveClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewArchiveClient creates an NSE archive client. The timeout applies to each
// outbound download; a fetch exceeding it fails that attempt rather than
// hanging the request.
func NewArchiveClient(baseURL string, timeout time.Duration) *ArchiveClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &ArchiveClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// DownloadBhavcopy fetches and parses the bhavcopy for a date. NSE changed
// the archive naming scheme over time, so the new UDiFF name is tried first
// and the legacy cm*bhav name second. A non-200 response or a body that is
// not a ZIP archive advances to the next candidate URL; when both fail the
// file is treated as not published for that date.
func (c *ArchiveClient) DownloadBhavcopy(ctx context.Context, date time.Time) (*Bhavcopy, error) {
	urls := []string{
		fmt.Sprintf("%s/content/cm/BhavCopy_NSE_CM_0_0_0_%s_F_0000.csv.zip",
			c.baseURL, date.Format("20060102")),
		fmt.Sprintf("%s/content/cm/cm%sbhav.csv.zip",
			c.baseURL, strings.ToUpper(date.Format("02Jan2006"))),
	}

	var lastErr error
	for _, url := range urls {
		b, err := c.downloadOne(ctx, url)
		if err != nil {
			lastErr = err
			continue
		}
		return b, nil
	}

	return nil, fmt.Errorf("bhavcopy not published for %s: %w", date.Format("2006-01-02"), lastErr)
}

func (c *ArchiveClient) downloadOne(ctx context.Context, url string) (*Bhavcopy, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Referer", "https://www.nseindia.com")
	req.Header.Set("Accept", "*/*")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	// NSE serves an HTML error page with status 200 for some missing dates.
	if !bytes.HasPrefix(data, []byte("PK")) {
		return nil, fmt.Errorf("response from %s is not a ZIP archive", url)
	}

	return parseZip(data)
}

func parseZip(data []byte) (*Bhavcopy, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open bhavcopy archive: %w", err)
	}
	if len(archive.File) == 0 {
		return nil, fmt.Errorf("bhavcopy archive is empty")
	}

	f, err := archive.File[0].Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open bhavcopy entry: %w", err)
	}
	defer f.Close()

	return ParseBhavcopy(f)
}

package storage

import (
	"context"
	"io"
	"net/http"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, cdn string) *SpacesClient {
	t.Helper()
	c, err := NewSpacesClient(SpacesConfig{
		AccessKey: "AKIDEXAMPLE",
		SecretKey: "secret",
		Bucket:    "career-reports",
		Region:    "nyc3",
		CDNURL:    cdn,
	})
	require.NoError(t, err)
	return c
}

func TestNewSpacesClient_RequiresBucketAndRegion(t *testing.T) {
	_, err := NewSpacesClient(SpacesConfig{Region: "nyc3"})
	assert.Error(t, err)
	_, err = NewSpacesClient(SpacesConfig{Bucket: "b"})
	assert.Error(t, err)
}

func TestFileURL(t *testing.T) {
	c := newTestClient(t, "")
	assert.Equal(t, "https://career-reports.nyc3.digitaloceanspaces.com/reports/1/a.pdf", c.FileURL("reports/1/a.pdf"))

	c = newTestClient(t, "https://cdn.example.com/")
	assert.Equal(t, "https://cdn.example.com/reports/1/a.pdf", c.FileURL("reports/1/a.pdf"))
}

func TestPresignedURL(t *testing.T) {
	c := newTestClient(t, "")

	url, err := c.PresignedURL("reports/7/report.pdf", 15*time.Minute)
	require.NoError(t, err)
	assert.Contains(t, url, "career-reports.nyc3.digitaloceanspaces.com/reports/7/report.pdf")
	assert.Contains(t, url, "X-Amz-Signature=")
	assert.Contains(t, url, "X-Amz-Expires=900")
}

func TestReportKey(t *testing.T) {
	key := ReportKey(42)
	assert.Regexp(t, regexp.MustCompile(`^reports/42/[0-9a-f-]{36}\.pdf$`), key)
	assert.NotEqual(t, key, ReportKey(42))
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", ContentType("career-fit.PDF"))
	assert.Equal(t, "text/csv", ContentType("career-fit.csv"))
	assert.Equal(t, "application/octet-stream", ContentType("notes"))
}

// recordingTransport answers every request with status and keeps the requests it saw
type recordingTransport struct {
	status   int
	requests []*http.Request
}

func (r *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r.requests = append(r.requests, req)
	return &http.Response{
		StatusCode: r.status,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader("")),
		Request:    req,
	}, nil
}

func newRecordingClient(t *testing.T, status int) (*SpacesClient, *recordingTransport) {
	t.Helper()
	transport := &recordingTransport{status: status}
	sess, err := session.NewSession(&aws.Config{
		Credentials: credentials.NewStaticCredentials("AKIDEXAMPLE", "secret", ""),
		Endpoint:    aws.String("nyc3.digitaloceanspaces.com"),
		Region:      aws.String("nyc3"),
		HTTPClient:  &http.Client{Transport: transport},
		MaxRetries:  aws.Int(0),
	})
	require.NoError(t, err)
	return &SpacesClient{
		s3Client: s3.New(sess),
		bucket:   "career-reports",
		endpoint: "nyc3.digitaloceanspaces.com",
	}, transport
}

func TestDelete(t *testing.T) {
	c, transport := newRecordingClient(t, http.StatusNoContent)

	require.NoError(t, c.Delete(context.Background(), "reports/1/a.pdf"))
	require.Len(t, transport.requests, 1)
	req := transport.requests[0]
	assert.Equal(t, http.MethodDelete, req.Method)
	assert.Equal(t, "career-reports.nyc3.digitaloceanspaces.com", req.URL.Host)
	assert.Equal(t, "/reports/1/a.pdf", req.URL.Path)
}

func TestDelete_ReportsFailure(t *testing.T) {
	c, _ := newRecordingClient(t, http.StatusForbidden)

	err := c.Delete(context.Background(), "reports/1/a.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to delete file")
}

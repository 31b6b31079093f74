package content

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Source fetches the raw pack document for a date. An empty date asks for
// the current "today" document.
type Source interface {
	Fetch(ctx context.Context, date string) ([]byte, error)
}

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidDate reports whether date is a YYYY-MM-DD token usable in a content path
func ValidDate(date string) bool {
	return datePattern.MatchString(date)
}

// documentPath returns the relative path of the document for date
func documentPath(date string) string {
	if ValidDate(date) {
		return "words/" + date + ".json"
	}
	return "today.json"
}

const maxDocumentSize = 1 << 20

// FileSource reads pack documents from a local directory
type FileSource struct {
	Dir string
}

// Fetch reads <dir>/words/<date>.json or <dir>/today.json
func (s FileSource) Fetch(ctx context.Context, date string) ([]byte, error) {
	path := filepath.Join(s.Dir, filepath.FromSlash(documentPath(date)))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

const fetchTimeout = 10 * time.Second

// HTTPSource fetches pack documents from a static host
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPSource creates a source rooted at baseURL
func NewHTTPSource(baseURL string) *HTTPSource {
	return &HTTPSource{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: fetchTimeout},
	}
}

// Fetch downloads <base>/words/<date>.json or <base>/today.json
func (s *HTTPSource) Fetch(ctx context.Context, date string) ([]byte, error) {
	url := s.BaseURL + "/" + documentPath(date)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Accept", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d for %s", resp.StatusCode, url)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", url, err)
	}
	return data, nil
}

// S3GetObjectAPI is the part of the S3 client the source needs
type S3GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads pack documents from an S3 bucket
type S3Source struct {
	client S3GetObjectAPI
	bucket string
	prefix string
}

// NewS3Source loads the default AWS configuration for region and returns a
// source reading from bucket under prefix
func NewS3Source(ctx context.Context, region, bucket, prefix string) (*S3Source, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return NewS3SourceWithClient(s3.NewFromConfig(cfg), bucket, prefix), nil
}

// NewS3SourceWithClient wraps an existing client
func NewS3SourceWithClient(client S3GetObjectAPI, bucket, prefix string) *S3Source {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &S3Source{client: client, bucket: bucket, prefix: prefix}
}

// Fetch reads the object <prefix>words/<date>.json or <prefix>today.json
func (s *S3Source) Fetch(ctx context.Context, date string) ([]byte, error) {
	key := s.prefix + documentPath(date)

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get s3://%s/%s: %w", s.bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(io.LimitReader(out.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read s3://%s/%s: %w", s.bucket, key, err)
	}
	return data, nil
}

// SourceOptions selects and configures a content source
type SourceOptions struct {
	Kind   string // file, http or s3
	Dir    string
	URL    string
	Bucket string
	Prefix string
	Region string
}

// NewSource builds the source named by opts.Kind
func NewSource(ctx context.Context, opts SourceOptions) (Source, error) {
	switch strings.ToLower(opts.Kind) {
	case "", "file":
		return FileSource{Dir: opts.Dir}, nil
	case "http", "https":
		if opts.URL == "" {
			return nil, fmt.Errorf("http content source needs a base URL")
		}
		return NewHTTPSource(opts.URL), nil
	case "s3":
		if opts.Bucket == "" {
			return nil, fmt.Errorf("s3 content source needs a bucket")
		}
		return NewS3Source(ctx, opts.Region, opts.Bucket, opts.Prefix)
	default:
		return nil, fmt.Errorf("unsupported content source: %s", opts.Kind)
	}
}

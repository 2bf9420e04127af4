package archive_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/labnet/testledger/export/archive"
)

type recordedRequest struct {
	method      string
	path        string
	contentType string
}

type recordingTransport struct {
	mu       sync.Mutex
	requests []recordedRequest
}

func (r *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Body != nil {
		_, _ = io.Copy(io.Discard, req.Body)
	}

	r.mu.Lock()
	r.requests = append(r.requests, recordedRequest{
		method:      req.Method,
		path:        req.URL.Path,
		contentType: req.Header.Get("Content-Type"),
	})
	r.mu.Unlock()

	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(bytes.NewReader(nil)),
		Header:     http.Header{"ETag": {"\"etag\""}},
	}, nil
}

var _ = Describe("Archive", func() {
	Describe("Key", func() {
		startedTime := time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)

		It("partitions the key by date", func() {
			Expect(archive.Key("exports", "run1", startedTime)).To(Equal("exports/2024/03/05/140709-run1.csv"))
		})

		It("omits an empty prefix", func() {
			Expect(archive.Key("", "run1", startedTime)).To(Equal("2024/03/05/140709-run1.csv"))
		})
	})

	Describe("S3Archiver", func() {
		var transport *recordingTransport
		var archiver *archive.S3Archiver
		cfg := archive.Config{
			Bucket:    "lab-exports",
			Region:    "us-east-1",
			Prefix:    "exports",
			PathStyle: true,
		}

		BeforeEach(func() {
			transport = &recordingTransport{}
			awsCfg, err := config.LoadDefaultConfig(context.Background(),
				config.WithRegion(cfg.Region),
				config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("AKIA", "SECRET", "")),
			)
			Expect(err).ToNot(HaveOccurred())

			client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
				o.HTTPClient = &http.Client{Transport: transport}
				o.UsePathStyle = true
				o.BaseEndpoint = aws.String("https://mock.s3.local")
			})
			archiver = archive.NewS3Archiver(client, cfg, zap.NewNop().Sugar())
		})

		It("puts the file in the configured bucket", func() {
			startedTime := time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)
			key, err := archiver.Archive(context.Background(), "run1", startedTime, []byte("a,b\n1,2\n"))
			Expect(err).ToNot(HaveOccurred())
			Expect(key).To(Equal("exports/2024/03/05/140709-run1.csv"))

			Expect(transport.requests).To(HaveLen(1))
			Expect(transport.requests[0].method).To(Equal(http.MethodPut))
			Expect(transport.requests[0].path).To(Equal("/lab-exports/exports/2024/03/05/140709-run1.csv"))
			Expect(transport.requests[0].contentType).To(Equal("text/csv"))
		})
	})

	Describe("NewArchiver", func() {
		It("returns a no-op archiver without a bucket", func() {
			archiver, err := archive.NewArchiver(archive.Config{}, zap.NewNop().Sugar())
			Expect(err).ToNot(HaveOccurred())

			key, err := archiver.Archive(context.Background(), "run1", time.Now(), []byte("data"))
			Expect(err).ToNot(HaveOccurred())
			Expect(key).To(BeEmpty())
		})
	})
})

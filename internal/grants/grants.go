// Package grants issues time-limited authorizations for direct client
// uploads to object storage.
package grants

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/minio/minio-go/v7/pkg/signer"
)

const (
	// Expiry is how long an upload grant stays valid.
	Expiry = 5 * time.Minute

	// MaxContentLength caps uploads at 1 MiB regardless of the size the
	// client declared.
	MaxContentLength = 1048576

	successStatus = "201"

	signAlgorithm    = "AWS4-HMAC-SHA256"
	expirationFormat = "2006-01-02T15:04:05.000Z"
	amzDateFormat    = "20060102T150405Z"
)

// Grant is a presigned POST authorization for exactly one object key. It
// expires on its own; there is no revocation path.
type Grant struct {
	URL    string            `json:"url"`
	Fields map[string]string `json:"fields"`
}

// Issuer builds upload grants. A nil grant means "no upload grant
// available": callers continue without one rather than failing the request.
type Issuer interface {
	Authorize(ctx context.Context, objectKey, mimeType string, size int64, md5 string) *Grant
}

// S3Issuer issues grants against an S3-compatible bucket. The policy is
// assembled and signed here rather than through PostPolicy, because the
// Cache-Control, Content-Length and Content-MD5 form fields have to be
// policy conditions and PostPolicy has no setter for them. S3 rejects any
// form field the policy does not cover, so every field a Grant carries must
// be signed.
type S3Issuer struct {
	endpoint *url.URL
	bucket   string
	region   string
	creds    *credentials.Credentials
	logger   *slog.Logger
}

var _ Issuer = (*S3Issuer)(nil)

func NewS3Issuer(endpoint *url.URL, bucket, region string, creds *credentials.Credentials, logger *slog.Logger) *S3Issuer {
	return &S3Issuer{
		endpoint: endpoint,
		bucket:   bucket,
		region:   region,
		creds:    creds,
		logger:   logger,
	}
}

// signedFields is the fixed order the form fields enter the policy
// document in. Every one of them becomes an exact-match condition.
var signedFields = []string{
	"bucket",
	"key",
	"Content-Type",
	"success_action_status",
	"Cache-Control",
	"Content-Length",
	"Content-MD5",
	"x-amz-date",
	"x-amz-algorithm",
	"x-amz-credential",
	"x-amz-security-token",
}

// Authorize presigns a POST policy scoped to objectKey: exact content type,
// declared size and checksum, content length within [0, MaxContentLength],
// valid for Expiry. Each form field on the returned Grant is backed by an
// exact-match policy condition.
func (s *S3Issuer) Authorize(ctx context.Context, objectKey, mimeType string, size int64, md5 string) *Grant {
	if strings.TrimSpace(objectKey) == "" {
		s.logger.ErrorContext(ctx, "refusing to presign an empty object key")
		return nil
	}

	val, err := s.creds.Get()
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to resolve credentials",
			slog.String("key", objectKey), slog.Any("error", err))
		return nil
	}

	now := time.Now().UTC()
	fields := map[string]string{
		"bucket":                s.bucket,
		"key":                   objectKey,
		"Content-Type":          mimeType,
		"success_action_status": successStatus,
		"Cache-Control":         fmt.Sprintf("max-age=%d", int(Expiry.Seconds())),
		"Content-Length":        strconv.FormatInt(size, 10),
		"Content-MD5":           md5,
		"x-amz-date":            now.Format(amzDateFormat),
		"x-amz-algorithm":       signAlgorithm,
		"x-amz-credential":      signer.GetCredential(val.AccessKeyID, s.region, now, signer.ServiceTypeS3),
	}
	if val.SessionToken != "" {
		fields["x-amz-security-token"] = val.SessionToken
	}

	conditions := make([]any, 0, len(fields)+1)
	for _, name := range signedFields {
		if v, ok := fields[name]; ok {
			conditions = append(conditions, []any{"eq", "$" + name, v})
		}
	}
	conditions = append(conditions, []any{"content-length-range", 0, MaxContentLength})

	doc, err := json.Marshal(struct {
		Expiration string `json:"expiration"`
		Conditions []any  `json:"conditions"`
	}{
		Expiration: now.Add(Expiry).Format(expirationFormat),
		Conditions: conditions,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to marshal post policy",
			slog.String("key", objectKey), slog.Any("error", err))
		return nil
	}

	policy := base64.StdEncoding.EncodeToString(doc)
	fields["policy"] = policy
	fields["x-amz-signature"] = signer.PostPresignSignatureV4(policy, now, val.SecretAccessKey, s.region)

	uploadURL := *s.endpoint
	uploadURL.Path = "/" + s.bucket + "/"

	return &Grant{
		URL:    uploadURL.String(),
		Fields: fields,
	}
}

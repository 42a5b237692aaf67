// Package export hands a campaign's evaluated audience to the external
// dispatcher as a CSV recipient list in S3-compatible object storage.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/solatis/audiencekeeper/internal/core/config"
	"github.com/solatis/audiencekeeper/internal/types"
)

// Exporter publishes the recipient list of a campaign and returns where it
// was written.
type Exporter interface {
	Export(ctx context.Context, campaign *types.Campaign, recipients []types.CustomerID) (string, error)
}

// New returns an S3 exporter when export is enabled, otherwise Nop.
func New(ctx context.Context, cfg config.ExportConfig) (Exporter, error) {
	if !cfg.Enabled {
		return Nop{}, nil
	}
	return NewS3(ctx, cfg)
}

// Nop discards recipient lists.
type Nop struct{}

// Export implements Exporter.
func (Nop) Export(context.Context, *types.Campaign, []types.CustomerID) (string, error) {
	return "", nil
}

// S3 writes recipient lists to a bucket.
type S3 struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3 builds a client from the default AWS chain, overridden by static
// credentials from the environment when present (see
// config.ExportCredentials).
func NewS3(ctx context.Context, cfg config.ExportConfig) (*S3, error) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}

	id, secret, ok, err := config.ExportCredentials()
	if err != nil {
		return nil, err
	}
	if ok {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(id, secret, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			// S3-compatible stores do not all accept the default CRC checksums.
			o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		}
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
	})

	return &S3{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

// Key returns the object key for a campaign's recipient list.
func (e *S3) Key(id types.CampaignID) string {
	key := path.Join(e.prefix, string(id)+".csv")
	return strings.TrimPrefix(key, "/")
}

// Export implements Exporter. The object holds a header row followed by
// one row per recipient.
func (e *S3) Export(ctx context.Context, campaign *types.Campaign, recipients []types.CustomerID) (string, error) {
	body, err := recipientCSV(campaign, recipients)
	if err != nil {
		return "", err
	}

	key := e.Key(campaign.CampaignID)
	_, err = e.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("text/csv"),
		Metadata: map[string]string{
			"campaign-id": string(campaign.CampaignID),
			"segment-id":  string(campaign.SegmentID),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload recipient list: %w", err)
	}
	return "s3://" + e.bucket + "/" + key, nil
}

func recipientCSV(campaign *types.Campaign, recipients []types.CustomerID) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"campaign_id", "customer_id"}); err != nil {
		return nil, err
	}
	for _, id := range recipients {
		if err := w.Write([]string{string(campaign.CampaignID), string(id)}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to encode recipient list: %w", err)
	}
	return buf.Bytes(), nil
}

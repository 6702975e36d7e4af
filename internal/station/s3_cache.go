package station

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"

	"github.com/tidecast/tidecast/internal/cache"
	"github.com/tidecast/tidecast/internal/models"
)

// S3Client defines the interface for S3 operations we need
type S3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

const snapshotKey = "stations.json"

// SnapshotCache persists the station directory between cold starts.
type SnapshotCache interface {
	GetStations(ctx context.Context) ([]models.Station, error)
	SaveStations(ctx context.Context, stations []models.Station) error
}

// S3SnapshotCache stores the station directory as a single S3 object.
type S3SnapshotCache struct {
	client     S3Client
	bucketName string
	ttl        time.Duration
	clock      cache.Clock
}

// snapshotRecord is the stored station list with expiry metadata.
type snapshotRecord struct {
	Stations    []models.Station `json:"stations"`
	LastUpdated int64            `json:"lastUpdated"`
	TTL         int64            `json:"ttl"`
}

func NewS3SnapshotCache(client S3Client, bucketName string, ttl time.Duration) *S3SnapshotCache {
	return &S3SnapshotCache{
		client:     client,
		bucketName: bucketName,
		ttl:        ttl,
		clock:      cache.NewSystemClock(),
	}
}

// GetStations retrieves the directory snapshot if present and unexpired.
// A missing object is not an error; it just means no snapshot yet.
func (c *S3SnapshotCache) GetStations(ctx context.Context) ([]models.Station, error) {
	if c.bucketName == "" {
		return nil, fmt.Errorf("empty bucket name")
	}

	result, err := c.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(snapshotKey),
	})
	if err != nil {
		return nil, nil
	}
	defer func(body io.ReadCloser) {
		if closeErr := body.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("Error closing S3 object body")
		}
	}(result.Body)

	var record snapshotRecord
	if err := json.NewDecoder(result.Body).Decode(&record); err != nil {
		return nil, fmt.Errorf("decoding snapshot record: %w", err)
	}

	if c.clock.Now().Unix() > record.TTL {
		log.Debug().Msg("Station directory snapshot expired")
		return nil, nil
	}

	return record.Stations, nil
}

// SaveStations writes the directory snapshot.
func (c *S3SnapshotCache) SaveStations(ctx context.Context, stations []models.Station) error {
	if c.bucketName == "" {
		return fmt.Errorf("empty bucket name")
	}

	now := c.clock.Now().Unix()
	record := snapshotRecord{
		Stations:    stations,
		LastUpdated: now,
		TTL:         now + int64(c.ttl.Seconds()),
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(record); err != nil {
		return fmt.Errorf("encoding snapshot record: %w", err)
	}

	_, err := c.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(snapshotKey),
		Body:   bytes.NewReader(buf.Bytes()),
	})
	if err != nil {
		return fmt.Errorf("saving snapshot to S3: %w", err)
	}

	log.Debug().Int("station_count", len(stations)).Msg("Saved station directory snapshot to S3")
	return nil
}

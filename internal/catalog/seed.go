package catalog

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"restaurant-ordering/internal/model"
	"restaurant-ordering/internal/validation"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// Loader reads a menu seed: a gzipped file with one JSON menu item per line.
type Loader interface {
	Load(ctx context.Context, path string) ([]model.MenuItemInput, error)
}

// decodeSeed parses gzipped JSON lines from r. Blank lines are skipped and
// errors name the offending line.
func decodeSeed(ctx context.Context, r io.Reader, source string) ([]model.MenuItemInput, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader for %s: %w", source, err)
	}
	defer gzipReader.Close()

	scanner := bufio.NewScanner(gzipReader)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var items []model.MenuItemInput
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var item model.MenuItemInput
		if err := json.Unmarshal([]byte(line), &item); err != nil {
			return nil, fmt.Errorf("%s line %d: %w", source, lineNo, err)
		}
		items = append(items, item)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading menu seed %s: %w", source, err)
	}

	return items, nil
}

// fileLoader reads seeds from the local file system.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a Loader reading local files.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "menu-seed-loader").Logger(),
	}
}

func (l *fileLoader) Load(ctx context.Context, path string) ([]model.MenuItemInput, error) {
	l.logger.Info().Str("file", path).Msg("loading menu seed file")

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open menu seed %s: %w", path, err)
	}
	defer file.Close()

	items, err := decodeSeed(ctx, file, path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to read menu seed file")
		return nil, err
	}

	l.logger.Info().Str("file", path).Int("items_loaded", len(items)).Msg("menu seed file loaded")
	return items, nil
}

// objectGetter is the part of the S3 client used by the loader.
type objectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// s3Loader reads seeds from an S3 bucket.
type s3Loader struct {
	client objectGetter
	bucket string
	logger zerolog.Logger
}

// NewS3Loader creates a Loader reading objects from bucket using the default
// AWS credential chain.
func NewS3Loader(ctx context.Context, bucket, region string, logger zerolog.Logger) (Loader, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return newS3Loader(s3.NewFromConfig(cfg), bucket, logger), nil
}

func newS3Loader(client objectGetter, bucket string, logger zerolog.Logger) *s3Loader {
	return &s3Loader{
		client: client,
		bucket: bucket,
		logger: logger.With().Str("component", "s3-menu-seed-loader").Str("bucket", bucket).Logger(),
	}
}

func (l *s3Loader) Load(ctx context.Context, key string) ([]model.MenuItemInput, error) {
	l.logger.Info().Str("key", key).Msg("loading menu seed from S3")

	result, err := l.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object from S3 (bucket=%s, key=%s): %w", l.bucket, key, err)
	}
	defer result.Body.Close()

	items, err := decodeSeed(ctx, result.Body, "s3://"+l.bucket+"/"+key)
	if err != nil {
		l.logger.Error().Err(err).Str("key", key).Msg("failed to read menu seed from S3")
		return nil, err
	}

	l.logger.Info().Str("key", key).Int("items_loaded", len(items)).Msg("menu seed loaded from S3")
	return items, nil
}

// fallbackLoader tries S3 first and falls back to the local file system.
type fallbackLoader struct {
	remote Loader
	local  Loader
	prefix string
	logger zerolog.Logger
}

// NewFallbackLoader creates a Loader that reads prefix+path from remote when
// remote is non-nil, and path from local when remote is absent or fails.
func NewFallbackLoader(remote, local Loader, prefix string, logger zerolog.Logger) Loader {
	return &fallbackLoader{
		remote: remote,
		local:  local,
		prefix: prefix,
		logger: logger.With().Str("component", "fallback-menu-seed-loader").Logger(),
	}
}

func (l *fallbackLoader) Load(ctx context.Context, path string) ([]model.MenuItemInput, error) {
	if l.remote != nil {
		key := l.prefix + path
		items, err := l.remote.Load(ctx, key)
		if err == nil {
			return items, nil
		}
		l.logger.Warn().Err(err).Str("s3_key", key).Msg("failed to load from S3, falling back to local file system")
	}

	return l.local.Load(ctx, path)
}

// Seeder populates an empty catalog from a seed file.
type Seeder struct {
	store     Store
	loader    Loader
	validator *validation.Validator
	logger    zerolog.Logger
}

// NewSeeder creates a Seeder.
func NewSeeder(store Store, loader Loader, v *validation.Validator, logger zerolog.Logger) *Seeder {
	return &Seeder{
		store:     store,
		loader:    loader,
		validator: v,
		logger:    logger.With().Str("component", "menu-seeder").Logger(),
	}
}

// Seed loads path and inserts its items if the catalog is empty. It returns
// the number of inserted items; a non-empty catalog is left untouched.
// Every item is validated before anything is written.
func (s *Seeder) Seed(ctx context.Context, path string) (int, error) {
	count, err := s.store.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		s.logger.Info().Int64("existing_items", count).Msg("catalog already populated, skipping seed")
		return 0, nil
	}

	items, err := s.loader.Load(ctx, path)
	if err != nil {
		return 0, err
	}

	for i := range items {
		if err := s.validator.MenuItemInput(&items[i]); err != nil {
			return 0, fmt.Errorf("menu item %d: %w", i+1, err)
		}
	}

	n, err := s.store.InsertMany(ctx, items)
	if err != nil {
		return 0, err
	}

	s.logger.Info().Int("items_inserted", n).Str("source", path).Msg("catalog seeded")
	return n, nil
}

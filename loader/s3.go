package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/signadot/protodoc/debug"
	"github.com/signadot/protodoc/format"
	"github.com/signadot/protodoc/ir"
	"github.com/signadot/protodoc/parse"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3API is the part of the S3 client S3 uses.
type S3API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3 loads documents stored as objects under Prefix in Bucket.
type S3 struct {
	Client    S3API
	Bucket    string
	Prefix    string
	ParseOpts []parse.ParseOption
}

type S3Config struct {
	Bucket   string
	Prefix   string
	Region   string
	Endpoint string
}

// NewS3 creates an S3 loader using the default AWS credential chain.  A
// custom endpoint selects path style addressing, for S3 compatible stores.
func NewS3(ctx context.Context, cfg *S3Config) (*S3, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("could not load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3{Client: client, Bucket: cfg.Bucket, Prefix: cfg.Prefix}, nil
}

func (l *S3) Load(name string) (*ir.Node, error) {
	key := path.Join(l.Prefix, name)
	out, err := l.Client.GetObject(context.Background(), &s3.GetObjectInput{
		Bucket: aws.String(l.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, fmt.Errorf("%w: s3://%s/%s", ErrNotFound, l.Bucket, key)
		}
		return nil, fmt.Errorf("could not get s3://%s/%s: %w", l.Bucket, key, err)
	}
	defer out.Body.Close()
	d, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read s3://%s/%s: %w", l.Bucket, key, err)
	}
	if debug.Load() {
		debug.Logf("loaded %s from s3://%s/%s", name, l.Bucket, key)
	}
	var opts []parse.ParseOption
	if ff := format.FromExtension(key); ff != nil {
		opts = append(opts, parse.ParseFormat(*ff))
	}
	node, err := parse.Parse(d, append(opts, l.ParseOpts...)...)
	if err != nil {
		return nil, fmt.Errorf("could not decode s3://%s/%s: %w", l.Bucket, key, err)
	}
	return node, nil
}

package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/hupe1980/sievego/blobstore"
	"github.com/hupe1980/sievego/blobstore/minio"
	"github.com/hupe1980/sievego/blobstore/s3"
)

// storeLocation is a parsed -store value.
type storeLocation struct {
	scheme string // "", "s3" or "minio"
	host   string
	bucket string
	prefix string
	dir    string
}

// parseStore accepts a directory, s3://bucket/prefix or
// minio://host[:port]/bucket/prefix.
func parseStore(raw string) (storeLocation, error) {
	if !strings.Contains(raw, "://") {
		if raw == "" {
			raw = "."
		}
		return storeLocation{dir: raw}, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return storeLocation{}, fmt.Errorf("store: %w", err)
	}
	path := strings.Trim(u.Path, "/")

	switch u.Scheme {
	case "s3":
		if u.Host == "" {
			return storeLocation{}, fmt.Errorf("store %q: missing bucket", raw)
		}
		return storeLocation{scheme: "s3", bucket: u.Host, prefix: path}, nil
	case "minio":
		bucket, prefix, _ := strings.Cut(path, "/")
		if u.Host == "" || bucket == "" {
			return storeLocation{}, fmt.Errorf("store %q: want minio://host/bucket", raw)
		}
		return storeLocation{scheme: "minio", host: u.Host, bucket: bucket, prefix: prefix}, nil
	default:
		return storeLocation{}, fmt.Errorf("store %q: unsupported scheme %q", raw, u.Scheme)
	}
}

// openStore opens the store named by raw. MinIO credentials come from
// MINIO_ACCESS_KEY and MINIO_SECRET_KEY; MINIO_SECURE=true enables TLS.
func openStore(ctx context.Context, raw string) (blobstore.Store, error) {
	loc, err := parseStore(raw)
	if err != nil {
		return nil, err
	}

	switch loc.scheme {
	case "s3":
		return s3.New(ctx, loc.bucket, s3.WithPrefix(loc.prefix))
	case "minio":
		client, err := minio.Dial(loc.host, os.Getenv("MINIO_ACCESS_KEY"), os.Getenv("MINIO_SECRET_KEY"),
			os.Getenv("MINIO_SECURE") == "true")
		if err != nil {
			return nil, fmt.Errorf("store: %w", err)
		}
		return minio.NewStore(client, loc.bucket, loc.prefix), nil
	default:
		return blobstore.NewLocalStore(loc.dir), nil
	}
}

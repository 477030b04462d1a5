// Package s3 provides an S3 implementation of the blobstore.Store interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("sieve-runs/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	err = snapshot.SaveVectors(ctx, store, "run-1/gen-0001.snap", vecs)
//
// # Features
//
//   - Multipart uploads for large snapshots
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3

// Package dataset reads and writes multi-document summarization examples as
// JSON Lines, one {"document": ..., "summary": ...} object per line.
//
// Locations are either local paths or s3://<bucket>/<key> objects served by
// pkg/minio.
package dataset

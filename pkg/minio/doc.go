// Package minio stores dataset files in a MinIO or S3-compatible bucket.
//
// The perturbation CLI reads JSONL inputs from and writes perturbed outputs to
// keys of the form s3://<bucket>/<key>. The bucket is created on first use.
//
//	client, err := minio.NewClient(minio.Config{
//	    Connection: minio.ConnectionConfig{
//	        Endpoint:        "localhost:9000",
//	        AccessKeyID:     "minioadmin",
//	        SecretAccessKey: "minioadmin",
//	        BucketName:      "open-mds",
//	    },
//	}, log)
//	if err != nil {
//	    return err
//	}
//	_, err = client.Put(ctx, "multinews/test.perturbed.jsonl", r, -1)
package minio

// Package redis stores document embeddings in Redis so that separate runs
// and processes can reuse vectors without a vector database.
//
// Each vector lives under KeyPrefix plus a name-based UUID of embedder and
// document, stored as packed little-endian float32 values, and expires after
// the configured TTL.
//
//	app := fx.New(
//	    redis.FXModule,
//	    embedcache.FXModule,
//	    fx.Supply(redis.Config{Host: "localhost", Port: 6379}),
//	)
package redis

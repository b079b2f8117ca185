// Package schemaregistry encodes run events as Avro records in the Confluent
// wire format: a zero magic byte, the big-endian schema ID, then the record.
//
// Included in the graph next to kafka.FXModule, it replaces the producer's
// JSON values:
//
//	app := fx.New(
//	    kafka.FXModule,
//	    schemaregistry.FXModule,
//	    fx.Supply(kafkaConfig, schemaregistry.Config{URL: "http://localhost:8081", Subject: "open-mds.runs-value"}),
//	)
package schemaregistry

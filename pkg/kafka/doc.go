// Package kafka publishes perturbation run events to a Kafka topic.
//
// Messages are keyed by perturbation name. Values are JSON runs.Event
// documents unless another Encoder, such as the Avro encoder of
// pkg/schemaregistry, is present in the fx graph.
package kafka

// Package rabbit publishes perturbation run events to RabbitMQ.
//
// Events are JSON runs.Event documents sent to a durable topic exchange under
// "<prefix>.<perturbation>", so an evaluation worker can bind to
// "run.completed.#" or to a single perturbation. Publishes use publisher
// confirms and return only after the broker acknowledged the message.
package rabbit

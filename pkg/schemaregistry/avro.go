package schemaregistry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/linkedin/goavro/v2"

	"github.com/Aleph-Alpha/open-mds/pkg/runs"
)

// RunEventSchema is the Avro record for runs.Event.
const RunEventSchema = `{
  "type": "record",
  "name": "RunEvent",
  "namespace": "com.aleph_alpha.open_mds",
  "fields": [
    {"name": "run_id", "type": "string", "default": ""},
    {"name": "perturbation", "type": "string"},
    {"name": "strategy", "type": "string"},
    {"name": "perturbed_frac", "type": "double"},
    {"name": "seed", "type": "long"},
    {"name": "examples", "type": "long"},
    {"name": "input", "type": "string"},
    {"name": "output", "type": "string"},
    {"name": "finished_at", "type": {"type": "long", "logicalType": "timestamp-millis"}},
    {"name": "error", "type": "string", "default": ""}
  ]
}`

// AvroEncoder serializes run events in the registry wire format. The schema is
// registered once, on Register or on the first Encode.
type AvroEncoder struct {
	client  *Client
	subject string
	codec   *goavro.Codec

	mu sync.Mutex
	id int
}

// NewAvroEncoder compiles RunEventSchema for subject.
func NewAvroEncoder(client *Client, cfg Config) (*AvroEncoder, error) {
	codec, err := goavro.NewCodec(RunEventSchema)
	if err != nil {
		return nil, fmt.Errorf("schemaregistry: compiling run event schema: %w", err)
	}
	return &AvroEncoder{client: client, subject: cfg.Subject, codec: codec}, nil
}

// Register makes sure the schema is known to the registry and returns its ID.
func (e *AvroEncoder) Register(ctx context.Context) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.id != 0 {
		return e.id, nil
	}
	id, err := e.client.RegisterSchema(ctx, e.subject, RunEventSchema)
	if err != nil {
		return 0, err
	}
	e.id = id
	return id, nil
}

// Encode returns the schema ID prefix followed by the Avro binary record.
func (e *AvroEncoder) Encode(ctx context.Context, event runs.Event) ([]byte, error) {
	id, err := e.Register(ctx)
	if err != nil {
		return nil, err
	}
	native := map[string]interface{}{
		"run_id":         event.RunID,
		"perturbation":   event.Perturbation,
		"strategy":       event.Strategy,
		"perturbed_frac": event.PerturbedFrac,
		"seed":           int64(event.Seed),
		"examples":       int64(event.Examples),
		"input":          event.Input,
		"output":         event.Output,
		"finished_at":    event.FinishedAt,
		"error":          event.Error,
	}
	return e.codec.BinaryFromNative(EncodeSchemaID(id), native)
}

// ContentType identifies Avro payloads in message headers.
func (e *AvroEncoder) ContentType() string { return "application/vnd.apache.avro+binary" }

// Decode reads a message written by Encode.
func (e *AvroEncoder) Decode(data []byte) (runs.Event, error) {
	_, payload, err := DecodeSchemaID(data)
	if err != nil {
		return runs.Event{}, err
	}
	native, _, err := e.codec.NativeFromBinary(payload)
	if err != nil {
		return runs.Event{}, fmt.Errorf("schemaregistry: decoding run event: %w", err)
	}
	rec, ok := native.(map[string]interface{})
	if !ok {
		return runs.Event{}, fmt.Errorf("schemaregistry: unexpected record type %T", native)
	}

	event := runs.Event{}
	event.RunID, _ = rec["run_id"].(string)
	event.Perturbation, _ = rec["perturbation"].(string)
	event.Strategy, _ = rec["strategy"].(string)
	event.PerturbedFrac, _ = rec["perturbed_frac"].(float64)
	if seed, ok := rec["seed"].(int64); ok {
		event.Seed = uint64(seed)
	}
	if n, ok := rec["examples"].(int64); ok {
		event.Examples = int(n)
	}
	event.Input, _ = rec["input"].(string)
	event.Output, _ = rec["output"].(string)
	event.FinishedAt, _ = rec["finished_at"].(time.Time)
	event.Error, _ = rec["error"].(string)
	return event, nil
}

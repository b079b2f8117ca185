package dataset

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
)

// maxLineSize bounds a single JSONL record. Multi-News inputs reach a few hundred KB.
const maxLineSize = 16 * 1024 * 1024

// ErrMalformedRecord is returned when a line is not a valid example.
var ErrMalformedRecord = errors.New("dataset: malformed record")

// Example is one multi-document summarization example. Document holds all
// input documents joined by the dataset's separator token.
type Example struct {
	Document string `json:"document"`
	Summary  string `json:"summary"`

	// Extra keeps every other field of the record, such as ids or metadata,
	// so that it is written back unchanged.
	Extra map[string]json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes document and summary and collects the remaining fields into Extra.
func (ex *Example) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	var out Example
	for key, dst := range map[string]*string{"document": &out.Document, "summary": &out.Summary} {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return fmt.Errorf("field %s: %w", key, err)
		}
		delete(fields, key)
	}
	if len(fields) > 0 {
		out.Extra = fields
	}

	*ex = out
	return nil
}

// MarshalJSON writes document and summary first, then the extra fields in key order.
func (ex Example) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	encode := func(v interface{}) error {
		if err := enc.Encode(v); err != nil {
			return err
		}
		buf.Truncate(buf.Len() - 1) // trailing newline
		return nil
	}
	field := func(key string, v interface{}) error {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		if err := encode(key); err != nil {
			return err
		}
		buf.WriteByte(':')
		return encode(v)
	}

	buf.WriteByte('{')
	if err := field("document", ex.Document); err != nil {
		return nil, err
	}
	if err := field("summary", ex.Summary); err != nil {
		return nil, err
	}
	for _, key := range slices.Sorted(maps.Keys(ex.Extra)) {
		if key == "document" || key == "summary" {
			continue
		}
		if err := field(key, ex.Extra[key]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Read decodes JSON Lines. Blank lines are skipped.
func Read(r io.Reader) ([]Example, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var out []Example
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		var ex Example
		if err := json.Unmarshal([]byte(text), &ex); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedRecord, line, err)
		}
		out = append(out, ex)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("dataset: reading line %d: %w", line+1, err)
	}
	return out, nil
}

// Write encodes examples as JSON Lines, one object per line.
func Write(w io.Writer, examples []Example) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	for i, ex := range examples {
		if err := enc.Encode(ex); err != nil {
			return fmt.Errorf("dataset: encoding example %d: %w", i, err)
		}
	}
	return bw.Flush()
}

// Inputs returns the joined documents of every example.
func Inputs(examples []Example) []string {
	out := make([]string, len(examples))
	for i, ex := range examples {
		out[i] = ex.Document
	}
	return out
}

// Targets returns the reference summary of every example.
func Targets(examples []Example) []string {
	out := make([]string, len(examples))
	for i, ex := range examples {
		out[i] = ex.Summary
	}
	return out
}

// WithInputs returns copies of examples with Document replaced by inputs[i].
// Summary and Extra are carried over.
func WithInputs(examples []Example, inputs []string) ([]Example, error) {
	if len(examples) != len(inputs) {
		return nil, fmt.Errorf("dataset: %d examples but %d inputs", len(examples), len(inputs))
	}
	out := make([]Example, len(examples))
	for i, ex := range examples {
		out[i] = Example{Document: inputs[i], Summary: ex.Summary, Extra: ex.Extra}
	}
	return out, nil
}

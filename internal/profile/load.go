package profile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Decode reads a single JSON object from r.
func Decode(r io.Reader) (Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return nil, fmt.Errorf("expected a JSON object: %w", ErrInvalidRecord)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalidRecord)
	}
	return rec, nil
}

// Load reads a record from path. A path of "-" reads from stdin.
func Load(path string, stdin io.Reader) (Record, error) {
	if path == "-" {
		return Decode(stdin)
	}

	f, err := os.Open(path) // #nosec G304 -- user-specified profile file
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("cannot open profile: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

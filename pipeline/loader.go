package pipeline

import (
	"bytes"
	stderrors "errors"
	"io"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/kbukum/rxkit/errors"
)

// ParseYAML decodes a pipeline description. Unknown keys are rejected so
// that a misspelled stage field does not silently become a no-op.
func ParseYAML(data []byte) (Spec, error) {
	var s Spec
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if stderrors.Is(err, io.EOF) {
			return Spec{}, errors.InvalidSpec("", "empty document")
		}
		return Spec{}, errors.InvalidSpec("", "malformed yaml").WithCause(err)
	}
	return s, nil
}

// LoadFile reads and decodes a pipeline description from path.
func LoadFile(path string) (Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Spec{}, errors.ConfigLoad(path, err)
	}
	s, err := ParseYAML(data)
	if err != nil {
		if appErr, ok := errors.AsAppError(err); ok {
			return Spec{}, appErr.WithDetail("file", path)
		}
		return Spec{}, err
	}
	return s, nil
}

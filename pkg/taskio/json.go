package taskio

import (
	"bytes"
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/ganttline/pkg/errors"
)

// document is the object form of a task file.
type document struct {
	Tasks []record `json:"tasks" yaml:"tasks"`
}

func decodeJSON(r io.Reader) ([]record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	if data[0] == '{' {
		var doc document
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode task JSON")
		}
		return doc.Tasks, nil
	}
	var recs []record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode task JSON")
	}
	return recs, nil
}

func encodeJSON(w io.Writer, recs []record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(recs)
}

func decodeYAML(r io.Reader) ([]record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode task YAML")
	}
	if len(node.Content) == 0 {
		return nil, nil
	}

	root := node.Content[0]
	if root.Kind == yaml.MappingNode {
		var doc document
		if err := root.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode task YAML")
		}
		return doc.Tasks, nil
	}
	var recs []record
	if err := root.Decode(&recs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode task YAML")
	}
	return recs, nil
}

func encodeYAML(w io.Writer, recs []record) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(document{Tasks: recs}); err != nil {
		return err
	}
	return enc.Close()
}

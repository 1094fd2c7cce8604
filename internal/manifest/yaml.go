package manifest

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// yamlCodec edits the version scalar inside the parsed node tree so that
// comments and key order survive the rewrite.
type yamlCodec struct{}

func (yamlCodec) version(data []byte) (string, error) {
	_, node, err := findYAMLVersion(data)
	if err != nil {
		return "", err
	}
	return node.Value, nil
}

func (yamlCodec) setVersion(data []byte, version string) ([]byte, error) {
	doc, node, err := findYAMLVersion(data)
	if err != nil {
		return nil, err
	}

	node.Value = version
	node.Tag = "!!str"

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding YAML: %w", err)
	}
	return buf.Bytes(), nil
}

func findYAMLVersion(data []byte) (*yaml.Node, *yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("invalid YAML: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, nil, ErrNoVersion
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, nil, fmt.Errorf("invalid YAML: top-level value must be a mapping")
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if key.Value != "version" {
			continue
		}
		if value.Kind != yaml.ScalarNode || value.ShortTag() != "!!str" {
			return nil, nil, ErrVersionNotString
		}
		return &doc, value, nil
	}
	return nil, nil, ErrNoVersion
}

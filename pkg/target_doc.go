package buildver

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"gopkg.in/yaml.v3"
)

// setDocKey sets a single key in a structured document, dispatching on
// the file extension. JSON edits splice the value alone so key order and
// indentation survive; YAML edits round-trip the node tree so comments
// survive.
func setDocKey(path, key, version string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	var next []byte
	switch ext := filepath.Ext(path); ext {
	case ".json":
		next, err = setJSONKey(data, key, version)
	case ".yaml", ".yml":
		next, err = setYAMLKey(data, key, version)
	default:
		return false, fmt.Errorf("unsupported document type %q", ext)
	}
	if err != nil {
		return false, err
	}

	if bytes.Equal(data, next) {
		return false, nil
	}
	if err := renameio.WriteFile(path, next, 0o644); err != nil {
		return false, err
	}
	return true, nil
}

func setJSONKey(data []byte, key, version string) ([]byte, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON")
	}
	if cur := gjson.GetBytes(data, key); cur.Exists() && cur.String() == version {
		return data, nil
	}
	return sjson.SetBytes(data, key, version)
}

func setYAMLKey(data []byte, key, version string) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("invalid YAML: empty document")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("invalid YAML: top level is not a mapping")
	}

	found := false
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == key {
			if root.Content[i+1].Value == version {
				return data, nil
			}
			root.Content[i+1].SetString(version)
			found = true
			break
		}
	}
	if !found {
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: key},
			&yaml.Node{Kind: yaml.ScalarNode, Value: version},
		)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		enc.Close()
		return nil, fmt.Errorf("re-encoding YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("re-encoding YAML: %w", err)
	}
	return buf.Bytes(), nil
}

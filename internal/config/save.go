package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SaveVim updates the vim section in the config file.
// Comments and formatting in other sections are preserved by editing the
// yaml.Node tree in place.
func SaveVim(configPath string, v VimConfig) error {
	if err := ValidateVim(v); err != nil {
		return err
	}
	node, err := buildVimNode(v)
	if err != nil {
		return fmt.Errorf("building vim node: %w", err)
	}
	return saveSection(configPath, "vim", node)
}

// saveSection replaces (or appends) the top-level key in configPath.
func saveSection(configPath, key string, value *yaml.Node) error {
	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	var doc yaml.Node
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	if doc.Kind == 0 {
		doc = yaml.Node{
			Kind: yaml.DocumentNode,
			Content: []*yaml.Node{{
				Kind: yaml.MappingNode,
				Content: []*yaml.Node{
					{Kind: yaml.ScalarNode, Value: key},
					value,
				},
			}},
		}
	} else if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		root := doc.Content[0]
		if root.Kind != yaml.MappingNode {
			return fmt.Errorf("parsing config: top level is not a mapping")
		}
		found := false
		for i := 0; i < len(root.Content)-1; i += 2 {
			if root.Content[i].Value == key {
				mergeMapping(root.Content[i+1], value)
				found = true
				break
			}
		}
		if !found {
			root.Content = append(root.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: key},
				value,
			)
		}
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	return writeAtomic(configPath, buf.Bytes())
}

// mergeMapping overwrites values in dst with those in src, keeping the
// key nodes (and their comments) of dst.
func mergeMapping(dst, src *yaml.Node) {
	if dst.Kind != yaml.MappingNode {
		*dst = *src
		return
	}
	for j := 0; j < len(src.Content)-1; j += 2 {
		k, v := src.Content[j], src.Content[j+1]
		replaced := false
		for i := 0; i < len(dst.Content)-1; i += 2 {
			if dst.Content[i].Value == k.Value {
				v.LineComment = dst.Content[i+1].LineComment
				dst.Content[i+1] = v
				replaced = true
				break
			}
		}
		if !replaced {
			dst.Content = append(dst.Content, k, v)
		}
	}
}

func buildVimNode(v VimConfig) (*yaml.Node, error) {
	var node yaml.Node
	if err := node.Encode(v); err != nil {
		return nil, err
	}
	return &node, nil
}

func writeAtomic(configPath string, data []byte) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".vimline.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, configPath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

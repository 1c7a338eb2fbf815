package config

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// keyComments documents each key in the scaffolded config file.
var keyComments = map[string]string{
	"output":     "README path, relative to the repository (env: READMEGEN_OUTPUT)",
	"template":   "Template file or built-in name: default, minimal (env: READMEGEN_TEMPLATE)",
	"github":     "Remote metadata for --github-repo",
	"token":      "API token; prefer the GITHUB_TOKEN environment variable",
	"apiURL":     "REST API base URL",
	"timeout":    "Request timeout",
	"render":     "Rendering options",
	"dateFormat": "Go time layout for {{current_date}}",
	"lists":      "How lists are joined per key: bullets, lines, comma, inline",
	"tidy":       "Collapse runs of blank lines",
	"log":        "Logging options",
	"timestamps": "Show timestamps in log output",
}

// DefaultConfigYAML renders DefaultConfig as a commented YAML document for
// `readmegen config init`.
func DefaultConfigYAML() ([]byte, error) {
	var body yaml.Node
	if err := body.Encode(DefaultConfig()); err != nil {
		return nil, fmt.Errorf("encoding default config: %w", err)
	}
	annotate(&body)

	doc := yaml.Node{
		Kind:        yaml.DocumentNode,
		HeadComment: "readmegen configuration\nPrecedence: flag > environment > this file > default",
		Content:     []*yaml.Node{&body},
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, fmt.Errorf("encoding default config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// annotate attaches keyComments to mapping keys, skipping the entries of
// render.lists whose keys are template variables.
func annotate(n *yaml.Node) {
	if n.Kind != yaml.MappingNode {
		for _, c := range n.Content {
			annotate(c)
		}
		return
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		if c, ok := keyComments[key.Value]; ok {
			key.HeadComment = c
		}
		if key.Value == "lists" {
			continue
		}
		annotate(val)
	}
}

package hardware

import "gopkg.in/yaml.v3"

// ParseDocument decodes a YAML-family hardware constraint document and
// parses it into a Tree in one step, the entry point cmd/hardware.go uses.
func ParseDocument(data []byte) (Tree, error) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return Parse(doc)
}

package results

import "gopkg.in/yaml.v3"

// LoadCustomFile decodes a test's custom result file: an ordered sequence
// of Records, each contributing a distinct result (spec §4.5).
func LoadCustomFile(data []byte) ([]Record, error) {
	var records []Record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// MarshalDocument renders the plan's final results document.
func MarshalDocument(records []Record) ([]byte, error) {
	return yaml.Marshal(records)
}

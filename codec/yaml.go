package codec

import "gopkg.in/yaml.v3"

// YAML is a codec backed by gopkg.in/yaml.v3.
//
// YAML is a superset of JSON, so YAML.Unmarshal also reads reports written by
// the JSON codecs. The reverse does not hold.
type YAML struct{}

// Marshal encodes the value to a YAML document.
func (YAML) Marshal(v any) ([]byte, error) { return yaml.Marshal(v) }

// Unmarshal decodes the YAML (or JSON) data into v.
func (YAML) Unmarshal(data []byte, v any) error { return yaml.Unmarshal(data, v) }

// Name returns the unique name of the codec ("yaml").
func (YAML) Name() string { return "yaml" }

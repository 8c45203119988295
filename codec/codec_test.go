package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Label   int       `json:"label" yaml:"label"`
	Center  []float64 `json:"center" yaml:"center"`
	Members []uint32  `json:"members" yaml:"members"`
}

func TestByName(t *testing.T) {
	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{"json", "json", true},
		{"go-json", "go-json", true},
		{"yaml", "yaml", true},
		{"", Default.Name(), true},
		{"msgpack", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := ByName(tt.name)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, c.Name())
			}
		})
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Lookup("toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "toml")
}

func TestCodecs_Interchangeable(t *testing.T) {
	in := sample{Label: 1, Center: []float64{1.5, -2}, Members: []uint32{0, 3, 7}}

	for _, enc := range []Codec{JSON{}, GoJSON{}} {
		for _, dec := range []Codec{JSON{}, GoJSON{}} {
			t.Run(enc.Name()+"->"+dec.Name(), func(t *testing.T) {
				data, err := enc.Marshal(in)
				require.NoError(t, err)

				var out sample
				require.NoError(t, dec.Unmarshal(data, &out))
				assert.Equal(t, in, out)
			})
		}
	}
}

func TestGoJSON_MarshalIndent(t *testing.T) {
	data, err := GoJSON{}.MarshalIndent(sample{Label: 2}, "", "  ")
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"label\": 2")
}

func TestYAML_ReadsJSON(t *testing.T) {
	in := sample{Label: 3, Center: []float64{0.25, 4}, Members: []uint32{1, 2}}

	for _, enc := range []Codec{JSON{}, GoJSON{}, YAML{}} {
		t.Run(enc.Name(), func(t *testing.T) {
			data, err := enc.Marshal(in)
			require.NoError(t, err)

			var out sample
			require.NoError(t, YAML{}.Unmarshal(data, &out))
			assert.Equal(t, in, out)
		})
	}
}

func TestYAML_Document(t *testing.T) {
	data, err := YAML{}.Marshal(sample{Label: 1, Center: []float64{1, 2}})
	require.NoError(t, err)
	assert.Contains(t, string(data), "label: 1\n")
	assert.Contains(t, string(data), "center:\n")

	var out sample
	assert.Error(t, JSON{}.Unmarshal(data, &out))
}

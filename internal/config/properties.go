package config

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/knadh/koanf/maps"
	"github.com/magiconair/properties"
)

// PropertiesParser is a koanf parser for Java properties files such as
// gradle.properties. Dotted keys (org.gradle.jvmargs) become nested maps.
type PropertiesParser struct{}

// Properties returns a gradle.properties parser.
func Properties() *PropertiesParser {
	return &PropertiesParser{}
}

// Unmarshal parses properties bytes into a nested map. ${...} references
// are kept as written; Gradle does not expand them either. Values are
// trimmed.
func (p *PropertiesParser) Unmarshal(b []byte) (map[string]interface{}, error) {
	loader := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	props, err := loader.LoadBytes(b)
	if err != nil {
		return nil, fmt.Errorf("parsing properties: %w", err)
	}

	out := make(map[string]interface{}, props.Len())
	for _, k := range props.Keys() {
		v, _ := props.Get(k)
		out[k] = strings.TrimSpace(v)
	}
	return maps.Unflatten(out, "."), nil
}

// Marshal flattens a nested map back into properties bytes, sorted by key.
func (p *PropertiesParser) Marshal(o map[string]interface{}) ([]byte, error) {
	flat, _ := maps.Flatten(o, nil, ".")

	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	props := properties.NewProperties()
	props.DisableExpansion = true
	for _, k := range keys {
		if _, _, err := props.Set(k, fmt.Sprint(flat[k])); err != nil {
			return nil, fmt.Errorf("marshaling properties: %w", err)
		}
	}

	var buf bytes.Buffer
	if _, err := props.Write(&buf, properties.UTF8); err != nil {
		return nil, fmt.Errorf("marshaling properties: %w", err)
	}
	return buf.Bytes(), nil
}

package config

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/ghodss/yaml"
)

// LoadClusterFile loads a ClusterConfig from a path to a YAML file.
func LoadClusterFile(path string, expandEnv bool) (ClusterConfig, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return ClusterConfig{}, err
	}

	if expandEnv {
		contents = []byte(os.ExpandEnv(string(contents)))
	}

	return LoadClusterBytes(contents)
}

// LoadClusterBytes loads a ClusterConfig from YAML bytes.
func LoadClusterBytes(contents []byte) (ClusterConfig, error) {
	config := ClusterConfig{}
	err := unmarshalYAMLStrict(contents, &config)
	return config, err
}

// unmarshalYAMLStrict unmarshals YAML into the argument object, erroring out
// if there are any unrecognized fields.
func unmarshalYAMLStrict(y []byte, o interface{}) error {
	jsonBytes, err := yaml.YAMLToJSON(y)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(jsonBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(o)
}

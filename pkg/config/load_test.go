package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadClusterBytes(t *testing.T) {
	clusterYaml := `
meta:
  name: test-cluster
  environment: stage
  description: |
    Test cluster
spec:
  bootstrapAddrs:
    - broker-01.example.com:9092
    - broker-02.example.com:9092
  clusterID: abc-123-xyz
  tls:
    enabled: true
    caCertPath: certs/ca.crt
  sasl:
    enabled: true
    mechanism: SCRAM-SHA-512
    username: client
    password: changeit
`

	config, err := LoadClusterBytes([]byte(clusterYaml))
	require.NoError(t, err)
	require.NoError(t, config.Validate())

	assert.Equal(t, "test-cluster", config.Meta.Name)
	assert.Equal(t, "stage", config.Meta.Environment)
	assert.Equal(
		t,
		[]string{
			"broker-01.example.com:9092",
			"broker-02.example.com:9092",
		},
		config.Spec.BootstrapAddrs,
	)
	assert.Equal(t, "abc-123-xyz", config.Spec.ClusterID)
	assert.True(t, config.Spec.TLS.Enabled)
	assert.Equal(t, "SCRAM-SHA-512", config.Spec.SASL.Mechanism)
}

func TestLoadClusterBytesUnknownFields(t *testing.T) {
	clusterYaml := `
meta:
  name: test-cluster
  environment: stage
spec:
  bootstrapAddrs:
    - broker-01.example.com:9092
  unknownField: value
`

	_, err := LoadClusterBytes([]byte(clusterYaml))
	assert.Error(t, err)
}

func TestLoadClusterFileExpandEnv(t *testing.T) {
	clusterYaml := `
meta:
  name: test-cluster
  environment: ${RFCTL_TEST_ENVIRONMENT}
spec:
  bootstrapAddrs:
    - broker-01.example.com:9092
`

	path := filepath.Join(t.TempDir(), "cluster.yaml")
	require.NoError(t, os.WriteFile(path, []byte(clusterYaml), 0644))

	os.Setenv("RFCTL_TEST_ENVIRONMENT", "production")
	defer os.Unsetenv("RFCTL_TEST_ENVIRONMENT")

	config, err := LoadClusterFile(path, true)
	require.NoError(t, err)
	assert.Equal(t, "production", config.Meta.Environment)

	config, err = LoadClusterFile(path, false)
	require.NoError(t, err)
	assert.Equal(t, "${RFCTL_TEST_ENVIRONMENT}", config.Meta.Environment)
}

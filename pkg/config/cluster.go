package config

import (
	"context"
	"errors"

	"github.com/efcloud/rfctl/pkg/admin"
	"github.com/hashicorp/go-multierror"
)

// ClusterConfig stores the information needed to connect to a cluster. These
// configs should reflect the reality of what's been set up externally;
// there's no way to "apply" these.
type ClusterConfig struct {
	Meta ClusterMeta `json:"meta"`
	Spec ClusterSpec `json:"spec"`
}

// ClusterMeta contains (mostly immutable) metadata about the cluster.
type ClusterMeta struct {
	Name        string `json:"name"`
	Environment string `json:"environment"`
	Description string `json:"description"`
}

// ClusterSpec contains the details necessary to communicate with a kafka
// cluster.
type ClusterSpec struct {
	// BootstrapAddrs is a list of one or more broker bootstrap addresses.
	// These can use IPs or DNS names.
	BootstrapAddrs []string `json:"bootstrapAddrs"`

	// ClusterID is the expected ID of the cluster. If set, it's used to
	// validate that the cluster we're communicating with is the right one
	// before any changes are made. If blank, this check isn't done.
	ClusterID string `json:"clusterID"`

	// TLS stores the TLS settings used when connecting to the cluster.
	TLS TLSSpec `json:"tls"`

	// SASL stores the SASL settings used when connecting to the cluster.
	SASL SASLSpec `json:"sasl"`
}

// TLSSpec stores the TLS-related settings for cluster access.
type TLSSpec struct {
	Enabled    bool   `json:"enabled"`
	CACertPath string `json:"caCertPath"`
	CertPath   string `json:"certPath"`
	KeyPath    string `json:"keyPath"`
	ServerName string `json:"serverName"`
	SkipVerify bool   `json:"skipVerify"`
}

// SASLSpec stores the SASL-related settings for cluster access.
type SASLSpec struct {
	Enabled           bool   `json:"enabled"`
	Mechanism         string `json:"mechanism"`
	Username          string `json:"username"`
	Password          string `json:"password"`
	SecretsManagerArn string `json:"secretsManagerArn"`
}

// AdminClientOpts contains options for creating an admin client from a
// cluster config.
type AdminClientOpts struct {
	ReadOnly                  bool
	UsernameOverride          string
	PasswordOverride          string
	SecretsManagerArnOverride string
}

// Validate evaluates whether the cluster config is valid.
func (c ClusterConfig) Validate() error {
	var err error

	if c.Meta.Name == "" {
		err = multierror.Append(err, errors.New("Name must be set"))
	}
	if c.Meta.Environment == "" {
		err = multierror.Append(err, errors.New("Environment must be set"))
	}
	if len(c.Spec.BootstrapAddrs) == 0 {
		err = multierror.Append(
			err,
			errors.New("At least one bootstrap broker address must be set"),
		)
	}

	if c.Spec.SASL.Enabled {
		if _, mechanismErr := admin.SASLNameToMechanism(c.Spec.SASL.Mechanism); mechanismErr != nil {
			err = multierror.Append(err, mechanismErr)
		}
	}

	return err
}

// NewAdminClient returns a new admin client using the parameters in the
// current cluster config.
func (c ClusterConfig) NewAdminClient(
	ctx context.Context,
	opts AdminClientOpts,
) (admin.Client, error) {
	var saslMechanism admin.SASLMechanism
	var err error

	if c.Spec.SASL.Enabled {
		saslMechanism, err = admin.SASLNameToMechanism(c.Spec.SASL.Mechanism)
		if err != nil {
			return nil, err
		}
	}

	username := c.Spec.SASL.Username
	if opts.UsernameOverride != "" {
		username = opts.UsernameOverride
	}
	password := c.Spec.SASL.Password
	if opts.PasswordOverride != "" {
		password = opts.PasswordOverride
	}
	secretsManagerArn := c.Spec.SASL.SecretsManagerArn
	if opts.SecretsManagerArnOverride != "" {
		secretsManagerArn = opts.SecretsManagerArnOverride
	}

	return admin.NewBrokerAdminClient(
		ctx,
		admin.BrokerAdminClientConfig{
			ConnectorConfig: admin.ConnectorConfig{
				BrokerAddr: c.Spec.BootstrapAddrs[0],
				TLS: admin.TLSConfig{
					Enabled:    c.Spec.TLS.Enabled,
					CACertPath: c.Spec.TLS.CACertPath,
					CertPath:   c.Spec.TLS.CertPath,
					KeyPath:    c.Spec.TLS.KeyPath,
					ServerName: c.Spec.TLS.ServerName,
					SkipVerify: c.Spec.TLS.SkipVerify,
				},
				SASL: admin.SASLConfig{
					Enabled:           c.Spec.SASL.Enabled,
					Mechanism:         saslMechanism,
					Username:          username,
					Password:          password,
					SecretsManagerArn: secretsManagerArn,
				},
			},
			ReadOnly: opts.ReadOnly,
		},
	)
}

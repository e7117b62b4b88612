package subcmd

import (
	"context"
	"errors"
	"os"

	"github.com/efcloud/rfctl/pkg/admin"
	"github.com/efcloud/rfctl/pkg/config"
	"github.com/hashicorp/go-multierror"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type sharedOptions struct {
	brokerAddr            string
	clusterConfig         string
	expandEnv             bool
	saslMechanism         string
	saslPassword          string
	saslUsername          string
	saslSecretsManagerArn string
	tlsCACert             string
	tlsCert               string
	tlsEnabled            bool
	tlsKey                string
	tlsServerName         string
	tlsSkipVerify         bool
}

func (s sharedOptions) validate() error {
	var err error

	if s.clusterConfig == "" && s.brokerAddr == "" {
		err = multierror.Append(
			err,
			errors.New("Must set either broker-addr or cluster-config"),
		)
	}

	if s.clusterConfig != "" {
		clusterConfig, clusterConfigErr := config.LoadClusterFile(s.clusterConfig, s.expandEnv)
		if clusterConfigErr != nil {
			err = multierror.Append(err, clusterConfigErr)
		} else if validateErr := clusterConfig.Validate(); validateErr != nil {
			err = multierror.Append(err, validateErr)
		}

		if s.brokerAddr != "" || s.tlsCACert != "" || s.tlsCert != "" ||
			s.tlsKey != "" || s.tlsServerName != "" || s.saslMechanism != "" {
			log.Warn("Broker and TLS flags are ignored when using cluster-config")
		}

		return err
	}

	useTLS := s.tlsEnabled || s.tlsCACert != "" || s.tlsCert != "" || s.tlsKey != ""
	useSASL := s.saslMechanism != "" || s.saslPassword != "" || s.saslUsername != "" ||
		s.saslSecretsManagerArn != ""

	if useTLS && s.tlsCACert == "" && s.tlsCert == "" && s.tlsKey == "" && !s.tlsEnabled {
		err = multierror.Append(
			err,
			errors.New("Must set tls-enabled or the TLS cert/key paths if using TLS"),
		)
	}

	if useSASL {
		saslMechanism, saslErr := admin.SASLNameToMechanism(s.saslMechanism)
		if saslErr != nil {
			err = multierror.Append(err, saslErr)
		}

		if saslMechanism == admin.SASLMechanismAWSMSKIAM &&
			(s.saslUsername != "" || s.saslPassword != "") {
			log.Warn("Username and password are ignored if using SASL AWS-MSK-IAM")
		}

		if (s.saslUsername != "" || s.saslPassword != "") && s.saslSecretsManagerArn != "" {
			err = multierror.Append(
				err,
				errors.New(
					"Cannot set both sasl-username or sasl-password and sasl-secrets-manager-arn",
				),
			)
		}
	}

	return err
}

func (s sharedOptions) getAdminClient(
	ctx context.Context,
	readOnly bool,
) (admin.Client, error) {
	if s.clusterConfig != "" {
		clusterConfig, err := config.LoadClusterFile(s.clusterConfig, s.expandEnv)
		if err != nil {
			return nil, err
		}
		return clusterConfig.NewAdminClient(
			ctx,
			config.AdminClientOpts{
				ReadOnly:                  readOnly,
				UsernameOverride:          s.saslUsername,
				PasswordOverride:          s.saslPassword,
				SecretsManagerArnOverride: s.saslSecretsManagerArn,
			},
		)
	}

	tlsEnabled := s.tlsEnabled || s.tlsCACert != "" || s.tlsCert != "" || s.tlsKey != ""
	saslEnabled := s.saslMechanism != "" || s.saslPassword != "" ||
		s.saslUsername != "" || s.saslSecretsManagerArn != ""

	var saslMechanism admin.SASLMechanism
	var err error

	if s.saslMechanism != "" {
		saslMechanism, err = admin.SASLNameToMechanism(s.saslMechanism)
		if err != nil {
			return nil, err
		}
	}

	return admin.NewBrokerAdminClient(
		ctx,
		admin.BrokerAdminClientConfig{
			ConnectorConfig: admin.ConnectorConfig{
				BrokerAddr: s.brokerAddr,
				TLS: admin.TLSConfig{
					Enabled:    tlsEnabled,
					CACertPath: s.tlsCACert,
					CertPath:   s.tlsCert,
					KeyPath:    s.tlsKey,
					ServerName: s.tlsServerName,
					SkipVerify: s.tlsSkipVerify,
				},
				SASL: admin.SASLConfig{
					Enabled:           saslEnabled,
					Mechanism:         saslMechanism,
					Username:          s.saslUsername,
					Password:          s.saslPassword,
					SecretsManagerArn: s.saslSecretsManagerArn,
				},
			},
			ReadOnly: readOnly,
		},
	)
}

// getExpectedClusterID returns the cluster ID pinned in the cluster config,
// if any. Used to guard write operations against pointing at the wrong
// cluster.
func (s sharedOptions) getExpectedClusterID() string {
	if s.clusterConfig == "" {
		return ""
	}

	clusterConfig, err := config.LoadClusterFile(s.clusterConfig, s.expandEnv)
	if err != nil {
		return ""
	}

	return clusterConfig.Spec.ClusterID
}

func addSharedFlags(cmd *cobra.Command, options *sharedOptions) {
	cmd.PersistentFlags().StringVarP(
		&options.brokerAddr,
		"broker-addr",
		"b",
		"",
		"Broker address",
	)
	cmd.PersistentFlags().StringVar(
		&options.clusterConfig,
		"cluster-config",
		os.Getenv("RFCTL_CLUSTER_CONFIG"),
		"Cluster config path",
	)
	cmd.PersistentFlags().BoolVar(
		&options.expandEnv,
		"expand-env",
		false,
		"Expand environment in cluster config",
	)
	cmd.PersistentFlags().StringVar(
		&options.saslMechanism,
		"sasl-mechanism",
		"",
		"SASL mechanism if using SASL (choices: AWS-MSK-IAM, PLAIN, SCRAM-SHA-256, or SCRAM-SHA-512)",
	)
	cmd.PersistentFlags().StringVar(
		&options.saslPassword,
		"sasl-password",
		os.Getenv("RFCTL_SASL_PASSWORD"),
		"SASL password if using SASL; will override value set in cluster config",
	)
	cmd.PersistentFlags().StringVar(
		&options.saslUsername,
		"sasl-username",
		os.Getenv("RFCTL_SASL_USERNAME"),
		"SASL username if using SASL; will override value set in cluster config",
	)
	cmd.PersistentFlags().StringVar(
		&options.saslSecretsManagerArn,
		"sasl-secrets-manager-arn",
		os.Getenv("RFCTL_SASL_SECRETS_MANAGER_ARN"),
		"AWS Secrets Manager ARN holding SASL credentials; will override value set in cluster config",
	)
	cmd.PersistentFlags().StringVar(
		&options.tlsCACert,
		"tls-ca-cert",
		"",
		"Path to client CA cert PEM file if using TLS",
	)
	cmd.PersistentFlags().StringVar(
		&options.tlsCert,
		"tls-cert",
		"",
		"Path to client cert PEM file if using TLS",
	)
	cmd.PersistentFlags().BoolVar(
		&options.tlsEnabled,
		"tls-enabled",
		false,
		"Use TLS for communication with brokers",
	)
	cmd.PersistentFlags().StringVar(
		&options.tlsKey,
		"tls-key",
		"",
		"Path to client private key PEM file if using TLS",
	)
	cmd.PersistentFlags().StringVar(
		&options.tlsServerName,
		"tls-server-name",
		"",
		"Server name to use for TLS cert verification",
	)
	cmd.PersistentFlags().BoolVar(
		&options.tlsSkipVerify,
		"tls-skip-verify",
		false,
		"Skip hostname verification when using TLS",
	)
}

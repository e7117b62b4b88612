package admin

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/aws_msk_iam_v2"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/segmentio/kafka-go/sasl/scram"
	log "github.com/sirupsen/logrus"
)

// SASLMechanism is the name of a SASL mechanism that will be used for client
// authentication.
type SASLMechanism string

const (
	SASLMechanismAWSMSKIAM   SASLMechanism = "aws-msk-iam"
	SASLMechanismPlain       SASLMechanism = "plain"
	SASLMechanismScramSHA256 SASLMechanism = "scram-sha-256"
	SASLMechanismScramSHA512 SASLMechanism = "scram-sha-512"
)

// ConnectorConfig contains the configuration used to construct a connector.
type ConnectorConfig struct {
	BrokerAddr string
	TLS        TLSConfig
	SASL       SASLConfig
}

// TLSConfig stores the TLS-related configuration for a connection.
type TLSConfig struct {
	Enabled    bool
	CertPath   string
	KeyPath    string
	CACertPath string
	ServerName string
	SkipVerify bool
}

// SASLConfig stores the SASL-related configuration for a connection.
type SASLConfig struct {
	Enabled           bool
	Mechanism         SASLMechanism
	Username          string
	Password          string
	SecretsManagerArn string
}

// Connector is a wrapper around the low-level, kafka-go client.
type Connector struct {
	Config      ConnectorConfig
	KafkaClient *kafka.Client
}

// NewConnector constructs a new Connector instance given the argument config.
func NewConnector(ctx context.Context, config ConnectorConfig) (*Connector, error) {
	connector := &Connector{
		Config: config,
	}

	var mechanismClient sasl.Mechanism
	var tlsConfig *tls.Config
	var err error

	if config.SASL.Enabled {
		username := config.SASL.Username
		password := config.SASL.Password

		if config.SASL.SecretsManagerArn != "" {
			username, password, err = saslCredentialsFromSecret(
				ctx,
				config.SASL.SecretsManagerArn,
			)
			if err != nil {
				return nil, err
			}
		}

		switch config.SASL.Mechanism {
		case SASLMechanismAWSMSKIAM:
			awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
			if err != nil {
				return nil, err
			}
			mechanismClient = aws_msk_iam_v2.NewMechanism(awsCfg)
		case SASLMechanismPlain:
			mechanismClient = plain.Mechanism{
				Username: username,
				Password: password,
			}
		case SASLMechanismScramSHA256:
			mechanismClient, err = scram.Mechanism(scram.SHA256, username, password)
			if err != nil {
				return nil, err
			}
		case SASLMechanismScramSHA512:
			mechanismClient, err = scram.Mechanism(scram.SHA512, username, password)
			if err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("Unrecognized SASL mechanism: %s", config.SASL.Mechanism)
		}
	}

	if config.TLS.Enabled {
		var certs []tls.Certificate
		var caCertPool *x509.CertPool

		if config.TLS.CertPath != "" && config.TLS.KeyPath != "" {
			log.Debugf(
				"Loading key pair from %s and %s",
				config.TLS.CertPath,
				config.TLS.KeyPath,
			)
			cert, err := tls.LoadX509KeyPair(config.TLS.CertPath, config.TLS.KeyPath)
			if err != nil {
				return nil, err
			}
			certs = append(certs, cert)
		}

		if config.TLS.CACertPath != "" {
			log.Debugf("Adding CA certs from %s", config.TLS.CACertPath)
			caCertPool = x509.NewCertPool()
			caCertContents, err := os.ReadFile(config.TLS.CACertPath)
			if err != nil {
				return nil, err
			}
			if ok := caCertPool.AppendCertsFromPEM(caCertContents); !ok {
				return nil, fmt.Errorf(
					"Could not append CA certs from %s",
					config.TLS.CACertPath,
				)
			}
		}

		tlsConfig = &tls.Config{
			Certificates:       certs,
			RootCAs:            caCertPool,
			InsecureSkipVerify: config.TLS.SkipVerify,
			ServerName:         config.TLS.ServerName,
		}
	}

	log.Debugf(
		"Connecting to cluster on address %s with TLS enabled=%v, SASL enabled=%v",
		config.BrokerAddr,
		config.TLS.Enabled,
		config.SASL.Enabled,
	)
	connector.KafkaClient = &kafka.Client{
		Addr: kafka.TCP(config.BrokerAddr),
		Transport: &kafka.Transport{
			SASL:        mechanismClient,
			TLS:         tlsConfig,
			MetadataTTL: 10 * time.Minute,
		},
	}

	return connector, nil
}

// SASLNameToMechanism converts the argument SASL mechanism name string to a
// valid instance of the SASLMechanism enum.
func SASLNameToMechanism(name string) (SASLMechanism, error) {
	normalizedName := strings.ReplaceAll(strings.ToLower(name), "_", "-")
	mechanism := SASLMechanism(normalizedName)

	switch mechanism {
	case SASLMechanismAWSMSKIAM,
		SASLMechanismPlain,
		SASLMechanismScramSHA256,
		SASLMechanismScramSHA512:
		return mechanism, nil
	default:
		return mechanism, fmt.Errorf(
			"SASL mechanism '%s' is not valid; choices are AWS-MSK-IAM, PLAIN, SCRAM-SHA-256, and SCRAM-SHA-512",
			mechanism,
		)
	}
}

type saslSecret struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// saslCredentialsFromSecret fetches a SASL username and password stored as a
// JSON object in AWS Secrets Manager.
func saslCredentialsFromSecret(ctx context.Context, arn string) (string, string, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return "", "", err
	}

	log.Debugf("Fetching SASL credentials from secret %s", arn)
	client := secretsmanager.NewFromConfig(awsCfg)
	value, err := client.GetSecretValue(
		ctx,
		&secretsmanager.GetSecretValueInput{
			SecretId: aws.String(arn),
		},
	)
	if err != nil {
		return "", "", err
	}

	secret := saslSecret{}
	if err := json.Unmarshal([]byte(aws.ToString(value.SecretString)), &secret); err != nil {
		return "", "", fmt.Errorf("Error parsing secret %s: %+v", arn, err)
	}
	if secret.Username == "" || secret.Password == "" {
		return "", "", fmt.Errorf("Secret %s is missing username or password", arn)
	}

	return secret.Username, secret.Password, nil
}

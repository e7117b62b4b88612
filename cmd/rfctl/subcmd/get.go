package subcmd

import (
	"context"

	"github.com/efcloud/rfctl/pkg/cli"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get [resource type]",
	Short: "get instances of a particular type",
	Long:  "Get instances of a particular type.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return getConfig.shared.validate()
	},
}

type getCmdConfig struct {
	full bool

	shared sharedOptions
}

var getConfig getCmdConfig

func init() {
	getCmd.PersistentFlags().BoolVar(
		&getConfig.full,
		"full",
		false,
		"Show full details instead of summary",
	)

	addSharedFlags(getCmd, &getConfig.shared)
	getCmd.AddCommand(
		brokersCmd(),
		partitionsCmd(),
		topicsCmd(),
	)
	RootCmd.AddCommand(getCmd)
}

func getCliRunnerAndCtx() (
	context.Context,
	*cli.CLIRunner,
	error,
) {
	ctx := context.Background()

	adminClient, err := getConfig.shared.getAdminClient(ctx, true)
	if err != nil {
		return nil, nil, err
	}

	cliRunner := cli.NewCLIRunner(adminClient, log.Infof, !noSpinner)
	return ctx, cliRunner, nil
}

func brokersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "brokers",
		Short: "Displays descriptions of each broker in the cluster.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cliRunner, err := getCliRunnerAndCtx()
			if err != nil {
				return err
			}
			return cliRunner.GetBrokers(ctx, getConfig.full)
		},
	}
}

func topicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "topics",
		Short: "Displays the names of all topics in the cluster.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cliRunner, err := getCliRunnerAndCtx()
			if err != nil {
				return err
			}
			return cliRunner.GetTopics(ctx)
		},
	}
}

func partitionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "partitions [topic]",
		Short: "Displays partition information for the specified topic.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cliRunner, err := getCliRunnerAndCtx()
			if err != nil {
				return err
			}
			return cliRunner.GetPartitions(ctx, args[0])
		},
	}
}

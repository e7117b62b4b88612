package subcmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/efcloud/rfctl/pkg/cli"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var alterCmd = &cobra.Command{
	Use:     "alter",
	Short:   "alter the replication factor of a topic",
	PreRunE: alterPreRun,
	RunE:    alterRun,
}

type alterCmdConfig struct {
	topic             string
	replicationFactor int
	dryRun            bool
	skipConfirm       bool

	shared sharedOptions
}

var alterConfig alterCmdConfig

func init() {
	alterCmd.Flags().StringVarP(
		&alterConfig.topic,
		"topic",
		"t",
		"",
		"Topic name",
	)
	alterCmd.Flags().IntVarP(
		&alterConfig.replicationFactor,
		"replication-factor",
		"r",
		0,
		"Desired replication factor",
	)
	alterCmd.Flags().BoolVar(
		&alterConfig.dryRun,
		"dry-run",
		false,
		"Show the new assignments without applying them",
	)
	alterCmd.Flags().BoolVar(
		&alterConfig.skipConfirm,
		"skip-confirm",
		false,
		"Skip the confirmation prompt before applying",
	)

	alterCmd.MarkFlagRequired("topic")
	alterCmd.MarkFlagRequired("replication-factor")

	addSharedFlags(alterCmd, &alterConfig.shared)
	RootCmd.AddCommand(alterCmd)
}

func alterPreRun(cmd *cobra.Command, args []string) error {
	return alterConfig.shared.validate()
}

func alterRun(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-sigChan
		cancel()
	}()

	adminClient, err := alterConfig.shared.getAdminClient(ctx, alterConfig.dryRun)
	if err != nil {
		return err
	}
	defer adminClient.Close()

	cliRunner := cli.NewCLIRunner(adminClient, log.Infof, !noSpinner)
	return cliRunner.AlterReplicationFactor(
		ctx,
		cli.AlterReplicationFactorConfig{
			Topic:             alterConfig.topic,
			ReplicationFactor: alterConfig.replicationFactor,
			ExpectedClusterID: alterConfig.shared.getExpectedClusterID(),
			DryRun:            alterConfig.dryRun,
			SkipConfirm:       alterConfig.skipConfirm,
		},
	)
}

package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/efcloud/rfctl/pkg/admin"
	"github.com/efcloud/rfctl/pkg/assigners"
	log "github.com/sirupsen/logrus"
)

const (
	spinnerCharSet  = 36
	spinnerDuration = 200 * time.Millisecond
)

// CLIRunner runs rfctl operations and prints the results to the console.
type CLIRunner struct {
	adminClient admin.Client
	printer     func(f string, a ...interface{})
	spinnerObj  *spinner.Spinner
}

// NewCLIRunner creates and returns a new CLIRunner instance.
func NewCLIRunner(
	adminClient admin.Client,
	printer func(f string, a ...interface{}),
	showSpinner bool,
) *CLIRunner {
	var spinnerObj *spinner.Spinner

	if showSpinner {
		spinnerObj = spinner.New(
			spinner.CharSets[spinnerCharSet],
			spinnerDuration,
			spinner.WithWriter(os.Stderr),
			spinner.WithHiddenCursor(true),
		)
		spinnerObj.Prefix = "Loading: "
	}

	return &CLIRunner{
		adminClient: adminClient,
		printer:     printer,
		spinnerObj:  spinnerObj,
	}
}

// GetBrokers fetches the brokers in the cluster and prints out a summary,
// including the distribution of brokers across racks.
func (c *CLIRunner) GetBrokers(ctx context.Context, full bool) error {
	c.startSpinner()

	brokers, err := c.adminClient.GetBrokers(ctx, nil)
	c.stopSpinner()
	if err != nil {
		return err
	}

	c.printer("Brokers:\n%s", admin.FormatBrokers(brokers, full))
	c.printer("Brokers per rack:\n%s", admin.FormatBrokersPerRack(brokers))

	return nil
}

// GetPartitions fetches the current partitions of a topic and prints out a
// summary of each one.
func (c *CLIRunner) GetPartitions(ctx context.Context, topic string) error {
	c.startSpinner()

	brokers, err := c.adminClient.GetBrokers(ctx, nil)
	if err != nil {
		c.stopSpinner()
		return err
	}
	topicInfo, err := c.adminClient.GetTopic(ctx, topic)
	c.stopSpinner()
	if err != nil {
		return err
	}

	c.printer(
		"Partitions for topic %s:\n%s",
		topic,
		admin.FormatTopicPartitions(topicInfo.Partitions, brokers),
	)

	return nil
}

// GetTopics fetches the names of all topics in the cluster and prints them
// out.
func (c *CLIRunner) GetTopics(ctx context.Context) error {
	c.startSpinner()

	topicNames, err := c.adminClient.GetTopicNames(ctx)
	c.stopSpinner()
	if err != nil {
		return err
	}

	sort.Strings(topicNames)
	c.printer("Topics:\n%s", strings.Join(topicNames, "\n"))

	return nil
}

// AlterReplicationFactorConfig contains the options for a single replication
// factor alteration.
type AlterReplicationFactorConfig struct {
	// Topic is the name of the topic to alter.
	Topic string

	// ReplicationFactor is the desired number of replicas per partition.
	ReplicationFactor int

	// ExpectedClusterID, if non-empty, is checked against the live cluster
	// before anything is changed.
	ExpectedClusterID string

	// DryRun computes and displays the new assignments without applying
	// them.
	DryRun bool

	// SkipConfirm bypasses the confirmation prompt before applying.
	SkipConfirm bool
}

// AlterReplicationFactor computes a rack-aware replica placement for every
// partition of a topic at the desired replication factor and, after
// confirmation, submits it to the cluster for execution.
func (c *CLIRunner) AlterReplicationFactor(
	ctx context.Context,
	config AlterReplicationFactorConfig,
) error {
	if config.ExpectedClusterID != "" {
		c.startSpinner()
		clusterID, err := c.adminClient.GetClusterID(ctx)
		c.stopSpinner()
		if err != nil {
			return err
		}
		if clusterID != config.ExpectedClusterID {
			return fmt.Errorf(
				"Cluster ID %s does not match expected value %s",
				clusterID,
				config.ExpectedClusterID,
			)
		}
	}

	c.startSpinner()
	brokers, err := c.adminClient.GetBrokers(ctx, nil)
	if err != nil {
		c.stopSpinner()
		return err
	}
	topicInfo, err := c.adminClient.GetTopic(ctx, config.Topic)
	c.stopSpinner()
	if err != nil {
		return err
	}

	// Replication factor validation happens here, before any partition
	// data is processed
	assigner, err := assigners.NewRoundRobinRackAssigner(
		brokers,
		config.ReplicationFactor,
	)
	if err != nil {
		return err
	}

	curr := topicInfo.ToAssignments()

	c.printer(
		"Current partitions for topic %s:\n%s",
		config.Topic,
		admin.FormatTopicPartitions(topicInfo.Partitions, brokers),
	)

	desired, err := assigner.Assign(config.Topic, curr)
	if err != nil {
		return err
	}
	if len(desired) == 0 {
		log.Infof("Topic %s has no partitions; nothing to do", config.Topic)
		return nil
	}

	c.printer(
		"Proposed assignments for replication factor %d:\n%s",
		config.ReplicationFactor,
		admin.FormatAssignmentDiffs(curr, desired, brokers),
	)

	ok, err := assigners.EvaluateAssignments(
		desired,
		brokers,
		config.ReplicationFactor,
	)
	if err != nil {
		return err
	}
	if !ok {
		log.Warnf(
			"Proposed assignments do not spread every partition across the expected number of racks; this can happen when racks have uneven broker counts",
		)
	}

	if config.DryRun {
		log.Infof("Skipping update because dryRun is set to true")
		return nil
	}

	confirm, err := Confirm("Apply the above assignments?", config.SkipConfirm)
	if err != nil {
		return err
	}
	if !confirm {
		return nil
	}

	c.startSpinner()
	err = c.adminClient.AssignPartitions(ctx, config.Topic, desired)
	c.stopSpinner()
	if err != nil {
		return err
	}

	c.printer(
		"Replication factor for topic %s updated to %d; the cluster will now converge toward the new assignments",
		config.Topic,
		config.ReplicationFactor,
	)

	return nil
}

func (c *CLIRunner) startSpinner() {
	if c.spinnerObj != nil {
		c.spinnerObj.Start()
	}
}

func (c *CLIRunner) stopSpinner() {
	if c.spinnerObj != nil && c.spinnerObj.Active() {
		c.spinnerObj.Stop()
	}
}

package admin

import (
	"context"
	"errors"
)

// ErrTopicDoesNotExist is returned by GetTopic if the argument topic can't
// be found in the cluster.
var ErrTopicDoesNotExist = errors.New("Topic does not exist")

// Client is an interface for interacting with a cluster for administrative
// tasks.
type Client interface {
	// GetClusterID gets the ID of the cluster.
	GetClusterID(ctx context.Context) (string, error)

	// GetBrokers gets information about all brokers in the cluster,
	// including their rack labels. If ids is non-empty, the results are
	// restricted to the argument broker IDs.
	GetBrokers(ctx context.Context, ids []int) ([]BrokerInfo, error)

	// GetTopic gets the details of a single topic in the cluster.
	GetTopic(ctx context.Context, name string) (TopicInfo, error)

	// GetTopicNames gets just the names of each topic in the cluster.
	GetTopicNames(ctx context.Context) ([]string, error)

	// AssignPartitions sets the replica broker IDs for one or more
	// partitions in a topic.
	AssignPartitions(
		ctx context.Context,
		topic string,
		assignments []PartitionAssignment,
	) error

	// Close closes the client.
	Close() error
}

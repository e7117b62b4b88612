package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"
)

// BrokerAdminClientConfig contains the configuration settings to construct
// a BrokerAdminClient instance.
type BrokerAdminClientConfig struct {
	ConnectorConfig
	ReadOnly bool
}

// BrokerAdminClient is a Client implementation that uses only broker APIs.
type BrokerAdminClient struct {
	config    BrokerAdminClientConfig
	connector *Connector
	client    *kafka.Client
}

var _ Client = (*BrokerAdminClient)(nil)

// NewBrokerAdminClient constructs a new BrokerAdminClient instance.
func NewBrokerAdminClient(
	ctx context.Context,
	config BrokerAdminClientConfig,
) (*BrokerAdminClient, error) {
	connector, err := NewConnector(ctx, config.ConnectorConfig)
	if err != nil {
		return nil, err
	}

	return &BrokerAdminClient{
		config:    config,
		connector: connector,
		client:    connector.KafkaClient,
	}, nil
}

// GetClusterID gets the ID of the cluster.
func (c *BrokerAdminClient) GetClusterID(ctx context.Context) (string, error) {
	resp, err := c.client.Metadata(ctx, &kafka.MetadataRequest{Topics: []string{}})
	if err != nil {
		return "", err
	}
	return resp.ClusterID, nil
}

// GetBrokers gets information about all brokers in the cluster. The returned
// slice preserves the order in which the cluster reported the brokers, which
// downstream rack grouping depends on for determinism within one snapshot.
func (c *BrokerAdminClient) GetBrokers(ctx context.Context, ids []int) (
	[]BrokerInfo,
	error,
) {
	metadataResp, err := c.client.Metadata(
		ctx,
		&kafka.MetadataRequest{
			Topics: []string{},
		},
	)
	if err != nil {
		return nil, err
	}

	idsMap := map[int]struct{}{}
	for _, id := range ids {
		idsMap[id] = struct{}{}
	}

	brokerInfos := []BrokerInfo{}
	brokerIDs := []int{}
	brokerIDIndices := map[int]int{}

	for _, broker := range metadataResp.Brokers {
		if _, ok := idsMap[broker.ID]; !ok && len(idsMap) > 0 {
			continue
		}

		brokerIDIndices[broker.ID] = len(brokerInfos)
		brokerInfos = append(
			brokerInfos,
			BrokerInfo{
				ID:   broker.ID,
				Host: broker.Host,
				Port: int32(broker.Port),
				Rack: broker.Rack,
			},
		)
		brokerIDs = append(brokerIDs, broker.ID)
	}

	configsResp, err := c.client.DescribeConfigs(
		ctx,
		kafka.DescribeConfigsRequest{
			Brokers: brokerIDs,
		},
	)
	if err != nil {
		return nil, err
	}

	for _, broker := range configsResp.Brokers {
		index := brokerIDIndices[broker.BrokerID]
		brokerInfos[index].Config = broker.Configs
	}

	return brokerInfos, nil
}

// GetTopic gets the details of a single topic in the cluster.
func (c *BrokerAdminClient) GetTopic(
	ctx context.Context,
	name string,
) (TopicInfo, error) {
	resp, err := c.client.Metadata(
		ctx,
		&kafka.MetadataRequest{
			Topics: []string{name},
		},
	)
	if err != nil {
		return TopicInfo{}, err
	}

	if len(resp.Topics) != 1 {
		return TopicInfo{},
			fmt.Errorf("Unexpected topic length in response: %d", len(resp.Topics))
	}
	topic := resp.Topics[0]
	if topic.Error != nil {
		if errors.Is(topic.Error, kafka.UnknownTopicOrPartition) {
			return TopicInfo{}, ErrTopicDoesNotExist
		}
		return TopicInfo{}, topic.Error
	}

	partitionInfos := []PartitionInfo{}

	for _, partition := range topic.Partitions {
		partitionInfos = append(
			partitionInfos,
			PartitionInfo{
				Topic:    topic.Name,
				ID:       partition.ID,
				Leader:   partition.Leader.ID,
				Replicas: brokerIDs(partition.Replicas),
				ISR:      brokerIDs(partition.Isr),
			},
		)
	}

	configsResp, err := c.client.DescribeConfigs(
		ctx,
		kafka.DescribeConfigsRequest{
			Topics: []string{name},
		},
	)
	if err != nil {
		return TopicInfo{}, err
	}
	if len(configsResp.Topics) != 1 {
		return TopicInfo{}, fmt.Errorf("No config info found for topic %s", name)
	}

	return TopicInfo{
		Name:       topic.Name,
		Partitions: partitionInfos,
		Config:     configsResp.Topics[0].Configs,
	}, nil
}

// GetTopicNames gets just the names of each topic in the cluster.
func (c *BrokerAdminClient) GetTopicNames(ctx context.Context) ([]string, error) {
	resp, err := c.client.Metadata(ctx, &kafka.MetadataRequest{})
	if err != nil {
		return nil, err
	}

	topicNames := []string{}
	for _, topic := range resp.Topics {
		topicNames = append(topicNames, topic.Name)
	}
	return topicNames, nil
}

// AssignPartitions sets the replica broker IDs for one or more partitions in
// a topic via the AlterPartitionReassignments API.
func (c *BrokerAdminClient) AssignPartitions(
	ctx context.Context,
	topic string,
	assignments []PartitionAssignment,
) error {
	if c.config.ReadOnly {
		return errors.New("Cannot assign partitions in read-only mode")
	}

	apiAssignments := []kafka.AlterPartitionReassignmentsRequestAssignment{}
	for _, assignment := range assignments {
		apiAssignments = append(
			apiAssignments,
			kafka.AlterPartitionReassignmentsRequestAssignment{
				PartitionID: assignment.ID,
				BrokerIDs:   assignment.Replicas,
			},
		)
	}

	log.Debugf(
		"Sending AlterPartitionReassignments request for topic %s: %+v",
		topic,
		apiAssignments,
	)
	resp, err := c.client.AlterPartitionReassignments(
		ctx,
		&kafka.AlterPartitionReassignmentsRequest{
			Topics: map[string][]kafka.AlterPartitionReassignmentsRequestAssignment{
				topic: apiAssignments,
			},
		},
	)
	if err != nil {
		return err
	}
	if resp.Error != nil {
		return resp.Error
	}

	var partitionErr error
	for _, results := range resp.Topics {
		for _, result := range results {
			if result.Error != nil {
				partitionErr = multierror.Append(
					partitionErr,
					fmt.Errorf(
						"Error reassigning partition %d: %+v",
						result.PartitionID,
						result.Error,
					),
				)
			}
		}
	}

	return partitionErr
}

// Close closes the client.
func (c *BrokerAdminClient) Close() error {
	return nil
}

func brokerIDs(brokers []kafka.Broker) []int {
	ids := []int{}
	for _, broker := range brokers {
		ids = append(ids, broker.ID)
	}
	return ids
}

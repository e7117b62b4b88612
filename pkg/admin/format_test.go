package admin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBrokers(t *testing.T) {
	brokers := []BrokerInfo{
		{
			ID:   1,
			Host: "broker1",
			Port: 9092,
			Rack: "rack1",
			Config: map[string]string{
				"leader.replication.throttled.rate": "3000",
			},
		},
		{
			ID:   2,
			Host: "broker2",
			Port: 9092,
			Rack: "rack2",
		},
	}

	summary := FormatBrokers(brokers, false)
	assert.Contains(t, summary, "broker1")
	assert.Contains(t, summary, "rack2")
	assert.NotContains(t, summary, "leader.replication.throttled.rate")

	full := FormatBrokers(brokers, true)
	assert.Contains(t, full, "leader.replication.throttled.rate=3000")
}

func TestFormatBrokersPerRack(t *testing.T) {
	brokers := []BrokerInfo{
		{ID: 1, Rack: "rack1"},
		{ID: 2, Rack: "rack1"},
		{ID: 3, Rack: "rack2"},
	}

	summary := FormatBrokersPerRack(brokers)
	assert.Contains(t, summary, "rack1")
	assert.Contains(t, summary, "rack2")
}

func TestFormatTopicPartitions(t *testing.T) {
	brokers := []BrokerInfo{
		{ID: 1, Rack: "rack1"},
		{ID: 2, Rack: "rack2"},
	}
	partitions := []PartitionInfo{
		{
			Topic:    "test-topic",
			ID:       0,
			Leader:   1,
			Replicas: []int{1, 2},
			ISR:      []int{1, 2},
		},
		{
			Topic:    "test-topic",
			ID:       1,
			Leader:   2,
			Replicas: []int{2, 1},
			ISR:      []int{2},
		},
	}

	summary := FormatTopicPartitions(partitions, brokers)
	assert.Contains(t, summary, "OK")
	assert.Contains(t, summary, "Out-of-sync")
}

func TestFormatAssignmentDiffs(t *testing.T) {
	brokers := []BrokerInfo{
		{ID: 1, Rack: "rack1"},
		{ID: 2, Rack: "rack2"},
		{ID: 3, Rack: "rack1"},
	}
	curr := ReplicasToAssignments(
		[][]int{
			{1},
			{2},
		},
	)
	desired := ReplicasToAssignments(
		[][]int{
			{1, 2},
			{2, 3},
		},
	)

	summary := FormatAssignmentDiffs(curr, desired, brokers)
	assert.Contains(t, summary, "1 (rack1)")
	assert.Contains(t, summary, "3 (rack1)")
	assert.Contains(t, summary, "Y")
}

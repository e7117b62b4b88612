package assigners

import (
	"fmt"

	"github.com/efcloud/rfctl/pkg/admin"
)

// EvaluateAssignments determines whether the given assignments are a valid
// placement at the argument replication factor: every partition has exactly
// replicationFactor replicas, all replicas reference known brokers, and no
// broker appears twice in one partition.
//
// When every rack holds the same number of brokers, the interleaved ordering
// alternates racks strictly, so the evaluation additionally requires each
// partition to span min(replicationFactor, number of racks) distinct racks.
// With uneven racks the tail of the ordering can repeat racks, so no exact
// diversity bound applies and only the structural checks are made.
func EvaluateAssignments(
	assignments []admin.PartitionAssignment,
	brokers []admin.BrokerInfo,
	replicationFactor int,
) (bool, error) {
	if err := admin.CheckAssignments(assignments); err != nil {
		return false, err
	}

	brokerRacks := admin.BrokerRacks(brokers)

	for _, assignment := range assignments {
		if len(assignment.Replicas) != replicationFactor {
			return false, nil
		}

		for _, replica := range assignment.Replicas {
			if _, ok := brokerRacks[replica]; !ok {
				return false, fmt.Errorf("Unrecognized broker ID: %d", replica)
			}
		}
	}

	if !racksBalanced(brokers) {
		return true, nil
	}

	numRacks := len(admin.DistinctRacks(brokers))
	expectedRacks := replicationFactor
	if numRacks < expectedRacks {
		expectedRacks = numRacks
	}

	for _, assignment := range assignments {
		if len(assignment.DistinctRacks(brokerRacks)) != expectedRacks {
			return false, nil
		}
	}

	return true, nil
}

func racksBalanced(brokers []admin.BrokerInfo) bool {
	counts := admin.BrokerCountsPerRack(brokers)

	var size int
	first := true

	for _, count := range counts {
		if first {
			size = count
			first = false
		} else if count != size {
			return false
		}
	}

	return true
}

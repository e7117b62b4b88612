package assigners

import (
	"fmt"

	"github.com/efcloud/rfctl/pkg/admin"
)

// RoundRobinRackAssigner is an Assigner that places the replicas of each
// partition by rotating through a rack-alternating ordering of the cluster's
// brokers. The algorithm is:
//
//  1. Group the brokers by rack, in the order racks first appear in the
//     broker list.
//  2. Interleave the rack groups round-robin into a single broker ordering;
//     consecutive positions belong to different racks as long as at least
//     two racks still have unexhausted brokers at that round.
//  3. For partition p, take replicationFactor consecutive entries from the
//     ordering starting at offset p, wrapping around the end.
//
// Every partition draws from the same global ordering, phase-shifted by its
// own index, so leaders spread across the whole cluster as the partition
// index grows. The assigner ignores the current replica placement entirely;
// it does not attempt to minimize data movement.
type RoundRobinRackAssigner struct {
	brokers                []admin.BrokerInfo
	brokerRacks            map[int]string
	rackAlternatingBrokers []int
	replicationFactor      int
}

var _ Assigner = (*RoundRobinRackAssigner)(nil)

// NewRoundRobinRackAssigner creates and returns a RoundRobinRackAssigner
// instance. The replication factor is validated here, before any partition
// data is seen; the per-partition rotation below assumes it is valid.
func NewRoundRobinRackAssigner(
	brokers []admin.BrokerInfo,
	replicationFactor int,
) (*RoundRobinRackAssigner, error) {
	if replicationFactor <= 0 {
		return nil, ConfigurationError{
			Message: fmt.Sprintf(
				"replication factor must be positive; got %d",
				replicationFactor,
			),
		}
	}
	if replicationFactor > len(brokers) {
		return nil, ConfigurationError{
			Message: fmt.Sprintf(
				"replication factor cannot exceed broker count (%d > %d)",
				replicationFactor,
				len(brokers),
			),
		}
	}

	return &RoundRobinRackAssigner{
		brokers:                brokers,
		brokerRacks:            admin.BrokerRacks(brokers),
		rackAlternatingBrokers: interleave(admin.BrokersPerRackOrdered(brokers)),
		replicationFactor:      replicationFactor,
	}, nil
}

// Assign returns a new partition assignment according to the assigner-specific
// logic. A topic with zero partitions yields an empty result. No partial
// results are returned: the current assignments are checked against the
// broker snapshot up front, and entries are only produced once all checks
// pass.
func (a *RoundRobinRackAssigner) Assign(
	topic string,
	curr []admin.PartitionAssignment,
) ([]admin.PartitionAssignment, error) {
	if len(curr) == 0 {
		return []admin.PartitionAssignment{}, nil
	}

	if err := admin.CheckAssignments(curr); err != nil {
		return nil, TopologyMismatchError{Message: err.Error()}
	}
	for _, assignment := range curr {
		for _, replica := range assignment.Replicas {
			if _, ok := a.brokerRacks[replica]; !ok {
				return nil, TopologyMismatchError{
					Message: fmt.Sprintf(
						"partition %d references broker %d, which is not in the cluster",
						assignment.ID,
						replica,
					),
				}
			}
		}
	}

	desired := []admin.PartitionAssignment{}

	for _, assignment := range curr {
		desired = append(
			desired,
			admin.PartitionAssignment{
				ID: assignment.ID,
				Replicas: rotation(
					a.rackAlternatingBrokers,
					assignment.ID,
					a.replicationFactor,
				),
			},
		)
	}

	return desired, nil
}

// interleave merges the argument groups into a single flat slice by
// round-robin selection: round i takes the i-th element of every group that
// still has an i-th element, in group order. The result is a permutation of
// the input elements. A single group degenerates to an in-order pass-through.
func interleave(groups [][]int) []int {
	maxSize := 0
	for _, group := range groups {
		if len(group) > maxSize {
			maxSize = len(group)
		}
	}

	merged := []int{}

	for i := 0; i < maxSize; i++ {
		for _, group := range groups {
			if i < len(group) {
				merged = append(merged, group[i])
			}
		}
	}

	return merged
}

// rotation returns take elements of input starting at position, wrapping
// around the end of the slice. The result has no repeats as long as
// take <= len(input); callers are responsible for that bound. rotation is
// periodic in position with period len(input).
func rotation(input []int, position int, take int) []int {
	output := []int{}

	for i := position; i < position+take; i++ {
		output = append(output, input[i%len(input)])
	}

	return output
}

package assigners

import (
	"testing"

	"github.com/efcloud/rfctl/pkg/admin"
	"github.com/efcloud/rfctl/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundRobinRackAssigner(t *testing.T) {
	brokers := []admin.BrokerInfo{
		{ID: 1, Rack: "rackA"},
		{ID: 2, Rack: "rackA"},
		{ID: 3, Rack: "rackB"},
		{ID: 4, Rack: "rackB"},
	}
	assigner, err := NewRoundRobinRackAssigner(brokers, 2)
	require.NoError(t, err)

	checker := func(result []admin.PartitionAssignment) bool {
		ok, _ := EvaluateAssignments(result, brokers, 2)
		return ok
	}

	testCases := []assignerTestCase{
		{
			description: "Two racks, two brokers each",
			curr: [][]int{
				{1},
				{2},
				{3},
			},
			// Interleaved ordering is [1, 3, 2, 4]; each partition takes
			// a window starting at its own index
			expected: [][]int{
				{1, 3},
				{3, 2},
				{2, 4},
			},
			checker: checker,
		},
		{
			description: "Window wraps around the end of the ordering",
			curr: [][]int{
				{1},
				{2},
				{3},
				{4},
				{1},
			},
			expected: [][]int{
				{1, 3},
				{3, 2},
				{2, 4},
				{4, 1},
				{1, 3},
			},
			checker: checker,
		},
		{
			description: "Current replica counts are ignored",
			curr: [][]int{
				{1, 2, 3},
				{2, 3, 4},
			},
			expected: [][]int{
				{1, 3},
				{3, 2},
			},
			checker: checker,
		},
		{
			description: "Partition references broker outside the cluster",
			curr: [][]int{
				{1, 9},
			},
			errType: TopologyMismatchError{},
		},
	}

	for _, testCase := range testCases {
		testCase.evaluate(t, assigner)
	}
}

func TestRoundRobinRackAssignerSingleRack(t *testing.T) {
	brokers := []admin.BrokerInfo{
		{ID: 1, Rack: "rackX"},
		{ID: 2, Rack: "rackX"},
		{ID: 3, Rack: "rackX"},
	}
	assigner, err := NewRoundRobinRackAssigner(brokers, 2)
	require.NoError(t, err)

	testCases := []assignerTestCase{
		{
			// No alternation possible; the ordering degenerates to
			// input order but stays deterministic
			description: "Single rack",
			curr: [][]int{
				{1},
				{2},
				{3},
			},
			expected: [][]int{
				{1, 2},
				{2, 3},
				{3, 1},
			},
		},
	}

	for _, testCase := range testCases {
		testCase.evaluate(t, assigner)
	}
}

func TestRoundRobinRackAssignerUnlabeledRacks(t *testing.T) {
	// Brokers without a rack label form a single group of their own
	brokers := []admin.BrokerInfo{
		{ID: 1, Rack: ""},
		{ID: 2, Rack: "rackA"},
		{ID: 3, Rack: ""},
	}
	assigner, err := NewRoundRobinRackAssigner(brokers, 2)
	require.NoError(t, err)

	testCases := []assignerTestCase{
		{
			description: "Empty rack labels grouped together",
			curr: [][]int{
				{1},
				{2},
			},
			// Groups are ["":{1,3}, "rackA":{2}], interleaved to [1, 2, 3]
			expected: [][]int{
				{1, 2},
				{2, 3},
			},
		},
	}

	for _, testCase := range testCases {
		testCase.evaluate(t, assigner)
	}
}

func TestRoundRobinRackAssignerZeroPartitions(t *testing.T) {
	assigner, err := NewRoundRobinRackAssigner(testBrokers(6, 3), 2)
	require.NoError(t, err)

	desired, err := assigner.Assign("test-topic", []admin.PartitionAssignment{})
	require.NoError(t, err)
	assert.Equal(t, []admin.PartitionAssignment{}, desired)
}

func TestRoundRobinRackAssignerReplicationFactorValidation(t *testing.T) {
	brokers := testBrokers(6, 3)

	type testCase struct {
		description       string
		replicationFactor int
		expectErr         bool
	}

	testCases := []testCase{
		{
			description:       "Replication factor less than broker count",
			replicationFactor: 3,
		},
		{
			description:       "Replication factor equal to broker count",
			replicationFactor: 6,
		},
		{
			description:       "Replication factor exceeds broker count",
			replicationFactor: 7,
			expectErr:         true,
		},
		{
			description:       "Zero replication factor",
			replicationFactor: 0,
			expectErr:         true,
		},
		{
			description:       "Negative replication factor",
			replicationFactor: -1,
			expectErr:         true,
		},
	}

	for _, testCase := range testCases {
		assigner, err := NewRoundRobinRackAssigner(brokers, testCase.replicationFactor)
		if testCase.expectErr {
			require.Error(t, err, testCase.description)
			assert.IsType(t, ConfigurationError{}, err, testCase.description)
			assert.Nil(t, assigner, testCase.description)
		} else {
			require.NoError(t, err, testCase.description)
		}
	}
}

func TestRoundRobinRackAssignerEmptyBrokers(t *testing.T) {
	_, err := NewRoundRobinRackAssigner([]admin.BrokerInfo{}, 1)
	require.Error(t, err)
	assert.IsType(t, ConfigurationError{}, err)
}

func TestRoundRobinRackAssignerFullReplication(t *testing.T) {
	brokers := testBrokers(6, 3)
	assigner, err := NewRoundRobinRackAssigner(brokers, 6)
	require.NoError(t, err)

	desired, err := assigner.Assign(
		"test-topic",
		admin.ReplicasToAssignments([][]int{{1}, {2}, {3}}),
	)
	require.NoError(t, err)

	// Every partition uses all brokers, just phase-shifted
	for _, assignment := range desired {
		assert.True(
			t,
			util.SameElements(assignment.Replicas, admin.BrokerIDs(brokers)),
		)
	}
}

func TestInterleave(t *testing.T) {
	type testCase struct {
		description string
		groups      [][]int
		expected    []int
	}

	testCases := []testCase{
		{
			description: "Equal-sized groups",
			groups:      [][]int{{1, 2}, {3, 4}},
			expected:    []int{1, 3, 2, 4},
		},
		{
			description: "Uneven groups",
			groups:      [][]int{{1, 2, 3}, {4}, {5, 6}},
			expected:    []int{1, 4, 5, 2, 6, 3},
		},
		{
			description: "Single group passes through",
			groups:      [][]int{{1, 2, 3}},
			expected:    []int{1, 2, 3},
		},
		{
			description: "No groups",
			groups:      [][]int{},
			expected:    []int{},
		},
		{
			description: "Empty group skipped",
			groups:      [][]int{{}, {1, 2}},
			expected:    []int{1, 2},
		},
	}

	for _, testCase := range testCases {
		assert.Equal(
			t,
			testCase.expected,
			interleave(testCase.groups),
			testCase.description,
		)
	}
}

func TestInterleavePermutation(t *testing.T) {
	groups := [][]int{{1, 5, 9}, {2, 6}, {3, 7, 10, 11}, {4}}

	flattened := []int{}
	for _, group := range groups {
		flattened = append(flattened, group...)
	}

	merged := interleave(groups)
	assert.True(t, util.SameElements(flattened, merged))
}

func TestInterleaveRackAlternation(t *testing.T) {
	// With at least two unexhausted groups, consecutive entries must come
	// from different groups
	brokers := testBrokers(9, 3)
	groups := admin.BrokersPerRackOrdered(brokers)
	brokerRacks := admin.BrokerRacks(brokers)

	merged := interleave(groups)
	require.Len(t, merged, len(brokers))

	for i := 1; i < len(merged); i++ {
		assert.NotEqual(
			t,
			brokerRacks[merged[i-1]],
			brokerRacks[merged[i]],
			"consecutive brokers %d and %d share a rack",
			merged[i-1],
			merged[i],
		)
	}
}

func TestRotation(t *testing.T) {
	input := []int{10, 20, 30, 40, 50}

	type testCase struct {
		description string
		position    int
		take        int
		expected    []int
	}

	testCases := []testCase{
		{
			description: "Window at start",
			position:    0,
			take:        3,
			expected:    []int{10, 20, 30},
		},
		{
			description: "Window wraps",
			position:    3,
			take:        3,
			expected:    []int{40, 50, 10},
		},
		{
			description: "Full window",
			position:    2,
			take:        5,
			expected:    []int{30, 40, 50, 10, 20},
		},
		{
			description: "Position beyond length wraps",
			position:    7,
			take:        2,
			expected:    []int{30, 40},
		},
	}

	for _, testCase := range testCases {
		assert.Equal(
			t,
			testCase.expected,
			rotation(input, testCase.position, testCase.take),
			testCase.description,
		)
	}
}

func TestRotationProperties(t *testing.T) {
	input := []int{1, 2, 3, 4, 5, 6, 7}

	for position := 0; position < 2*len(input); position++ {
		for take := 1; take <= len(input); take++ {
			window := rotation(input, position, take)
			require.Len(t, window, take)

			// No duplicates as long as take <= len(input)
			seen := map[int]struct{}{}
			for _, value := range window {
				_, ok := seen[value]
				require.False(t, ok)
				seen[value] = struct{}{}
			}

			// Periodic in position with period len(input)
			assert.Equal(t, window, rotation(input, position+len(input), take))
		}
	}
}

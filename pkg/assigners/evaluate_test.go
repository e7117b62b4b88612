package assigners

import (
	"testing"

	"github.com/efcloud/rfctl/pkg/admin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateAssignments(t *testing.T) {
	brokers := testBrokers(6, 3)

	type testCase struct {
		description       string
		replicas          [][]int
		replicationFactor int
		expected          bool
		expectErr         bool
	}

	testCases := []testCase{
		{
			description: "Valid rack-diverse assignments",
			replicas: [][]int{
				{1, 2},
				{2, 3},
			},
			replicationFactor: 2,
			expected:          true,
		},
		{
			description: "Wrong replica count",
			replicas: [][]int{
				{1, 2, 3},
			},
			replicationFactor: 2,
			expected:          false,
		},
		{
			description: "Replicas share a rack",
			replicas: [][]int{
				{1, 4},
			},
			replicationFactor: 2,
			expected:          false,
		},
		{
			description: "Replication factor above rack count caps expected racks",
			replicas: [][]int{
				{1, 2, 3, 4},
			},
			replicationFactor: 4,
			expected:          true,
		},
		{
			description: "Unknown broker",
			replicas: [][]int{
				{1, 9},
			},
			replicationFactor: 2,
			expectErr:         true,
		},
		{
			description: "Repeated broker in partition",
			replicas: [][]int{
				{1, 1},
			},
			replicationFactor: 2,
			expectErr:         true,
		},
	}

	for _, testCase := range testCases {
		result, err := EvaluateAssignments(
			admin.ReplicasToAssignments(testCase.replicas),
			brokers,
			testCase.replicationFactor,
		)
		if testCase.expectErr {
			require.Error(t, err, testCase.description)
		} else {
			require.NoError(t, err, testCase.description)
			assert.Equal(t, testCase.expected, result, testCase.description)
		}
	}
}

func TestEvaluateAssignmentsUnevenRacks(t *testing.T) {
	// Three brokers in rackA, one in rackB; the tail of the alternating
	// ordering repeats rackA, so diversity isn't enforced
	brokers := []admin.BrokerInfo{
		{ID: 1, Rack: "rackA"},
		{ID: 2, Rack: "rackA"},
		{ID: 3, Rack: "rackA"},
		{ID: 4, Rack: "rackB"},
	}

	result, err := EvaluateAssignments(
		admin.ReplicasToAssignments([][]int{{2, 3}}),
		brokers,
		2,
	)
	require.NoError(t, err)
	assert.True(t, result)
}

package admin

import (
	"bytes"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"

	"github.com/efcloud/rfctl/pkg/util"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// FormatBrokers creates a pretty table from a list of brokers.
func FormatBrokers(brokers []BrokerInfo, full bool) string {
	buf := &bytes.Buffer{}

	headers := []string{
		"ID",
		"Host",
		"Port",
		"Rack",
	}

	if full {
		headers = append(headers, "Config")
	}

	table := tablewriter.NewWriter(buf)
	table.SetHeader(headers)
	table.SetAutoWrapText(false)
	table.SetColumnAlignment(
		[]int{
			tablewriter.ALIGN_LEFT,
			tablewriter.ALIGN_LEFT,
			tablewriter.ALIGN_LEFT,
			tablewriter.ALIGN_LEFT,
			tablewriter.ALIGN_LEFT,
		},
	)
	table.SetBorders(
		tablewriter.Border{
			Left:   false,
			Top:    true,
			Right:  false,
			Bottom: true,
		},
	)

	for _, broker := range brokers {
		row := []string{
			fmt.Sprintf("%d", broker.ID),
			broker.Host,
			fmt.Sprintf("%d", broker.Port),
			broker.Rack,
		}

		if full {
			row = append(row, prettyConfig(broker.Config))
		}

		table.Append(row)
	}

	table.Render()
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}

// FormatBrokersPerRack creates a pretty table that shows the number of
// brokers in each rack.
func FormatBrokersPerRack(brokers []BrokerInfo) string {
	buf := &bytes.Buffer{}

	table := tablewriter.NewWriter(buf)
	table.SetHeader(
		[]string{
			"Rack",
			"Num Brokers",
		},
	)
	table.SetAutoWrapText(false)
	table.SetColumnAlignment(
		[]int{
			tablewriter.ALIGN_LEFT,
			tablewriter.ALIGN_LEFT,
		},
	)
	table.SetBorders(
		tablewriter.Border{
			Left:   false,
			Top:    true,
			Right:  false,
			Bottom: true,
		},
	)

	brokerCountsPerRack := BrokerCountsPerRack(brokers)
	racks := DistinctRacks(brokers)

	for _, rack := range racks {
		table.Append(
			[]string{
				rack,
				fmt.Sprintf("%d", brokerCountsPerRack[rack]),
			},
		)
	}

	table.Render()
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}

// FormatTopicPartitions creates a pretty table with information on all of the
// partitions for a topic.
func FormatTopicPartitions(partitions []PartitionInfo, brokers []BrokerInfo) string {
	buf := &bytes.Buffer{}

	table := tablewriter.NewWriter(buf)
	table.SetHeader(
		[]string{
			"ID",
			"Leader",
			"Replicas",
			"ISR",
			"Distinct Racks",
			"Racks",
			"Status",
		},
	)
	table.SetAutoWrapText(false)
	table.SetColumnAlignment(
		[]int{
			tablewriter.ALIGN_LEFT,
			tablewriter.ALIGN_LEFT,
			tablewriter.ALIGN_LEFT,
			tablewriter.ALIGN_LEFT,
			tablewriter.ALIGN_LEFT,
			tablewriter.ALIGN_LEFT,
			tablewriter.ALIGN_LEFT,
		},
	)
	table.SetBorders(
		tablewriter.Border{
			Left:   false,
			Top:    true,
			Right:  false,
			Bottom: true,
		},
	)

	brokerRacks := BrokerRacks(brokers)
	maxBrokerWidth := maxValueToMaxWidth(maxBrokerID(brokers))

	for _, partition := range partitions {
		racks, _ := partition.Racks(brokerRacks)
		rackCount, _ := partition.NumRacks(brokerRacks)

		inSync := util.SameElements(partition.Replicas, partition.ISR)

		var correctLeader bool
		if len(partition.Replicas) > 0 {
			correctLeader = partition.Leader == partition.Replicas[0]
		}

		statusPrinter := fmt.Sprintf
		if util.InTerminal() && !inSync {
			statusPrinter = color.New(color.FgRed).SprintfFunc()
		} else if util.InTerminal() && !correctLeader {
			statusPrinter = color.New(color.FgCyan).SprintfFunc()
		}

		var statusStr string
		if !inSync {
			statusStr = "Out-of-sync"
		} else if !correctLeader {
			statusStr = "Wrong leader"
		} else {
			statusStr = "OK"
		}

		table.Append(
			[]string{
				fmt.Sprintf("%d", partition.ID),
				fmt.Sprintf("%d", partition.Leader),
				intSliceString(partition.Replicas, maxBrokerWidth),
				intSliceString(partition.ISR, maxBrokerWidth),
				fmt.Sprintf("%d", rackCount),
				fmt.Sprintf("%+v", racks),
				statusPrinter("%s", statusStr),
			},
		)
	}

	table.Render()
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}

// FormatAssignmentDiffs creates a pretty table that shows the changes in each
// partition between the current and proposed assignments. Additions are shown
// in red and in-partition moves in cyan when running in a terminal.
func FormatAssignmentDiffs(
	curr []PartitionAssignment,
	desired []PartitionAssignment,
	brokers []BrokerInfo,
) string {
	buf := &bytes.Buffer{}

	table := tablewriter.NewWriter(buf)
	table.SetHeader(
		[]string{
			"Partition",
			"Curr Replicas",
			"Proposed Replicas",
			"Diff?",
			"New Leader?",
		},
	)
	table.SetAutoWrapText(false)
	table.SetColumnAlignment(
		[]int{
			tablewriter.ALIGN_LEFT,
			tablewriter.ALIGN_LEFT,
			tablewriter.ALIGN_LEFT,
			tablewriter.ALIGN_LEFT,
			tablewriter.ALIGN_LEFT,
		},
	)
	table.SetBorders(
		tablewriter.Border{
			Left:   false,
			Top:    true,
			Right:  false,
			Bottom: true,
		},
	)

	diffs := AssignmentDiffs(curr, desired)

	brokerRacks := BrokerRacks(brokers)
	maxWidth := maxValueToMaxWidth(maxBrokerID(brokers))

	for _, diff := range diffs {
		var diffStr string
		var newLeaderStr string

		if !reflect.DeepEqual(diff.Old.Replicas, diff.New.Replicas) {
			diffStr = "Y"
		}
		if len(diff.Old.Replicas) > 0 &&
			len(diff.New.Replicas) > 0 &&
			diff.Old.Replicas[0] != diff.New.Replicas[0] {
			newLeaderStr = "Y"
		}

		table.Append(
			[]string{
				fmt.Sprintf("%d", diff.PartitionID),
				assignmentRacksStr(diff.Old, brokerRacks, maxWidth),
				assignmentRacksDiffStr(diff.Old, diff.New, brokerRacks, maxWidth),
				diffStr,
				newLeaderStr,
			},
		)
	}

	table.Render()
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}

func prettyConfig(config map[string]string) string {
	rows := []string{}

	for key, value := range config {
		rows = append(rows, fmt.Sprintf("%s=%s", key, value))
	}

	sort.Slice(rows, func(a, b int) bool {
		return rows[a] < rows[b]
	})

	return strings.Join(rows, "\n")
}

func assignmentRacksStr(
	assignment PartitionAssignment,
	brokerRacks map[int]string,
	maxWidth int,
) string {
	if len(assignment.Replicas) == 0 {
		return ""
	}

	elements := []string{}

	for _, replica := range assignment.Replicas {
		elements = append(
			elements,
			fmt.Sprintf("%*d (%s)", maxWidth, replica, brokerRacks[replica]),
		)
	}

	return strings.Join(elements, ", ")
}

func assignmentRacksDiffStr(
	old PartitionAssignment,
	new PartitionAssignment,
	brokerRacks map[int]string,
	maxWidth int,
) string {
	if len(new.Replicas) == 0 {
		return ""
	}

	if !util.InTerminal() {
		return assignmentRacksStr(new, brokerRacks, maxWidth)
	}

	elements := []string{}

	added := color.New(color.FgRed).SprintfFunc()
	moved := color.New(color.FgCyan).SprintfFunc()

	for r, replica := range new.Replicas {
		var element string

		if r < len(old.Replicas) && replica == old.Replicas[r] {
			element = fmt.Sprintf("%*d (%s)", maxWidth, replica, brokerRacks[replica])
		} else if old.Index(replica) != -1 {
			element = moved("%*d (%s)", maxWidth, replica, brokerRacks[replica])
		} else {
			element = added("%*d (%s)", maxWidth, replica, brokerRacks[replica])
		}

		elements = append(elements, element)
	}

	return strings.Join(elements, ", ")
}

func intSliceString(values []int, maxWidth int) string {
	strValues := []string{}

	for _, value := range values {
		strValues = append(strValues, fmt.Sprintf("%*d", maxWidth, value))
	}

	return fmt.Sprintf("%+v", strValues)
}

func maxBrokerID(brokers []BrokerInfo) int {
	maxID := 1

	for _, broker := range brokers {
		if broker.ID > maxID {
			maxID = broker.ID
		}
	}

	return maxID
}

func maxValueToMaxWidth(maxValue int) int {
	return int(math.Log10(float64(maxValue))) + 1
}

package assigners

// ConfigurationError indicates that the requested replication factor is
// incompatible with the cluster topology, e.g. it is non-positive or larger
// than the number of brokers. It is always returned before any partition
// data is touched.
type ConfigurationError struct {
	Message string
}

func (e ConfigurationError) Error() string {
	return e.Message
}

// TopologyMismatchError indicates that the current partition assignments are
// inconsistent with the supplied broker snapshot, e.g. a partition references
// a broker that isn't in the cluster. This shouldn't happen if brokers and
// partitions come from one consistent snapshot, but it's checked rather than
// silently producing a malformed placement.
type TopologyMismatchError struct {
	Message string
}

func (e TopologyMismatchError) Error() string {
	return e.Message
}

package naming

import "github.com/custodia-labs/sapbatch/internal/core/domain"

// Sink describes the in-process area a destination is derived into.
type Sink struct {
	// Container is the in-process container.
	Container string

	// Root is the path root within Container.
	Root string

	// GroupByTransaction places each transaction in its own folder below Root.
	GroupByTransaction bool
}

// DestinationName builds the object name without extension:
//
//	<event>-<transaction>_<version>-<date>[-<step>]
func DestinationName(d domain.FileDescriptor) string {
	name := d.Event + "-" + d.Function() + "-" + d.Date
	if d.HasStep() {
		name += "-" + d.Step
	}
	return name
}

// FilenameColumn builds the value of the derived filename column, the path
// the downstream loader uses to file the rows:
//
//	<event>/<transaction>/<date>[_<step>].csv
func FilenameColumn(d domain.FileDescriptor) string {
	leaf := d.Date
	if d.HasStep() {
		leaf += "_" + d.Step
	}
	return d.Event + "/" + d.Transaction + "/" + leaf + ".csv"
}

// Destination derives the target for a descriptor. It does no I/O.
func Destination(d domain.FileDescriptor, sink Sink) domain.DestinationTarget {
	path := sink.Root
	if sink.GroupByTransaction {
		path = domain.JoinKey(sink.Root, d.Transaction)
	}
	return domain.DestinationTarget{
		Container: sink.Container,
		Path:      domain.JoinKey(path),
		Filename:  DestinationName(d),
	}
}

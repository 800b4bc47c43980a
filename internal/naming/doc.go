// Package naming parses SAP batch-job export filenames and derives the
// in-process destination for the transformed table.
//
// Exports are named
//
//	Job SAP-<event>-<transaction>_<version>[-<date>], Step <n>.<ext>
//
// Parse turns such a name into a domain.FileDescriptor. DestinationName,
// FilenameColumn and Destination are pure string transforms over the
// descriptor and are stable for identical input, so a retried invocation
// always targets the same object.
package naming

// Package domain defines the core business entities for sapbatch.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - FileDescriptor: The semantic fields encoded in an export filename
//   - DestinationTarget: Where a transformed table is written
//   - Table: A parsed export, header plus rows
//   - RawRecord: Opaque bytes read from the raw storage area
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain

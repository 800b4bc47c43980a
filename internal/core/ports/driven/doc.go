// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - BlobStore: Object storage for the raw and in-process areas
//   - ConfigStore: Flat key-value application configuration
//   - ParserRegistry: Resolves a transaction code to its TableParser
//   - TableParser: Converts export markup into a table
//   - TableEncoder: Serialises a table for the in-process copy
//
// # Optional Interfaces
//
//   - BlobWatcher: Push notification of new raw objects. Only the
//     filesystem backend implements it.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, parser or encoder package
package driven

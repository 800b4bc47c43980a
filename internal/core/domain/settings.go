package domain

const unknownDescription = "Unknown"

// StorageBackend selects the storage collaborator implementation.
type StorageBackend string

// Available storage backends.
const (
	// StorageAzure is Azure Blob Storage, the production backend.
	StorageAzure StorageBackend = "azure"

	// StorageS3 is Amazon S3 or an S3-compatible endpoint.
	StorageS3 StorageBackend = "s3"

	// StorageFilesystem maps containers to local directories.
	StorageFilesystem StorageBackend = "filesystem"

	// StorageMemory keeps objects in process memory.
	StorageMemory StorageBackend = "memory"
)

// IsValid returns true if the storage backend is recognised.
func (b StorageBackend) IsValid() bool {
	switch b {
	case StorageAzure, StorageS3, StorageFilesystem, StorageMemory:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StorageBackend) Description() string {
	switch b {
	case StorageAzure:
		return "Azure Blob Storage"
	case StorageS3:
		return "Amazon S3"
	case StorageFilesystem:
		return "Local filesystem"
	case StorageMemory:
		return "In-memory (testing)"
	default:
		return unknownDescription
	}
}

// OutputFormat selects the table encoder used for the in-process copy.
type OutputFormat string

// Available output formats.
const (
	// FormatCSV writes tab-delimited text with a .csv extension.
	FormatCSV OutputFormat = "csv"

	// FormatParquet writes a Parquet file with all columns as UTF8.
	FormatParquet OutputFormat = "parquet"
)

// IsValid returns true if the output format is recognised.
func (f OutputFormat) IsValid() bool {
	return f == FormatCSV || f == FormatParquet
}

// String returns the string representation.
func (f OutputFormat) String() string {
	return string(f)
}

// StorageSettings configures the storage collaborator.
type StorageSettings struct {
	// Backend selects the implementation.
	Backend StorageBackend

	// AzureConnectionString authenticates the Azure backend.
	AzureConnectionString string

	// S3Region is the AWS region for the S3 backend.
	S3Region string

	// S3Endpoint overrides the S3 endpoint (MinIO, localstack).
	S3Endpoint string

	// FilesystemRoot is the directory holding one folder per container.
	FilesystemRoot string
}

// IsConfigured returns true if the backend has what it needs to connect.
func (s StorageSettings) IsConfigured() bool {
	switch s.Backend {
	case StorageAzure:
		return s.AzureConnectionString != ""
	case StorageS3:
		return s.S3Region != "" || s.S3Endpoint != ""
	case StorageFilesystem:
		return s.FilesystemRoot != ""
	case StorageMemory:
		return true
	default:
		return false
	}
}

// SinkSettings configures where transformed tables are written.
type SinkSettings struct {
	// RawContainer is the default source container.
	RawContainer string

	// InProcessContainer is the default destination container.
	InProcessContainer string

	// Root is the in-process path root.
	Root string

	// GroupByTransaction adds a transaction folder below Root.
	GroupByTransaction bool

	// Format selects the table encoder.
	Format OutputFormat
}

// NamingSettings configures the filename convention.
type NamingSettings struct {
	// Prefix is stripped from the start of every filename when present.
	Prefix string

	// Timezone is the IANA zone used for the default snapshot date.
	Timezone string
}

// ServerSettings configures the HTTP trigger.
type ServerSettings struct {
	// Port is the TCP port to listen on.
	Port int
}

// SweepSettings configures batch processing of a source folder.
type SweepSettings struct {
	// Rate limits objects processed per second; 0 disables throttling.
	Rate float64
}

// AppSettings represents the complete application configuration.
type AppSettings struct {
	Storage StorageSettings
	Sink    SinkSettings
	Naming  NamingSettings
	Server  ServerSettings
	Sweep   SweepSettings

	// Verbose enables debug logging.
	Verbose bool
}

// DefaultAppSettings returns settings with sensible defaults.
// Storage credentials are never defaulted.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Storage: StorageSettings{
			Backend: StorageAzure,
		},
		Sink: SinkSettings{
			RawContainer:       "raw",
			InProcessContainer: "in-process",
			Root:               "sap_batch",
			GroupByTransaction: true,
			Format:             FormatCSV,
		},
		Naming: NamingSettings{
			Prefix:   "Job SAP-",
			Timezone: "America/Edmonton",
		},
		Server: ServerSettings{
			Port: 7071,
		},
	}
}

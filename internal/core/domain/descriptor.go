package domain

// FileDescriptor holds the fields encoded in a raw export filename.
// It is built once per incoming filename and never mutated.
type FileDescriptor struct {
	// Event is the turnaround or project name, e.g. "Carseland 2021".
	Event string

	// Transaction is the SAP transaction code, e.g. "IW38".
	Transaction string

	// Version is the layout version suffix, e.g. "01".
	Version string

	// Date is the snapshot date as YYYYMMDD.
	Date string

	// Step is the batch job step, e.g. "Step 1". Empty when absent.
	Step string
}

// Function returns the function variant code, transaction + "_" + version.
func (d FileDescriptor) Function() string {
	return d.Transaction + "_" + d.Version
}

// HasStep reports whether the filename carried a step suffix.
func (d FileDescriptor) HasStep() bool {
	return d.Step != ""
}

// DestinationTarget is where a transformed table is written.
type DestinationTarget struct {
	// Container is the in-process storage container.
	Container string

	// Path is the folder within the container.
	Path string

	// Filename is the object name without extension.
	Filename string
}

// Ref returns the storage reference for the target with ext appended
// to the filename. ext is given without the leading dot.
func (t DestinationTarget) Ref(ext string) ObjectRef {
	name := t.Filename
	if ext != "" {
		name += "." + ext
	}
	return ObjectRef{Container: t.Container, Path: t.Path, Name: name}
}

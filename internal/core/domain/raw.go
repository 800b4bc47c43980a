package domain

import "strings"

// ObjectRef addresses one object in the storage collaborator.
type ObjectRef struct {
	// Container is the blob container, bucket or top-level directory.
	Container string

	// Path is the folder within the container, without leading or trailing slashes.
	Path string

	// Name is the object name within Path.
	Name string
}

// Key returns the object key within its container.
func (r ObjectRef) Key() string {
	return JoinKey(r.Path, r.Name)
}

// String renders the reference as container/key for logs.
func (r ObjectRef) String() string {
	return JoinKey(r.Container, r.Key())
}

// RawRecord is the opaque content of one source object.
// It is owned by a single invocation.
type RawRecord struct {
	// Ref is where the content was read from.
	Ref ObjectRef

	// Content is the raw bytes, usually an HTML list export.
	Content []byte
}

// ObjectInfo is one entry returned by a storage listing.
type ObjectInfo struct {
	// Name is the full key relative to the container.
	Name string

	// Size is the object size in bytes, 0 when unknown.
	Size int64
}

// JoinKey joins key segments with "/", dropping empty segments and
// redundant slashes.
func JoinKey(parts ...string) string {
	cleaned := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(p, "/")
		if p != "" {
			cleaned = append(cleaned, p)
		}
	}
	return strings.Join(cleaned, "/")
}

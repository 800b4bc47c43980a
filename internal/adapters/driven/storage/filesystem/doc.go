// Package filesystem implements the blob store on a local directory tree.
//
// Each container is a directory below the configured root and object keys
// map to relative file paths. Writes go through a hidden temporary file that
// is renamed into place, so readers and watchers never see partial content.
package filesystem

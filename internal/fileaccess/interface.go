// Package fileaccess reads and writes whole objects on the local file system
// or in S3 behind one interface, so conversions can read containers from and
// write documents to either.
package fileaccess

// FileAccess reads and writes objects addressed by a bucket and a path. For
// the local file system the bucket is a root directory, which may be empty.
type FileAccess interface {
	ReadObject(bucket string, path string) ([]byte, error)
	WriteObject(bucket string, path string, data []byte) error
	ObjectExists(bucket string, path string) (bool, error)
	// ReadJSON decodes the object into itemsPtr. With emptyIfNotFound set, a
	// missing object leaves itemsPtr untouched and is not an error.
	ReadJSON(bucket string, path string, itemsPtr interface{}, emptyIfNotFound bool) error
	// WriteJSON writes itemsPtr as compact JSON
	WriteJSON(bucket string, path string, itemsPtr interface{}) error
	IsNotFoundError(err error) bool
}

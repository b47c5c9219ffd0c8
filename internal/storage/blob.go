package storage

import "io"

// BlobStore holds uploaded assets (stimulus images, option images).
// Questions reference blobs by key only; the store never sees question data.
type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
}

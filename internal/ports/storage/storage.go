package storage

import "io"

// ImageStore persists uploaded images and hands back the stored name that
// entity rows keep as their image reference.
type ImageStore interface {
	Save(name string, r io.Reader) (string, error)
	Path(name string) string
	Remove(name string) error
}

package filestore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gofrs/uuid"
)

// FileStore keeps images as flat files under a media root. Stored names are
// generated, so a caller-supplied filename only contributes its extension.
type FileStore struct {
	root string
}

func New(root string) *FileStore {
	return &FileStore{root: root}
}

func (s *FileStore) Save(name string, r io.Reader) (string, error) {
	stored := fmt.Sprintf("%s%s", uuid.Must(uuid.NewV4()), filepath.Ext(name))

	f, err := os.Create(filepath.Join(s.root, stored))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return stored, nil
}

func (s *FileStore) Path(name string) string {
	return filepath.Join(s.root, name)
}

func (s *FileStore) Remove(name string) error {
	return os.Remove(filepath.Join(s.root, name))
}

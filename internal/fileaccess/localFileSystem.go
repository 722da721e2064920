package fileaccess

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// FSAccess implements FileAccess on the local file system
type FSAccess struct {
}

func (a *FSAccess) ReadObject(rootPath string, filePath string) ([]byte, error) {
	return os.ReadFile(a.filePath(rootPath, filePath))
}

func (a *FSAccess) WriteObject(rootPath string, filePath string, data []byte) error {
	fullPath := a.filePath(rootPath, filePath)

	// Ensure any subdirs in between are created
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(fullPath, data, 0o644)
}

func (a *FSAccess) ObjectExists(rootPath string, filePath string) (bool, error) {
	_, err := os.Stat(a.filePath(rootPath, filePath))
	if err == nil {
		return true, nil
	}
	if a.IsNotFoundError(err) {
		return false, nil
	}
	return false, err
}

func (a *FSAccess) ReadJSON(rootPath string, filePath string, itemsPtr interface{}, emptyIfNotFound bool) error {
	fileData, err := a.ReadObject(rootPath, filePath)
	if err != nil {
		if emptyIfNotFound && a.IsNotFoundError(err) {
			return nil
		}
		return err
	}
	return json.Unmarshal(fileData, itemsPtr)
}

func (a *FSAccess) WriteJSON(rootPath string, filePath string, itemsPtr interface{}) error {
	fileData, err := json.Marshal(itemsPtr)
	if err != nil {
		return err
	}
	return a.WriteObject(rootPath, filePath, fileData)
}

func (a *FSAccess) IsNotFoundError(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func (a *FSAccess) filePath(rootPath string, filePath string) string {
	if rootPath == "" {
		return filePath
	}
	return path.Join(rootPath, filePath)
}

package cart

import (
	"os"
	"path/filepath"
	"sync"
)

// StorageKey is the namespace carts are persisted under.
const StorageKey = "cart-storage"

// Storage is the local key-value medium a cart survives restarts in. Load
// returns nil bytes when nothing has been saved yet; that is not an error.
type Storage interface {
	Load() ([]byte, error)
	Save(data []byte) error
}

// MemoryStorage keeps the serialized cart in process memory. Used in tests
// and as the fallback backend when redis is unavailable.
type MemoryStorage struct {
	mu   sync.Mutex
	data []byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (m *MemoryStorage) Load() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, nil
	}
	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out, nil
}

func (m *MemoryStorage) Save(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make([]byte, len(data))
	copy(m.data, data)
	return nil
}

// FileStorage persists the cart as a JSON blob on local disk. Writes go
// through a temp file and rename so a crash mid-write leaves the previous
// state intact.
type FileStorage struct {
	path string
}

func NewFileStorage(dir, sessionID string) *FileStorage {
	return &FileStorage{path: filepath.Join(dir, StorageKey+"-"+sessionID+".json")}
}

func (f *FileStorage) Load() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (f *FileStorage) Save(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(f.path), os.ModePerm); err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

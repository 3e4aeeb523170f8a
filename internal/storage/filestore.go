package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/israil64/laptop-galaxy/internal/models"
)

// FileStore keeps one pretty-printed JSON array file per entity kind and
// rewrites the whole file on every mutation. A process-local mutex serializes
// writers; two processes sharing a data directory can still lose updates,
// which is a documented limitation of this strategy.
type FileStore struct {
	dir string

	mu     sync.Mutex
	lastID int64
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Close(ctx context.Context) error { return nil }

// nextID issues millisecond-timestamp ids, bumped past the previous one so
// that rapid successive creates never collide. Callers hold s.mu.
func (s *FileStore) nextID() string {
	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return strconv.FormatInt(id, 10)
}

// readFile loads a collection, failing open: a missing or unreadable file is
// an empty collection, not an error.
func readFile[T any](path string) []T {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var recs []T
	if err := json.Unmarshal(data, &recs); err != nil {
		slog.Warn("filestore: unparseable collection, treating as empty", "path", path, "error", err)
		return nil
	}
	return recs
}

// writeFile replaces a collection atomically: write a temp file in the same
// directory, then rename over the target.
func writeFile[T any](path string, recs []T) error {
	if recs == nil {
		recs = []T{}
	}
	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode collection: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write collection: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace collection: %w", err)
	}
	return nil
}

// fileCollection wires one entity kind to its backing file. The id accessors
// keep the generic read-modify-write helpers free of per-entity knowledge.
type fileCollection[T any] struct {
	fs    *FileStore
	file  string
	getID func(T) string
	setID func(*T, string)
}

func (c fileCollection[T]) path() string { return filepath.Join(c.fs.dir, c.file) }

func (c fileCollection[T]) list(context.Context) ([]T, error) {
	c.fs.mu.Lock()
	defer c.fs.mu.Unlock()
	recs := readFile[T](c.path())
	if recs == nil {
		recs = []T{}
	}
	return recs, nil
}

func (c fileCollection[T]) create(_ context.Context, rec T) (T, error) {
	c.fs.mu.Lock()
	defer c.fs.mu.Unlock()
	recs := readFile[T](c.path())
	c.setID(&rec, c.fs.nextID())
	recs = append(recs, rec)
	if err := writeFile(c.path(), recs); err != nil {
		var zero T
		return zero, err
	}
	return rec, nil
}

func (c fileCollection[T]) update(_ context.Context, id string, apply func(*T)) (T, error) {
	c.fs.mu.Lock()
	defer c.fs.mu.Unlock()
	var zero T
	recs := readFile[T](c.path())
	for i := range recs {
		if c.getID(recs[i]) != id {
			continue
		}
		apply(&recs[i])
		if err := writeFile(c.path(), recs); err != nil {
			return zero, err
		}
		return recs[i], nil
	}
	return zero, ErrNotFound
}

func (c fileCollection[T]) delete(_ context.Context, id string) error {
	c.fs.mu.Lock()
	defer c.fs.mu.Unlock()
	recs := readFile[T](c.path())
	kept := recs[:0]
	for _, r := range recs {
		if c.getID(r) != id {
			kept = append(kept, r)
		}
	}
	return writeFile(c.path(), kept)
}

func (s *FileStore) laptops() fileCollection[models.Laptop] {
	return fileCollection[models.Laptop]{
		fs:    s,
		file:  "inventory.json",
		getID: func(l models.Laptop) string { return l.ID },
		setID: func(l *models.Laptop, id string) { l.ID = id },
	}
}

func (s *FileStore) reviews() fileCollection[models.Review] {
	return fileCollection[models.Review]{
		fs:    s,
		file:  "reviews.json",
		getID: func(r models.Review) string { return r.ID },
		setID: func(r *models.Review, id string) { r.ID = id },
	}
}

func (s *FileStore) messages() fileCollection[models.Message] {
	return fileCollection[models.Message]{
		fs:    s,
		file:  "messages.json",
		getID: func(m models.Message) string { return m.ID },
		setID: func(m *models.Message, id string) { m.ID = id },
	}
}

func (s *FileStore) users() fileCollection[models.User] {
	return fileCollection[models.User]{
		fs:    s,
		file:  "users.json",
		getID: func(u models.User) string { return u.ID },
		setID: func(u *models.User, id string) { u.ID = id },
	}
}

type fileLaptops struct{ c fileCollection[models.Laptop] }

func (s *FileStore) Laptops() LaptopStore { return fileLaptops{s.laptops()} }

func (f fileLaptops) List(ctx context.Context) ([]models.Laptop, error) { return f.c.list(ctx) }
func (f fileLaptops) Create(ctx context.Context, l models.Laptop) (models.Laptop, error) {
	return f.c.create(ctx, l)
}
func (f fileLaptops) Update(ctx context.Context, id string, p models.LaptopPatch) (models.Laptop, error) {
	return f.c.update(ctx, id, func(l *models.Laptop) { p.Apply(l) })
}
func (f fileLaptops) Delete(ctx context.Context, id string) error { return f.c.delete(ctx, id) }

type fileReviews struct{ c fileCollection[models.Review] }

func (s *FileStore) Reviews() ReviewStore { return fileReviews{s.reviews()} }

func (f fileReviews) List(ctx context.Context) ([]models.Review, error) { return f.c.list(ctx) }
func (f fileReviews) Create(ctx context.Context, r models.Review) (models.Review, error) {
	return f.c.create(ctx, r)
}
func (f fileReviews) Update(ctx context.Context, id string, p models.ReviewPatch) (models.Review, error) {
	return f.c.update(ctx, id, func(r *models.Review) { p.Apply(r) })
}
func (f fileReviews) Delete(ctx context.Context, id string) error { return f.c.delete(ctx, id) }

type fileMessages struct{ c fileCollection[models.Message] }

func (s *FileStore) Messages() MessageStore { return fileMessages{s.messages()} }

func (f fileMessages) List(ctx context.Context) ([]models.Message, error) { return f.c.list(ctx) }
func (f fileMessages) Create(ctx context.Context, m models.Message) (models.Message, error) {
	return f.c.create(ctx, m)
}
func (f fileMessages) Delete(ctx context.Context, id string) error { return f.c.delete(ctx, id) }

type fileUsers struct{ c fileCollection[models.User] }

func (s *FileStore) Users() UserStore { return fileUsers{s.users()} }

func (f fileUsers) List(ctx context.Context) ([]models.User, error) { return f.c.list(ctx) }
func (f fileUsers) Create(ctx context.Context, u models.User) (models.User, error) {
	return f.c.create(ctx, u)
}
func (f fileUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	users, err := f.c.list(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, nil
}
func (f fileUsers) Delete(ctx context.Context, id string) error { return f.c.delete(ctx, id) }

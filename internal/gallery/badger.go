package gallery

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

var (
	badgerSchemaKey     = []byte("meta:schema_version")
	badgerGenerationKey = []byte("meta:generation")
	badgerPrefix        = []byte(CollectionName + ":")
)

// BadgerStore keeps one key per image, ordered by position within the
// current generation.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens (or creates) a badger database in dir.
func NewBadgerStore(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}

	s := &BadgerStore{db: db}
	if err := s.checkSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *BadgerStore) checkSchema() error {
	return s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerSchemaKey)
		if err == badger.ErrKeyNotFound {
			buf := make([]byte, 8)
			binary.BigEndian.PutUint64(buf, SchemaVersion)
			return txn.Set(badgerSchemaKey, buf)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if len(val) != 8 {
				return fmt.Errorf("corrupt schema version")
			}
			if v := binary.BigEndian.Uint64(val); v != SchemaVersion {
				return fmt.Errorf("unsupported schema version %d", v)
			}
			return nil
		})
	})
}

// Images live under images:<generation>:<position>. A save writes a new
// generation in batches, then flips meta:generation in one small
// transaction, so no single transaction carries the whole collection.
func imageKey(gen uint64, pos int) []byte {
	key := generationPrefix(gen)
	return binary.BigEndian.AppendUint64(key, uint64(pos))
}

func generationPrefix(gen uint64) []byte {
	key := make([]byte, 0, len(badgerPrefix)+16)
	key = append(key, badgerPrefix...)
	return binary.BigEndian.AppendUint64(key, gen)
}

func readGeneration(txn *badger.Txn) (uint64, error) {
	item, err := txn.Get(badgerGenerationKey)
	if err == badger.ErrKeyNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	var gen uint64
	err = item.Value(func(val []byte) error {
		if len(val) != 8 {
			return fmt.Errorf("corrupt generation key")
		}
		gen = binary.BigEndian.Uint64(val)
		return nil
	})
	return gen, err
}

func (s *BadgerStore) SaveAll(_ context.Context, images []Image) error {
	var current uint64
	if err := s.db.View(func(txn *badger.Txn) (err error) {
		current, err = readGeneration(txn)
		return err
	}); err != nil {
		return fmt.Errorf("read generation: %w", err)
	}
	next := current + 1

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()
	for i, img := range images {
		val, err := json.Marshal(img)
		if err != nil {
			return fmt.Errorf("encode %s: %w", img.ID, err)
		}
		if err := wb.Set(imageKey(next, i), val); err != nil {
			return fmt.Errorf("write %s: %w", img.ID, err)
		}
	}
	if err := wb.Flush(); err != nil {
		return fmt.Errorf("write generation %d: %w", next, err)
	}

	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, next)
	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(badgerGenerationKey, buf)
	}); err != nil {
		return fmt.Errorf("switch generation: %w", err)
	}

	return s.deleteStale(next)
}

// deleteStale removes image keys from every generation except keep,
// including leftovers of saves interrupted before their switch.
func (s *BadgerStore) deleteStale(keep uint64) error {
	live := generationPrefix(keep)
	var stale [][]byte
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = badgerPrefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			key := it.Item().Key()
			if !bytes.HasPrefix(key, live) {
				stale = append(stale, it.Item().KeyCopy(nil))
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("scan stale images: %w", err)
	}
	if len(stale) == 0 {
		return nil
	}

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()
	for _, k := range stale {
		if err := wb.Delete(k); err != nil {
			return err
		}
	}
	if err := wb.Flush(); err != nil {
		return fmt.Errorf("delete stale images: %w", err)
	}
	return nil
}

func (s *BadgerStore) LoadAll(_ context.Context) ([]Image, error) {
	images := []Image{}
	err := s.db.View(func(txn *badger.Txn) error {
		gen, err := readGeneration(txn)
		if err != nil {
			return err
		}
		if gen == 0 {
			return nil
		}

		opts := badger.DefaultIteratorOptions
		opts.Prefix = generationPrefix(gen)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var img Image
				if err := json.Unmarshal(val, &img); err != nil {
					return err
				}
				images = append(images, img)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return images, nil
}

func (s *BadgerStore) SizeInBytes(ctx context.Context) (int64, error) {
	images, err := s.LoadAll(ctx)
	if err != nil {
		return 0, err
	}
	return SerializedSize(images)
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

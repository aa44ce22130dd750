// Package store exposes a small, versioned key-value store on top of
// badger, with values encoded through msgp.
package store

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
	"github.com/tinylib/msgp/msgp"

	"github.com/hybridkit/navcache/internal/logging"
)

var (
	ErrKeyNotFound = badger.ErrKeyNotFound
	ErrConflict    = errors.New("trying to update an entry that got updated already")
)

type encodable interface {
	msgp.Marshaler
}

type Ptr[T encodable] interface {
	*T
	msgp.Unmarshaler
}

type Entry[T any] struct {
	Value   T
	version uint64
}

type Store[T encodable, TPtr Ptr[T]] struct {
	db *badger.DB
}

func Open[T encodable, TPtr Ptr[T]](
	path string,
	logger *zerolog.Logger,
) (*Store[T, TPtr], error) {
	badgerDB, err := badger.Open(
		badger.DefaultOptions(path).WithLogger(logging.NewBadgerAdapter(logger)),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to open the store, it might be corrupted: %w", err)
	}

	return &Store[T, TPtr]{badgerDB}, nil
}

func (s *Store[T, TPtr]) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("unable to close the store, it might be corrupted: %w", err)
	}
	return nil
}

func (s *Store[T, TPtr]) Get(key string) (*Entry[T], error) {
	var entry Entry[T]

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			if errors.Is(err, ErrKeyNotFound) {
				return ErrKeyNotFound
			}
			return fmt.Errorf("unexpected error loading key: %w", err)
		}

		val, err := item.ValueCopy(nil)
		if err != nil {
			return fmt.Errorf("unexpected error extracting value: %w", err)
		}

		var value TPtr = new(T)
		_, err = value.UnmarshalMsg(val)
		if err != nil {
			return fmt.Errorf(
				"entry in the store is not of the correct format, this should not happen: %w",
				err,
			)
		}

		entry.Value = *value
		entry.version = item.Version()
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("unable to load key: %w", err)
	}

	return &entry, nil
}

func (s *Store[T, TPtr]) Save(key string, entry *Entry[T]) error {
	data, err := entry.Value.MarshalMsg(nil)
	if err != nil {
		return fmt.Errorf(
			"entry in the store is not of the correct format, this should not happen: %w",
			err,
		)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			if !errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("unable to check for previous entry with same key: %w", err)
			}
		} else if item.Version() != entry.version {
			return ErrConflict
		}

		return txn.Set([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("unable to save entry in store: %w", err)
	}
	return nil
}

func (s *Store[T, TPtr]) New(key string, value T) error {
	return s.Save(key, &Entry[T]{Value: value})
}

package badger

import (
	"bytes"
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/quillside/proposia/core"
	"github.com/quillside/proposia/storage"
)

// SampleRepository implements storage.SampleRepository for BadgerDB.
type SampleRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.SampleRepository = (*SampleRepository)(nil)

// NewSampleRepository creates a new SampleRepository.
func NewSampleRepository(backend *Backend) (*SampleRepository, error) {
	idSeq, err := backend.GetSequence(sampleIDSeq)
	if err != nil {
		return nil, err
	}

	return &SampleRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *SampleRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *SampleRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddSamples adds one or more sample proposals to storage.
func (r *SampleRepository) AddSamples(ctx context.Context, samples ...*core.SampleProposal) ([]*core.SampleProposal, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, sample := range samples {
			nextID, err := r.idSeq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if nextID == 0 {
				nextID, err = r.idSeq.Next()
				if err != nil {
					return err
				}
			}
			sample.Id = core.ID(nextID)

			sample.InsertedAt = time.Now().UTC()
			sample.UpdatedAt = sample.InsertedAt

			key := makeSampleKey(sample.Id)
			if err := tx.Set(key, storage.MarshalSampleProposal(sample)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return samples, err
}

// UpdateSamples updates existing sample proposals.
func (r *SampleRepository) UpdateSamples(ctx context.Context, samples ...*core.SampleProposal) ([]*core.SampleProposal, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, sample := range samples {
			key := makeSampleKey(sample.Id)

			old, err := readSample(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			sample.InsertedAt = old.InsertedAt
			sample.UpdatedAt = time.Now().UTC()

			if err := tx.Set(key, storage.MarshalSampleProposal(sample)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return samples, err
}

// DeleteSamples removes sample proposals by their IDs.
func (r *SampleRepository) DeleteSamples(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeSampleKey(id)

			sample, err := readSample(tx, key)
			if err != nil {
				return err
			}
			if sample == nil {
				return storage.ErrNotFound
			}

			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetSample retrieves a single sample proposal by ID.
func (r *SampleRepository) GetSample(ctx context.Context, id core.ID) (*core.SampleProposal, error) {
	var sample *core.SampleProposal

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		sample, err = readSample(tx, makeSampleKey(id))
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	if sample == nil {
		return nil, storage.ErrNotFound
	}

	return sample, nil
}

// FindApproved retrieves up to limit approved samples, optionally filtered by
// exact category match. Iteration order is key order, which is stable between
// calls; the searcher relies on that for reproducible tie-breaking.
func (r *SampleRepository) FindApproved(ctx context.Context, category string, limit int) ([]*core.SampleProposal, error) {
	var samples []*core.SampleProposal

	err := r.scanSamples(func(sample *core.SampleProposal) bool {
		if !sample.Approved {
			return true
		}
		if category != "" && sample.Category != category {
			return true
		}
		samples = append(samples, sample)
		return limit <= 0 || len(samples) < limit
	})
	if err != nil {
		return nil, err
	}

	return samples, nil
}

// AllSamples retrieves every stored sample regardless of approval.
func (r *SampleRepository) AllSamples(ctx context.Context) ([]*core.SampleProposal, error) {
	var samples []*core.SampleProposal

	err := r.scanSamples(func(sample *core.SampleProposal) bool {
		samples = append(samples, sample)
		return true
	})
	if err != nil {
		return nil, err
	}

	return samples, nil
}

// UpdateVector persists a new embedding vector onto an existing sample.
func (r *SampleRepository) UpdateVector(ctx context.Context, id core.ID, vector []float32) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeSampleKey(id)

		sample, err := readSample(tx, key)
		if err != nil {
			return err
		}
		if sample == nil {
			return storage.ErrNotFound
		}

		sample.Vector = vector
		sample.UpdatedAt = time.Now().UTC()

		if err := tx.Set(key, storage.MarshalSampleProposal(sample)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// scanSamples iterates all sample records in key order, calling visit for
// each. Iteration stops when visit returns false.
func (r *SampleRepository) scanSamples(visit func(*core.SampleProposal) bool) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(samplePrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()

			// Skip the sequence key, which shares the record prefix
			if bytes.Equal(item.Key(), []byte(sampleIDSeq)) {
				continue
			}

			var sample *core.SampleProposal
			err := item.Value(func(val []byte) error {
				var err error
				sample, err = storage.UnmarshalSampleProposal(val)
				return err
			})
			if err != nil {
				return err
			}
			if sample == nil {
				continue
			}

			if !visit(sample) {
				return nil
			}
		}
		return nil
	}, false)
}

// readSample reads a sample by key within a transaction.
// Returns nil (not an error) if the key doesn't exist.
func readSample(tx *badger.Txn, key []byte) (*core.SampleProposal, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var sample *core.SampleProposal
	err = item.Value(func(val []byte) error {
		var err error
		sample, err = storage.UnmarshalSampleProposal(val)
		return err
	})
	if err != nil {
		return nil, err
	}

	return sample, nil
}

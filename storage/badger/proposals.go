package badger

import (
	"bytes"
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/quillside/proposia/core"
	"github.com/quillside/proposia/storage"
)

// ProposalRepository implements storage.ProposalRepository for BadgerDB.
type ProposalRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.ProposalRepository = (*ProposalRepository)(nil)

// NewProposalRepository creates a new ProposalRepository.
func NewProposalRepository(backend *Backend) (*ProposalRepository, error) {
	idSeq, err := backend.GetSequence(proposalIDSeq)
	if err != nil {
		return nil, err
	}

	return &ProposalRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *ProposalRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *ProposalRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddProposals adds one or more proposals to storage.
func (r *ProposalRepository) AddProposals(ctx context.Context, proposals ...*core.Proposal) ([]*core.Proposal, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, proposal := range proposals {
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
			proposal.Id = core.ID(nextID)

			proposal.InsertedAt = time.Now().UTC()
			proposal.UpdatedAt = proposal.InsertedAt

			key := makeProposalKey(proposal.Id)
			if err := tx.Set(key, storage.MarshalProposal(proposal)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return proposals, err
}

// UpdateProposals updates existing proposals.
func (r *ProposalRepository) UpdateProposals(ctx context.Context, proposals ...*core.Proposal) ([]*core.Proposal, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, proposal := range proposals {
			key := makeProposalKey(proposal.Id)

			old, err := readProposal(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			proposal.InsertedAt = old.InsertedAt
			proposal.UpdatedAt = time.Now().UTC()

			if err := tx.Set(key, storage.MarshalProposal(proposal)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return proposals, err
}

// DeleteProposals removes proposals by their IDs.
func (r *ProposalRepository) DeleteProposals(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeProposalKey(id)

			proposal, err := readProposal(tx, key)
			if err != nil {
				return err
			}
			if proposal == nil {
				return storage.ErrNotFound
			}

			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetProposal retrieves a single proposal by ID.
func (r *ProposalRepository) GetProposal(ctx context.Context, id core.ID) (*core.Proposal, error) {
	var proposal *core.Proposal

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		proposal, err = readProposal(tx, makeProposalKey(id))
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	if proposal == nil {
		return nil, storage.ErrNotFound
	}

	return proposal, nil
}

// FindCandidates retrieves up to limit proposals in a terminal accepted or
// completed status, optionally filtered by exact category match. Iteration
// order is key order, stable between calls.
func (r *ProposalRepository) FindCandidates(ctx context.Context, category string, limit int) ([]*core.Proposal, error) {
	var proposals []*core.Proposal

	err := r.scanProposals(func(proposal *core.Proposal) bool {
		if !proposal.Status.Terminal() {
			return true
		}
		if category != "" && proposal.Category != category {
			return true
		}
		proposals = append(proposals, proposal)
		return limit <= 0 || len(proposals) < limit
	})
	if err != nil {
		return nil, err
	}

	return proposals, nil
}

// AllProposals retrieves every stored proposal regardless of status.
func (r *ProposalRepository) AllProposals(ctx context.Context) ([]*core.Proposal, error) {
	var proposals []*core.Proposal

	err := r.scanProposals(func(proposal *core.Proposal) bool {
		proposals = append(proposals, proposal)
		return true
	})
	if err != nil {
		return nil, err
	}

	return proposals, nil
}

// UpdateStatus transitions a proposal to a new lifecycle status.
func (r *ProposalRepository) UpdateStatus(ctx context.Context, id core.ID, status core.ProposalStatus) error {
	if err := core.ValidateStatus(status); err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeProposalKey(id)

		proposal, err := readProposal(tx, key)
		if err != nil {
			return err
		}
		if proposal == nil {
			return storage.ErrNotFound
		}

		proposal.Status = status
		proposal.UpdatedAt = time.Now().UTC()

		if err := tx.Set(key, storage.MarshalProposal(proposal)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// UpdateVector persists a new embedding vector onto an existing proposal.
func (r *ProposalRepository) UpdateVector(ctx context.Context, id core.ID, vector []float32) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeProposalKey(id)

		proposal, err := readProposal(tx, key)
		if err != nil {
			return err
		}
		if proposal == nil {
			return storage.ErrNotFound
		}

		proposal.Vector = vector
		proposal.UpdatedAt = time.Now().UTC()

		if err := tx.Set(key, storage.MarshalProposal(proposal)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// scanProposals iterates all proposal records in key order, calling visit
// for each. Iteration stops when visit returns false.
func (r *ProposalRepository) scanProposals(visit func(*core.Proposal) bool) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(proposalPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()

			// Skip the sequence key, which shares the record prefix
			if bytes.Equal(item.Key(), []byte(proposalIDSeq)) {
				continue
			}

			var proposal *core.Proposal
			err := item.Value(func(val []byte) error {
				var err error
				proposal, err = storage.UnmarshalProposal(val)
				return err
			})
			if err != nil {
				return err
			}
			if proposal == nil {
				continue
			}

			if !visit(proposal) {
				return nil
			}
		}
		return nil
	}, false)
}

// readProposal reads a proposal by key within a transaction.
// Returns nil (not an error) if the key doesn't exist.
func readProposal(tx *badger.Txn, key []byte) (*core.Proposal, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var proposal *core.Proposal
	err = item.Value(func(val []byte) error {
		var err error
		proposal, err = storage.UnmarshalProposal(val)
		return err
	})
	if err != nil {
		return nil, err
	}

	return proposal, nil
}

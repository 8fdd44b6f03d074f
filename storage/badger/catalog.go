package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/quillside/proposia/core"
	"github.com/quillside/proposia/storage"
)

// PricingRuleRepository implements storage.PricingRuleRepository for BadgerDB.
// Rules use content-based IDs so reseeding is idempotent.
type PricingRuleRepository struct {
	backend *Backend
}

var _ storage.PricingRuleRepository = (*PricingRuleRepository)(nil)

// NewPricingRuleRepository creates a new PricingRuleRepository.
func NewPricingRuleRepository(backend *Backend) *PricingRuleRepository {
	return &PricingRuleRepository{backend: backend}
}

// Close releases resources. PricingRuleRepository has no resources to release.
func (r *PricingRuleRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *PricingRuleRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// PutRules upserts pricing rules keyed by feature name and category.
func (r *PricingRuleRepository) PutRules(ctx context.Context, rules ...*core.PricingRule) ([]*core.PricingRule, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, rule := range rules {
			if rule.Id == 0 {
				rule.Id = ruleContentID(rule)
			}

			key := makeRuleKey(rule.Id)
			old, err := readPricingRule(tx, key)
			if err != nil {
				return err
			}

			now := time.Now().UTC()
			if old != nil {
				rule.InsertedAt = old.InsertedAt
			} else {
				rule.InsertedAt = now
			}
			rule.UpdatedAt = now

			if err := tx.Set(key, storage.MarshalPricingRule(rule)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return rules, err
}

// RulesForCategory retrieves rules applying to the category: rules with a
// matching Category plus category-agnostic rules (empty Category).
func (r *PricingRuleRepository) RulesForCategory(ctx context.Context, category string) ([]*core.PricingRule, error) {
	var rules []*core.PricingRule

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(rulePrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var rule *core.PricingRule
			err := iter.Item().Value(func(val []byte) error {
				var err error
				rule, err = storage.UnmarshalPricingRule(val)
				return err
			})
			if err != nil {
				return err
			}
			if rule == nil {
				continue
			}

			if rule.Category == "" || rule.Category == category {
				rules = append(rules, rule)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	return rules, nil
}

// readPricingRule reads a pricing rule by key within a transaction.
// Returns nil (not an error) if the key doesn't exist.
func readPricingRule(tx *badger.Txn, key []byte) (*core.PricingRule, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var rule *core.PricingRule
	err = item.Value(func(val []byte) error {
		var err error
		rule, err = storage.UnmarshalPricingRule(val)
		return err
	})
	if err != nil {
		return nil, err
	}

	return rule, nil
}

// TemplateRepository implements storage.TemplateRepository for BadgerDB.
type TemplateRepository struct {
	backend *Backend
}

var _ storage.TemplateRepository = (*TemplateRepository)(nil)

// NewTemplateRepository creates a new TemplateRepository.
func NewTemplateRepository(backend *Backend) *TemplateRepository {
	return &TemplateRepository{backend: backend}
}

// Close releases resources. TemplateRepository has no resources to release.
func (r *TemplateRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *TemplateRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// PutTemplates upserts templates keyed by name and category.
func (r *TemplateRepository) PutTemplates(ctx context.Context, templates ...*core.Template) ([]*core.Template, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, template := range templates {
			if template.Id == 0 {
				template.Id = templateContentID(template)
			}

			key := makeTemplateKey(template.Id)
			old, err := readTemplate(tx, key)
			if err != nil {
				return err
			}

			now := time.Now().UTC()
			if old != nil {
				template.InsertedAt = old.InsertedAt
			} else {
				template.InsertedAt = now
			}
			template.UpdatedAt = now

			if err := tx.Set(key, storage.MarshalTemplate(template)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return templates, err
}

// ActiveTemplate retrieves the first active template for the category.
func (r *TemplateRepository) ActiveTemplate(ctx context.Context, category string) (*core.Template, error) {
	var found *core.Template

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(templatePrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var template *core.Template
			err := iter.Item().Value(func(val []byte) error {
				var err error
				template, err = storage.UnmarshalTemplate(val)
				return err
			})
			if err != nil {
				return err
			}
			if template == nil {
				continue
			}

			if template.Active && template.Category == category {
				found = template
				return nil
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, storage.ErrNotFound
	}

	return found, nil
}

// readTemplate reads a template by key within a transaction.
// Returns nil (not an error) if the key doesn't exist.
func readTemplate(tx *badger.Txn, key []byte) (*core.Template, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var template *core.Template
	err = item.Value(func(val []byte) error {
		var err error
		template, err = storage.UnmarshalTemplate(val)
		return err
	})
	if err != nil {
		return nil, err
	}

	return template, nil
}

package proposia

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDatabase(t *testing.T) {
	db, err := NewDatabase("", WithInMemory())
	require.NoError(t, err)
	defer db.Close()

	assert.NotNil(t, db.SampleRepository())
	assert.NotNil(t, db.ProposalRepository())
	assert.NotNil(t, db.PricingRuleRepository())
	assert.NotNil(t, db.TemplateRepository())
	assert.NotNil(t, db.Provider())
}

func TestDatabaseConstructors(t *testing.T) {
	db, err := NewDatabase("", WithInMemory())
	require.NoError(t, err)
	defer db.Close()

	searcher, err := db.NewSearcher()
	require.NoError(t, err)
	assert.NotNil(t, searcher)

	pipeline, err := db.NewIndexingPipeline()
	require.NoError(t, err)
	assert.NotNil(t, pipeline)
	defer pipeline.Release()

	generator, err := db.NewGenerator(searcher)
	require.NoError(t, err)
	assert.NotNil(t, generator)

	// Nil searcher builds one internally.
	generator, err = db.NewGenerator(nil)
	require.NoError(t, err)
	assert.NotNil(t, generator)
}

package ioschema_test

import (
	"context"
	"testing"

	"github.com/gnames/gn"
	"github.com/skippy/farm/internal/iodb"
	"github.com/skippy/farm/internal/ioschema"
	"github.com/skippy/farm/internal/iotesting"
	"github.com/skippy/farm/pkg/errcode"
	"github.com/skippy/farm/pkg/lifecycle"
	"github.com/skippy/farm/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotConnected(t *testing.T) {
	var sm lifecycle.SchemaManager = ioschema.NewManager(iodb.NewPgxOperator())
	err := sm.Create(context.Background(), iotesting.GetTestConfig())
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.DBNotConnectedError, gnErr.Code)
}

func TestCreateMigrate(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	ctx := context.Background()
	cfg := iotesting.GetTestConfig()

	op := iodb.NewPgxOperator()
	require.NoError(t, op.Connect(ctx, &cfg.Database))
	defer op.Close()
	require.NoError(t, op.DropAllTables(ctx))

	sm := ioschema.NewManager(op)
	require.NoError(t, sm.Create(ctx, cfg))
	for _, m := range schema.AllModels() {
		table := m.(schema.DDLGenerator).TableName()
		exists, err := op.TableExists(ctx, table)
		require.NoError(t, err)
		assert.True(t, exists, table)
	}

	var collation string
	err := op.Pool().QueryRow(ctx, `SELECT collation_name
		FROM information_schema.columns
		WHERE table_name = 'growth_rates' AND column_name = 'paddock_id'`,
	).Scan(&collation)
	require.NoError(t, err)
	assert.Equal(t, "C", collation)

	require.NoError(t, sm.Migrate(ctx, cfg))
}

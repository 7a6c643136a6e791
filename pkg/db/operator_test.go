package db_test

import (
	"testing"

	"github.com/skippy/farm/internal/iodb"
	"github.com/skippy/farm/pkg/db"
	"github.com/stretchr/testify/assert"
)

func TestPgxOperatorImplementsInterface(t *testing.T) {
	var op db.Operator = iodb.NewPgxOperator()
	assert.Nil(t, op.Pool())
}

package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

func TestBuildUpdate_UnaColumna(t *testing.T) {
	sql, args := buildUpdate("products",
		[]repository.ColumnValue{{Column: "status_code", Value: "active"}},
		"id", "p1")

	assert.Equal(t, "UPDATE products SET status_code = $1 WHERE id = $2", sql)
	assert.Equal(t, []any{"active", "p1"}, args)
}

func TestBuildUpdate_VariasColumnasEnOrden(t *testing.T) {
	sql, args := buildUpdate("products",
		[]repository.ColumnValue{
			{Column: "code", Value: "NEW-1"},
			{Column: "price", Value: nil},
			{Column: "updated_by", Value: "admin-1"},
		},
		"id", "p1")

	assert.Equal(t,
		"UPDATE products SET code = $1, price = $2, updated_by = $3 WHERE id = $4",
		sql)
	assert.Equal(t, []any{"NEW-1", nil, "admin-1", "p1"}, args)
}

// Un valor nil viaja como argumento y escribe NULL; la columna sigue presente
// en el SET.
func TestBuildUpdate_NilEscribeNull(t *testing.T) {
	sql, args := buildUpdate("products",
		[]repository.ColumnValue{{Column: "price", Value: nil}},
		"id", "p1")

	assert.Contains(t, sql, "price = $1")
	assert.Nil(t, args[0])
}

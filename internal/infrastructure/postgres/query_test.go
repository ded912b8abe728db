package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/stretchr/testify/assert"
)

func TestFilterWhere(t *testing.T) {
	where, args := filterWhere(repository.InterventionFilter{}, true)
	assert.Empty(t, where)
	assert.Empty(t, args)

	st := entity.StatusInProgress
	f := repository.InterventionFilter{Status: &st, Search: " dupont "}
	where, args = filterWhere(f, true)
	assert.Equal(t, " WHERE i.status = $1 AND (v.plate ILIKE $2 OR c.last_name ILIKE $2 OR c.first_name ILIKE $2 OR i.description ILIKE $2)", where)
	assert.Equal(t, []any{"En cours", "%dupont%"}, args)

	// El conteo por estado ignora el estado.
	where, args = filterWhere(f, false)
	assert.Equal(t, " WHERE (v.plate ILIKE $1 OR c.last_name ILIKE $1 OR c.first_name ILIKE $1 OR i.description ILIKE $1)", where)
	assert.Equal(t, []any{"%dupont%"}, args)
}

func TestLikePattern_EscapaComodines(t *testing.T) {
	assert.Equal(t, "%abc%", likePattern("abc"))
	assert.Equal(t, `%50\%%`, likePattern("50%"))
	assert.Equal(t, `%a\_b%`, likePattern("a_b"))
	assert.Equal(t, `%c:\\x%`, likePattern(`c:\x`))
}

func TestPgErrorCodes(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	fk := fmt.Errorf("delete: %w", &pgconn.PgError{Code: "23503"})
	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isUniqueViolation(fk))
	assert.True(t, isForeignKeyViolation(fk))
	assert.False(t, isForeignKeyViolation(errors.New("boom")))
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, isNoRows(pgx.ErrNoRows))
	assert.True(t, isNoRows(fmt.Errorf("scan: %w", pgx.ErrNoRows)))
	assert.True(t, isNoRows(&pgconn.PgError{Code: "22P02", Message: `invalid input syntax for type uuid: "abc"`}))
	assert.False(t, isNoRows(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isNoRows(errors.New("boom")))
}

func TestOnlyUUIDs(t *testing.T) {
	id := "3f2504e0-4f89-11d3-9a0c-0305e82c3301"
	assert.True(t, isUUID(id))
	assert.False(t, isUUID("abc"))
	assert.False(t, isUUID(""))
	assert.Equal(t, []string{id}, onlyUUIDs([]string{"A", id, "O1"}))
	assert.Empty(t, onlyUUIDs([]string{"nope"}))
}

func TestNullHelpers(t *testing.T) {
	assert.Nil(t, nullIfEmpty(""))
	assert.Equal(t, "x", *nullIfEmpty("x"))
	assert.Equal(t, "", derefStr(nil))
	assert.Nil(t, dateOnly(nil))
}

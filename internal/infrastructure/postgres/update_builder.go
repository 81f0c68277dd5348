package postgres

import (
	"fmt"
	"strings"
)

// updateBuilder arma sentencias UPDATE parciales: cada campo opcional presente
// agrega una cláusula SET parametrizada y el builder lleva la numeración de
// placeholders. Centraliza lo que antes era concatenación de SQL repartida
// por cada repositorio.
type updateBuilder struct {
	table string
	sets  []string
	args  []any
}

func newUpdate(table string) *updateBuilder {
	return &updateBuilder{table: table}
}

// Set agrega siempre la cláusula (para columnas obligatorias como updated_at).
func (b *updateBuilder) Set(column string, value any) *updateBuilder {
	b.args = append(b.args, value)
	b.sets = append(b.sets, fmt.Sprintf("%s = $%d", column, len(b.args)))
	return b
}

// SetRaw agrega una cláusula sin parámetro (ej. "updated_at = now()").
func (b *updateBuilder) SetRaw(clause string) *updateBuilder {
	b.sets = append(b.sets, clause)
	return b
}

// setOpt agrega la cláusula solo si el puntero no es nil (campo presente).
func setOpt[T any](b *updateBuilder, column string, v *T) {
	if v != nil {
		b.Set(column, *v)
	}
}

// Empty indica que ningún campo opcional fue provisto.
func (b *updateBuilder) Empty() bool {
	return len(b.sets) == 0
}

// SQL devuelve la sentencia y los argumentos. La condición WHERE recibe sus
// propios valores, renumerados a continuación de los SET.
func (b *updateBuilder) SQL(where string, whereArgs ...any) (string, []any) {
	cond := where
	for _, a := range whereArgs {
		b.args = append(b.args, a)
		cond = strings.Replace(cond, "?", fmt.Sprintf("$%d", len(b.args)), 1)
	}
	q := fmt.Sprintf("UPDATE %s SET %s WHERE %s", b.table, strings.Join(b.sets, ", "), cond)
	return q, b.args
}

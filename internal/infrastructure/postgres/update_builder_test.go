package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Campos opcionales presentes generan SET parametrizados en orden, y el WHERE
// renumera sus placeholders a continuación.
func TestUpdateBuilder_CamposOpcionales(t *testing.T) {
	nombre := "Ana"
	var telefono *string // ausente: no debe generar cláusula

	b := newUpdate("customers")
	setOpt(b, "nombre", &nombre)
	setOpt(b, "telefono", telefono)
	b.SetRaw("updated_at = now()")

	q, args := b.SQL("id = ?", "abc-1")
	assert.Equal(t, "UPDATE customers SET nombre = $1, updated_at = now() WHERE id = $2", q)
	require.Len(t, args, 2)
	assert.Equal(t, "Ana", args[0])
	assert.Equal(t, "abc-1", args[1])
}

func TestUpdateBuilder_SinCampos(t *testing.T) {
	var nada *int
	b := newUpdate("vehicles")
	setOpt(b, "kilometraje", nada)
	assert.True(t, b.Empty(), "sin campos presentes el builder debe reportarse vacío")
}

func TestUpdateBuilder_WhereConVariosArgs(t *testing.T) {
	activo := true
	b := newUpdate("vehicles")
	setOpt(b, "activo", &activo)

	q, args := b.SQL("id = ? AND activo = ?", "v-1", true)
	assert.Equal(t, "UPDATE vehicles SET activo = $1 WHERE id = $2 AND activo = $3", q)
	assert.Equal(t, []any{true, "v-1", true}, args)
}

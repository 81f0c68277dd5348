package postgres

import (
	"context"
	"fmt"

	"github.com/henry-diagnostics/taller-api/internal/domain/entity"
	"github.com/henry-diagnostics/taller-api/internal/domain/repository"
)

var _ repository.OpportunityNoteRepository = (*OpportunityNoteRepo)(nil)

// OpportunityNoteRepo notas de seguimiento append-only: solo INSERT y SELECT,
// no hay UPDATE ni DELETE sobre esta tabla.
type OpportunityNoteRepo struct {
	q Querier
}

// NewOpportunityNoteRepository construye el adaptador.
func NewOpportunityNoteRepository(q Querier) *OpportunityNoteRepo {
	return &OpportunityNoteRepo{q: q}
}

// Append agrega una nota de seguimiento.
func (r *OpportunityNoteRepo) Append(ctx context.Context, n *entity.OpportunityNote) error {
	query := `
		INSERT INTO opportunity_notes (id, opportunity_id, tipo_contacto, resultado, nota,
			seguimiento_fecha, usuario_creador, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		n.ID, n.OpportunityID, n.TipoContacto, n.Resultado, n.Nota,
		n.SeguimientoFecha, n.UsuarioCreador, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert opportunity note: %w", err)
	}
	return nil
}

// ListByOpportunity notas de una oportunidad, más reciente primero.
func (r *OpportunityNoteRepo) ListByOpportunity(ctx context.Context, opportunityID string) ([]*entity.OpportunityNote, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, opportunity_id, tipo_contacto, resultado, nota, seguimiento_fecha, usuario_creador, created_at
		FROM opportunity_notes WHERE opportunity_id = $1 ORDER BY created_at DESC`, opportunityID)
	if err != nil {
		return nil, fmt.Errorf("list opportunity notes: %w", err)
	}
	defer rows.Close()
	var list []*entity.OpportunityNote
	for rows.Next() {
		var n entity.OpportunityNote
		if err := rows.Scan(&n.ID, &n.OpportunityID, &n.TipoContacto, &n.Resultado, &n.Nota,
			&n.SeguimientoFecha, &n.UsuarioCreador, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan opportunity note: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/masonbass/retail-api/internal/domain"
	"github.com/masonbass/retail-api/internal/domain/entity"
	"github.com/masonbass/retail-api/internal/domain/repository"
)

var _ repository.CallEventRepository = (*CallEventRepo)(nil)

const callEventColumns = `id, agent_name, caller_name, caller_number, call_source, product_of_interest, customer_location,
	reason_for_call, action, follow_up_needed, follow_up_date, call_status, follow_up_stage, created_at, updated_at`

// CallEventRepo registro de llamadas.
type CallEventRepo struct {
	q Querier
}

// NewCallEventRepository construye el adaptador.
func NewCallEventRepository(q Querier) *CallEventRepo {
	return &CallEventRepo{q: q}
}

func scanCallEvent(row pgx.Row) (*entity.CallEvent, error) {
	var ev entity.CallEvent
	err := row.Scan(
		&ev.ID, &ev.AgentName, &ev.CallerName, &ev.CallerNumber, &ev.CallSource, &ev.ProductOfInterest,
		&ev.CustomerLocation, &ev.ReasonForCall, &ev.Action, &ev.FollowUpNeeded, &ev.FollowUpDate,
		&ev.CallStatus, &ev.FollowUpStage, &ev.CreatedAt, &ev.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

// Create persiste el registro.
func (r *CallEventRepo) Create(ctx context.Context, ev *entity.CallEvent) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO call_events (`+callEventColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		ev.ID, ev.AgentName, ev.CallerName, ev.CallerNumber, ev.CallSource, ev.ProductOfInterest,
		ev.CustomerLocation, ev.ReasonForCall, ev.Action, ev.FollowUpNeeded, ev.FollowUpDate,
		ev.CallStatus, ev.FollowUpStage, ev.CreatedAt, ev.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert call event: %w", err)
	}
	return nil
}

// GetByID obtiene un registro.
func (r *CallEventRepo) GetByID(ctx context.Context, id string) (*entity.CallEvent, error) {
	ev, err := scanCallEvent(r.q.QueryRow(ctx, `SELECT `+callEventColumns+` FROM call_events WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get call event: %w", err)
	}
	return ev, nil
}

// Update persiste todos los campos editables.
func (r *CallEventRepo) Update(ctx context.Context, ev *entity.CallEvent) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE call_events SET agent_name = $2, caller_name = $3, caller_number = $4, call_source = $5,
			product_of_interest = $6, customer_location = $7, reason_for_call = $8, action = $9,
			follow_up_needed = $10, follow_up_date = $11, call_status = $12, follow_up_stage = $13, updated_at = $14
		WHERE id = $1`,
		ev.ID, ev.AgentName, ev.CallerName, ev.CallerNumber, ev.CallSource, ev.ProductOfInterest,
		ev.CustomerLocation, ev.ReasonForCall, ev.Action, ev.FollowUpNeeded, ev.FollowUpDate,
		ev.CallStatus, ev.FollowUpStage, ev.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update call event: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el registro.
func (r *CallEventRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM call_events WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete call event: %w", err)
	}
	return nil
}

// List registros más recientes primero.
func (r *CallEventRepo) List(ctx context.Context, limit, offset int) ([]*entity.CallEvent, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+callEventColumns+` FROM call_events ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`,
		limitOrAll(limit), offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list call events: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.CallEvent, 0)
	for rows.Next() {
		ev, err := scanCallEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan call event: %w", err)
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

// Count total de registros.
func (r *CallEventRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM call_events`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count call events: %w", err)
	}
	return n, nil
}

package statemachine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
	"github.com/projectdesk/projectdesk-api/internal/models"
)

// EstimateFSM wraps an estimate with its state machine. Approved and
// Rejected are terminal; Change Requested leads to a new draft version
// rather than further transitions on the same row.
type EstimateFSM struct {
	estimate *models.Estimate
	fsm      *fsm.FSM
}

// NewEstimateFSM creates a new estimate state machine
func NewEstimateFSM(estimate *models.Estimate) *EstimateFSM {
	efsm := &EstimateFSM{
		estimate: estimate,
	}

	efsm.fsm = fsm.NewFSM(
		estimate.Status,
		fsm.Events{
			// Pending → Approved
			{Name: "approve", Src: []string{models.EstimateStatusPending}, Dst: models.EstimateStatusApproved},

			// Pending → Rejected
			{Name: "reject", Src: []string{models.EstimateStatusPending}, Dst: models.EstimateStatusRejected},

			// Pending → Change Requested (requires a comment)
			{Name: "request_change", Src: []string{models.EstimateStatusPending}, Dst: models.EstimateStatusChangeRequested},
		},
		fsm.Callbacks{},
	)

	return efsm
}

// Approve transitions the estimate to Approved
func (e *EstimateFSM) Approve(ctx context.Context) error {
	if !e.estimate.MayApprove() {
		return fmt.Errorf("estimate cannot be approved in current state: %s", e.estimate.Status)
	}

	if err := e.fsm.Event(ctx, "approve"); err != nil {
		return fmt.Errorf("failed to approve estimate: %w", err)
	}

	e.estimate.Status = e.fsm.Current()
	return nil
}

// Reject transitions the estimate to Rejected
func (e *EstimateFSM) Reject(ctx context.Context) error {
	if !e.estimate.MayReject() {
		return fmt.Errorf("estimate cannot be rejected in current state: %s", e.estimate.Status)
	}

	if err := e.fsm.Event(ctx, "reject"); err != nil {
		return fmt.Errorf("failed to reject estimate: %w", err)
	}

	e.estimate.Status = e.fsm.Current()
	return nil
}

// RequestChange transitions the estimate to Change Requested and records the
// mandatory reviewer comment on it.
func (e *EstimateFSM) RequestChange(ctx context.Context, comment string) error {
	if comment == "" {
		return fmt.Errorf("change request requires a comment")
	}
	if !e.estimate.MayRequestChange() {
		return fmt.Errorf("change cannot be requested in current state: %s", e.estimate.Status)
	}

	if err := e.fsm.Event(ctx, "request_change"); err != nil {
		return fmt.Errorf("failed to request change: %w", err)
	}

	e.estimate.Status = e.fsm.Current()
	e.estimate.ChangeComment = &comment
	return nil
}

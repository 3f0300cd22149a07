package platform

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/aretw0/formpost/pkg/core"
)

// SubmitResult is the outcome of a form submission.
type SubmitResult struct {
	ID        int64
	RequestID string
	// Residual is the submission after the save hooks ran: the fields that
	// went to the generic metadata path.
	Residual *core.Submission
}

// Submit runs the save pipeline for one form submission: the save hooks
// (which may consume fields and update the record), then the generic
// metadata path for what is left. sub is consumed in place.
func (p *Plugin) Submit(ctx context.Context, id int64, sub *core.Submission) (SubmitResult, error) {
	if id <= 0 {
		return SubmitResult{}, fmt.Errorf("%w: %d", core.ErrInvalidRecordID, id)
	}
	if sub == nil {
		sub = core.NewSubmission()
	}

	reqID := uuid.NewString()
	logger := p.logger
	if logger != nil {
		logger = logger.With("request_id", reqID, "record", id)
		logger.Debug("submission received", "fields", sub.Keys())
	}

	if _, ok := ctx.Value(core.ChangeReasonKey).(string); !ok {
		ctx = core.WithChangeReason(ctx, fmt.Sprintf("update record %d (request %s)", id, reqID))
	}

	outID, err := p.hooks.Save(ctx, id, sub)
	if err != nil {
		if logger != nil {
			logger.Error("save hooks failed", "error", err)
		}
		return SubmitResult{ID: id, RequestID: reqID, Residual: sub}, err
	}

	if p.meta != nil && !sub.Empty() {
		if err := p.meta.SaveFields(ctx, outID, sub); err != nil {
			return SubmitResult{ID: outID, RequestID: reqID, Residual: sub}, fmt.Errorf("save fields of record %d: %w", outID, err)
		}
	}

	if logger != nil {
		logger.Debug("submission saved", "residual", sub.Keys())
	}
	return SubmitResult{ID: outID, RequestID: reqID, Residual: sub}, nil
}

package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/custodia-labs/consolidator/internal/core/domain"
	"github.com/custodia-labs/consolidator/internal/core/ports/driven"
	"github.com/custodia-labs/consolidator/internal/logger"
)

// Failure reasons reported per site.
const (
	reasonSlotNotFound     = "slot not found"
	reasonConsumerNotFound = "consumer not found"
	reasonUnknownMaster    = "master asset unknown"
)

// Executor applies rewrite plans through ConsumerReflection.
type Executor struct {
	reflection driven.ConsumerReflection
	log        zerolog.Logger
}

// NewExecutor creates an executor writing through reflection.
func NewExecutor(reflection driven.ConsumerReflection) *Executor {
	return &Executor{
		reflection: reflection,
		log:        logger.Logger("executor"),
	}
}

// Execute applies each operation independently. A failed site is left
// untouched and recorded; it never stops its siblings. When ctx is
// cancelled execution stops after the current site and the rest of the
// plan is reported as skipped. The caller must rebuild any usage index
// afterwards.
func (e *Executor) Execute(ctx context.Context, plan *domain.RewritePlan, catalog *domain.Catalog) *domain.RewriteReport {
	report := &domain.RewriteReport{Total: plan.Len()}
	if plan == nil {
		return report
	}

	for i, op := range plan.Ops {
		if ctx.Err() != nil {
			report.Skipped = append(report.Skipped, plan.Ops[i:]...)
			e.log.Warn().Int("skipped", len(plan.Ops)-i).Msg("execution cancelled")
			break
		}

		if reason := e.apply(ctx, op, catalog); reason != "" {
			report.Failures = append(report.Failures, domain.RewriteFailure{Op: op, Reason: reason})
			e.log.Warn().Str("site", op.Site.String()).Str("reason", reason).Msg("rewrite failed")
			continue
		}
		report.Applied = append(report.Applied, op)
		e.log.Debug().Str("site", op.Site.String()).Str("from", string(op.From)).Str("to", string(op.To)).Msg("rewrite applied")
	}
	return report
}

// apply performs one rewrite and returns a failure reason, or "" on success.
func (e *Executor) apply(ctx context.Context, op domain.RewriteOp, catalog *domain.Catalog) string {
	master, ok := catalog.Get(op.To)
	if !ok {
		return reasonUnknownMaster
	}

	props, err := e.reflection.ListPropertySlots(ctx, op.Site.Consumer)
	if err != nil {
		return failureReason(err)
	}
	if !containsProperty(props, op.Site.Property) {
		return reasonSlotNotFound
	}

	if err := e.reflection.SetSlot(ctx, op.Site.Consumer, op.Site.Property, master.Ref); err != nil {
		return failureReason(err)
	}
	return ""
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrSlotNotFound):
		return reasonSlotNotFound
	case errors.Is(err, domain.ErrConsumerNotFound):
		return reasonConsumerNotFound
	default:
		return err.Error()
	}
}

func containsProperty(props []domain.PropertyName, prop domain.PropertyName) bool {
	for _, p := range props {
		if p == prop {
			return true
		}
	}
	return false
}

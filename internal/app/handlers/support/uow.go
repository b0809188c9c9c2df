package support

import (
	"context"

	"renteasy/internal/app/uow"
)

// BeginUnit resolves the ambient unit of work or begins a local one. The
// returned settle func must be called with the handler's final error: a
// locally begun unit commits on nil and rolls back otherwise, an ambient
// unit is left for its owner (the transaction middleware) to finish.
func BeginUnit(ctx context.Context, factory uow.Factory) (uow.UnitOfWork, context.Context, func(error) error, error) {
	if unit, ok := uow.FromContext(ctx); ok {
		return unit, ctx, func(err error) error { return err }, nil
	}
	if factory == nil {
		return nil, ctx, nil, uow.ErrUnitOfWorkMissing
	}
	unit, err := factory.Begin(ctx, uow.TxOptions{})
	if err != nil {
		return nil, ctx, nil, err
	}
	execCtx := injectContext(ctx, unit)
	settle := func(err error) error {
		if err != nil {
			_ = unit.Rollback(execCtx)
			return err
		}
		return unit.Commit(execCtx)
	}
	return unit, execCtx, settle, nil
}

// BeginReadOnlyUnit resolves the ambient unit of work or begins a read-only
// one; release is always safe to defer.
func BeginReadOnlyUnit(ctx context.Context, factory uow.Factory) (uow.UnitOfWork, context.Context, func(), error) {
	if unit, ok := uow.FromContext(ctx); ok {
		return unit, ctx, func() {}, nil
	}
	if factory == nil {
		return nil, ctx, nil, uow.ErrUnitOfWorkMissing
	}
	unit, err := factory.Begin(ctx, uow.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, ctx, nil, err
	}
	execCtx := injectContext(ctx, unit)
	release := func() { _ = unit.Rollback(execCtx) }
	return unit, execCtx, release, nil
}

func injectContext(ctx context.Context, unit uow.UnitOfWork) context.Context {
	if injector, ok := unit.(interface {
		InjectContext(context.Context) context.Context
	}); ok {
		ctx = injector.InjectContext(ctx)
	}
	return uow.ContextWithUnitOfWork(ctx, unit)
}

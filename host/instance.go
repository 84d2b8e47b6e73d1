package host

import (
	"context"
	"sync"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/wasm-counter/errors"
)

// Instance is a running counter module.
//
// wazero module instances are not safe for concurrent calls, so Instance
// serializes them; an Instance may be shared between goroutines.
type Instance struct {
	module     api.Module
	increment  api.Function
	getCounter api.Function
	logger     *zap.Logger
	stack      [1]uint64
	mu         sync.Mutex
}

// Increment calls the increment export.
func (i *Instance) Increment(ctx context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if err := i.ready(); err != nil {
		return err
	}
	if err := i.increment.CallWithStack(ctx, i.stack[:]); err != nil {
		return errors.CallFailed(exportIncrement, err)
	}
	i.logger.Debug(exportIncrement)
	return nil
}

// GetCounter calls the get_counter export and returns its value.
func (i *Instance) GetCounter(ctx context.Context) (int32, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if err := i.ready(); err != nil {
		return 0, err
	}
	if err := i.getCounter.CallWithStack(ctx, i.stack[:]); err != nil {
		return 0, errors.CallFailed(exportGetCounter, err)
	}
	v := api.DecodeI32(i.stack[0])
	i.logger.Debug(exportGetCounter, zap.Int32("value", v))
	return v, nil
}

func (i *Instance) ready() error {
	if i.module == nil || i.module.IsClosed() {
		return errors.NotInitialized("instance")
	}
	return nil
}

// Close tears the instance down; its counter is gone afterwards.
func (i *Instance) Close(ctx context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.module == nil {
		return nil
	}
	err := i.module.Close(ctx)
	i.logger.Debug("instance closed")
	return err
}

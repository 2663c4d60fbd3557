package sync

import (
	"context"
	"fmt"

	"github.com/ezraisw/scenecall/adapter"
	"github.com/ezraisw/scenecall/adapter/util/mutex"
)

type syncMutexLocker struct {
	mm *mutex.MultiMutex
}

func NewLocker() mutex.Locker {
	return &syncMutexLocker{
		mm: mutex.NewMultiMutex(NewMutexFactory()),
	}
}

func (lr syncMutexLocker) Obtain(ctx context.Context, key string) (mutex.Lock, error) {
	if err := lr.mm.Lock(ctx, key); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", adapter.ErrFailedLock, key, err)
	}

	return &syncMutexLock{
		mm:  lr.mm,
		key: key,
	}, nil
}

type syncMutexLock struct {
	mm  *mutex.MultiMutex
	key string
}

func (l syncMutexLock) Release(ctx context.Context) error {
	if err := l.mm.Unlock(ctx, l.key); err != nil {
		return fmt.Errorf("%w: %s: %v", adapter.ErrFailedUnlock, l.key, err)
	}
	return nil
}

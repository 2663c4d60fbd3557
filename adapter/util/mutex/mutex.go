package mutex

import "context"

type MutexFactory interface {
	Make(key string) Mutex
}

// Mutex is a lock whose acquisition can be abandoned through ctx.
type Mutex interface {
	Lock(ctx context.Context) error
	Unlock(ctx context.Context) error
}

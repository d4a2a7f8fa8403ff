package document

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"pet-care-log/internal/ports/storage"
)

// doc cachea un documento completo decodificado. El valor cacheado es
// inmutable: cada escritura construye uno nuevo y solo lo publica después
// de que el backend confirmó el Save.
type doc[T any] struct {
	session *Session
	name    string

	empty  func() T
	decode func([]byte) (T, error)
	encode func(T) ([]byte, error)

	cache atomic.Pointer[T]
	mu    sync.Mutex // serializa cargas y escrituras
}

func (d *doc[T]) read(ctx context.Context) (T, error) {
	if v := d.cache.Load(); v != nil {
		return *v, nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loadLocked(ctx)
}

// mutate aplica fn sobre el valor actual y persiste el resultado completo.
// fn no debe modificar su argumento.
func (d *doc[T]) mutate(ctx context.Context, fn func(cur T) (T, error)) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	cur, err := d.loadLocked(ctx)
	if err != nil {
		return err
	}

	next, err := fn(cur)
	if err != nil {
		return err
	}

	body, err := d.encode(next)
	if err != nil {
		return fmt.Errorf("encode %s: %w", d.name, err)
	}

	start := time.Now()
	err = d.session.store.Save(ctx, d.name, body)
	d.session.observe(d.name, "save", err, start)
	if err != nil {
		return fmt.Errorf("save %s: %w", d.name, err)
	}

	d.cache.Store(&next)
	return nil
}

func (d *doc[T]) loadLocked(ctx context.Context) (T, error) {
	if v := d.cache.Load(); v != nil {
		return *v, nil
	}

	start := time.Now()
	body, err := d.session.store.Load(ctx, d.name)
	if errors.Is(err, storage.ErrNotExist) {
		d.session.observe(d.name, "load", nil, start)
		v := d.empty()
		d.cache.Store(&v)
		return v, nil
	}
	d.session.observe(d.name, "load", err, start)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("load %s: %w", d.name, err)
	}

	v, err := d.decode(body)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("decode %s: %w", d.name, err)
	}
	d.cache.Store(&v)
	return v, nil
}

func (d *doc[T]) reset() {
	d.cache.Store(nil)
}

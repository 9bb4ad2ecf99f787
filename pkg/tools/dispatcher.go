package tools

import (
	"context"
	"log"
)

// TaskFunc is a unit of background work.
type TaskFunc func(ctx context.Context) error

// Dispatch runs the task in its own goroutine, fire-and-forget. Failures
// only reach the log: nothing upstream waits for these.
func Dispatch(ctx context.Context, name string, fn TaskFunc) {
	go func() {
		if err := fn(ctx); err != nil {
			log.Printf("[WARN] tarea %s falló: %v", name, err)
		}
	}()
}

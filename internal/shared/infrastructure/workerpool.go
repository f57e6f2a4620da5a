package infrastructure

import (
	"context"
	"errors"
	"sync"
)

// ErrPoolStopped le pool n'accepte plus de tâches
var ErrPoolStopped = errors.New("worker pool is stopped")

// Task représente une tâche à exécuter
type Task func(ctx context.Context) error

// WorkerPool gère un pool de workers pour traiter des tâches en parallèle.
// La première erreur annule le contexte partagé et est retournée par Wait.
type WorkerPool struct {
	workerCount int
	tasks       chan Task
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc

	errOnce  sync.Once
	firstErr error
	closed   sync.Once
}

// NewWorkerPool crée un nouveau pool de workers rattaché à ctx
func NewWorkerPool(ctx context.Context, workerCount int) *WorkerPool {
	if workerCount <= 0 {
		workerCount = 1
	}
	ctx, cancel := context.WithCancel(ctx)
	return &WorkerPool{
		workerCount: workerCount,
		tasks:       make(chan Task, workerCount*2),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// worker est la routine d'exécution des tâches
func (wp *WorkerPool) worker() {
	defer wp.wg.Done()

	for {
		select {
		case <-wp.ctx.Done():
			return
		case task, ok := <-wp.tasks:
			if !ok {
				return
			}
			if err := task(wp.ctx); err != nil {
				wp.errOnce.Do(func() {
					wp.firstErr = err
					wp.cancel()
				})
			}
		}
	}
}

// Start démarre les workers
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.workerCount; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}
}

// Submit soumet une tâche au pool
func (wp *WorkerPool) Submit(task Task) error {
	if wp.ctx.Err() != nil {
		return ErrPoolStopped
	}
	select {
	case <-wp.ctx.Done():
		return ErrPoolStopped
	case wp.tasks <- task:
		return nil
	}
}

// Wait ferme la file, attend la fin des workers et retourne la première erreur
func (wp *WorkerPool) Wait() error {
	wp.closed.Do(func() { close(wp.tasks) })
	wp.wg.Wait()
	wp.cancel()
	return wp.firstErr
}

// Stop arrête le pool immédiatement
func (wp *WorkerPool) Stop() {
	wp.cancel()
	wp.wg.Wait()
}

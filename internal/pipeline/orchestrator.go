package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/pdfindex/internal/chunker"
	"github.com/dgallion1/pdfindex/internal/config"
	"github.com/dgallion1/pdfindex/internal/extract"
	"github.com/dgallion1/pdfindex/internal/reconcile"
)

// Orchestrator manages the document indexing pipeline.
type Orchestrator struct {
	jobs   *JobStore
	queue  chan *Job
	gemini *extract.GeminiClient
	log    *slog.Logger
	cfg    config.Config

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates the pipeline; call Start to launch workers.
func NewOrchestrator(cfg config.Config, gemini *extract.GeminiClient, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		jobs:   NewJobStore(cfg.JobTTL),
		queue:  make(chan *Job, cfg.MaxQueueSize),
		gemini: gemini,
		log:    log,
		cfg:    cfg,
	}
}

// ChunkConfig derives the chunker settings from the service config.
func ChunkConfig(cfg config.Config) chunker.Config {
	c := chunker.DefaultConfig()
	c.MaxPages = cfg.MaxChunkPages
	c.OverlapPages = cfg.OverlapPages
	return c
}

// ReconcileConfig derives the engine settings from the service config.
func ReconcileConfig(cfg config.Config) reconcile.Config {
	return reconcile.Config{
		SimilarityThreshold: cfg.SimilarityThreshold,
		PageTolerance:       cfg.PageTolerance,
		MinTitleRunes:       cfg.MinTitleRunes,
		MaxTitleRunes:       cfg.MaxTitleRunes,
		MinConfidence:       reconcile.DefaultConfig().MinConfidence,
		MaxLevel:            cfg.MaxOutlineLevel,
	}
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for range o.cfg.WorkerCount {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			w := NewWorker(o.gemini, o.log, ChunkConfig(o.cfg), ReconcileConfig(o.cfg), o.cfg.MaxConcurrentExtract, o.cfg.TextFallback)
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					w.Process(workerCtx, job)
				}
			}
		}()
	}

	// Start job store cleanup.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	close(o.queue)
	o.wg.Wait()
}

// Submit queues a new job for processing.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	default:
		job.SetStatus(StatusFailed, "queue_full")
		return fmt.Errorf("job queue is full (%d)", o.cfg.MaxQueueSize)
	}
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

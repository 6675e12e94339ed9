package format

import (
	"runtime"
	"sync"

	"codepack/pkg/locator"
	"codepack/pkg/reader"

	"go.uber.org/zap"
)

// readAll reads every entry and returns the results in entry order.
func (f *Formatter) readAll(entries []locator.FileEntry) []reader.Result {
	results := make([]reader.Result, len(entries))

	workers := f.workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(entries) {
		workers = len(entries)
	}
	if workers <= 1 {
		for i, entry := range entries {
			results[i] = f.reader.Read(entry.AbsolutePath)
		}
		return results
	}

	jobs := make(chan int, len(entries))
	var wg sync.WaitGroup

	f.logger.Debug("Initializing worker pool", zap.Int("workers", workers))
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go f.worker(w, entries, jobs, results, &wg)
	}

	for i := range entries {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// worker reads the entries whose indexes arrive on jobs. Each index is
// written by exactly one worker.
func (f *Formatter) worker(id int, entries []locator.FileEntry, jobs <-chan int, results []reader.Result, wg *sync.WaitGroup) {
	defer wg.Done()
	for i := range jobs {
		results[i] = f.reader.Read(entries[i].AbsolutePath)
	}
	f.logger.Debug("Worker finished processing", zap.Int("workerID", id))
}

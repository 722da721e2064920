package convert

import (
	"fmt"
	"io"
	"runtime"
	"sync"
)

// BatchOptions controls how RunAll schedules jobs and handles failures.
type BatchOptions struct {
	// Parallel enables concurrent conversion.
	Parallel bool

	// Workers is the number of converting goroutines. If 0, defaults to
	// runtime.NumCPU(). Only used when Parallel is true.
	Workers int

	// SkipErrors keeps going when a job fails. Failed jobs are left out of
	// the results and their errors collected. When false, the first error
	// stops the batch.
	SkipErrors bool

	// Progress is called after each job finishes, successfully or not.
	Progress func(done, total int)

	// ErrorLog receives one line per failed job when set.
	ErrorLog io.Writer
}

// DefaultBatchOptions returns batch options with defaults
func DefaultBatchOptions() BatchOptions {
	return BatchOptions{
		Parallel:   true,
		Workers:    runtime.NumCPU(),
		SkipErrors: true,
	}
}

// RunAll runs every job and returns the results of the successful ones in
// job order. Jobs must write to distinct outputs.
//
// Example:
//
//	results, errs := c.RunAll(jobs, convert.BatchOptions{
//	    Parallel:   true,
//	    SkipErrors: true,
//	    Progress: func(done, total int) {
//	        fmt.Printf("\rConverting: %d/%d", done, total)
//	    },
//	    ErrorLog: os.Stderr,
//	})
func (c *Converter) RunAll(jobs []Job, opts BatchOptions) ([]*Result, []error) {
	if len(jobs) == 0 {
		return nil, nil
	}

	if !opts.Parallel {
		return c.runSerial(jobs, opts)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}

	type jobResult struct {
		index  int
		result *Result
		err    error
	}

	queue := make(chan int, len(jobs))
	results := make(chan jobResult, len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range queue {
				result, err := c.Run(jobs[index])
				results <- jobResult{index: index, result: result, err: err}
			}
		}()
	}

	for i := range jobs {
		queue <- i
	}
	close(queue)

	go func() {
		wg.Wait()
		close(results)
	}()

	byIndex := make(map[int]*Result)
	var errs []error
	done := 0
	failed := false

	// keep draining after a failure so the workers can exit
	for r := range results {
		done++
		if opts.Progress != nil {
			opts.Progress(done, len(jobs))
		}
		if failed {
			continue
		}

		if r.err != nil {
			err := c.jobError(jobs[r.index], r.err, opts)
			errs = append(errs, err)
			if !opts.SkipErrors {
				failed = true
			}
			continue
		}
		byIndex[r.index] = r.result
	}

	if failed {
		return nil, errs
	}

	ordered := make([]*Result, 0, len(byIndex))
	for i := range jobs {
		if r, ok := byIndex[i]; ok {
			ordered = append(ordered, r)
		}
	}
	return ordered, errs
}

// runSerial runs jobs one at a time (fallback when Parallel=false)
func (c *Converter) runSerial(jobs []Job, opts BatchOptions) ([]*Result, []error) {
	results := make([]*Result, 0, len(jobs))
	var errs []error

	for i, job := range jobs {
		result, err := c.Run(job)
		if opts.Progress != nil {
			opts.Progress(i+1, len(jobs))
		}
		if err != nil {
			err = c.jobError(job, err, opts)
			if !opts.SkipErrors {
				return nil, []error{err}
			}
			errs = append(errs, err)
			continue
		}
		results = append(results, result)
	}

	return results, errs
}

func (c *Converter) jobError(job Job, err error, opts BatchOptions) error {
	err = fmt.Errorf("%s: %w", job.Input, err)
	if opts.ErrorLog != nil {
		fmt.Fprintf(opts.ErrorLog, "Error converting: %v\n", err)
	}
	return err
}

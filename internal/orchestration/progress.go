package orchestration

import (
	"time"

	"github.com/agbru/hashrace/internal/search"
)

const (
	// sampleInterval is the period between two progress samples.
	sampleInterval = 100 * time.Millisecond
	// progressBuffer bounds the samples queued for a slow reporter. Samples
	// beyond it are dropped, never blocking the sampler.
	progressBuffer = 16
)

// sampler periodically publishes the counters of a running search.
type sampler struct {
	base     ProgressUpdate
	progress *search.Progress
	out      chan<- ProgressUpdate
	stop     chan struct{}
	done     chan struct{}
}

// startSampler begins sampling p every interval into out. The first sample
// is sent immediately so reporters can show the run before the first tick.
func startSampler(base ProgressUpdate, p *search.Progress, out chan<- ProgressUpdate, interval time.Duration) *sampler {
	s := &sampler{
		base:     base,
		progress: p,
		out:      out,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go s.loop(time.Now(), interval)
	return s
}

func (s *sampler) loop(start time.Time, interval time.Duration) {
	defer close(s.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.publish(start)
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.publish(start)
		}
	}
}

func (s *sampler) publish(start time.Time) {
	u := s.base
	u.Scanned = s.progress.Total()
	u.Elapsed = time.Since(start)
	select {
	case s.out <- u:
	default:
	}
}

// Stop ends sampling and waits for the sampler goroutine to exit. After
// Stop returns nothing else is sent on the output channel.
func (s *sampler) Stop() {
	close(s.stop)
	<-s.done
}

package autosync

import (
	"log"
	"math/rand"
	"sync"
	"time"
)

const jitterMaxSec = 10

// Refresher pulls authoritative task state back into the local cache.
type Refresher interface {
	Refresh(projectID string) error
}

// Notifier receives refresh failures.
type Notifier interface {
	NotifyError(err error)
}

// Service periodically reconciles the whole task cache against the backend.
// Failures are logged and notified, never fatal; the optimistic local state
// simply survives until the next round succeeds.
type Service struct {
	refresher Refresher
	notify    Notifier
	interval  time.Duration
	debug     bool

	stop chan struct{}
	wg   sync.WaitGroup
}

func NewService(r Refresher, n Notifier, interval time.Duration, debug bool) *Service {
	return &Service{
		refresher: r,
		notify:    n,
		interval:  interval,
		debug:     debug,
		stop:      make(chan struct{}),
	}
}

func (s *Service) Start() {
	s.wg.Add(1)
	go s.run()
}

func (s *Service) Stop() {
	close(s.stop)
	s.wg.Wait()
}

func (s *Service) run() {
	defer func() {
		s.debugf("refresh worker died")
		s.wg.Done()
	}()
	for {
		if err := s.refresher.Refresh(""); err != nil {
			log.Println("task refresh failed:", err)
			if s.notify != nil {
				s.notify.NotifyError(err)
			}
		} else {
			s.debugf("task refresh completed")
		}

		// jitter keeps a fleet of clients from stampeding the backend
		sleep := s.interval + time.Duration(rand.Int63n(jitterMaxSec))*time.Second
		select {
		case <-s.stop:
			return
		case <-time.After(sleep):
		}
	}
}

func (s *Service) debugf(format string, v ...interface{}) {
	if s.debug {
		log.Printf(format, v...)
	}
}

package progrock

import (
	"sync"

	"github.com/vito/progrock"
	"go.trai.ch/relink/internal/core/ports"
)

var _ progrock.Writer = (*Summary)(nil)

// Summary is a progrock.Writer that logs every vertex once it completes.
type Summary struct {
	logger ports.Logger

	mu   sync.Mutex
	done map[string]struct{}
}

// NewSummary creates a new Summary logging to logger.
func NewSummary(logger ports.Logger) *Summary {
	return &Summary{logger: logger, done: make(map[string]struct{})}
}

// WriteStatus logs the vertices the update completes.
func (s *Summary) WriteStatus(update *progrock.StatusUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range update.Vertexes {
		if v.Completed == nil {
			continue
		}
		if _, seen := s.done[v.Id]; seen {
			continue
		}
		s.done[v.Id] = struct{}{}

		switch {
		case v.Error != nil:
			s.logger.Warn(v.Name+" failed", "error", *v.Error)
		case v.Cached:
			s.logger.Info(v.Name + " unchanged")
		default:
			s.logger.Info(v.Name + " done")
		}
	}
	return nil
}

// Close does nothing; Summary holds no resources.
func (s *Summary) Close() error {
	return nil
}

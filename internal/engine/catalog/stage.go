package catalog

import (
	"go.trai.ch/relink/internal/core/domain"
	"go.trai.ch/relink/internal/engine/pass"
)

// StageName is the name of the catalog stage.
const StageName = "catalog"

// Stage records the non-primary resources of every module and appends one
// catalog resource per module. Stale catalogs in the input are dropped.
type Stage struct {
	anchor string
}

var _ pass.Stage = (*Stage)(nil)

// NewStage creates a catalog stage whose target platform is taken from the anchor module.
func NewStage(anchor string) *Stage {
	return &Stage{anchor: anchor}
}

// Name returns StageName.
func (s *Stage) Name() string {
	return StageName
}

// Start determines the target platform and opens a fresh accumulator for the pass.
func (s *Stage) Start(pool *domain.Pool) (pass.Run, error) {
	platform, err := pool.TargetPlatform(s.anchor)
	if err != nil {
		return nil, err
	}
	acc := NewAccumulator()
	return &stageRun{classifier: NewClassifier(platform, acc), acc: acc}, nil
}

type stageRun struct {
	classifier *Classifier
	acc        *Accumulator
}

func (r *stageRun) Visit(entry domain.ResourceEntry) (bool, error) {
	decision, err := r.classifier.Classify(entry)
	if err != nil {
		return false, err
	}
	return decision != Drop, nil
}

func (r *stageRun) Finish() ([]domain.ResourceEntry, error) {
	return Emit(r.acc)
}

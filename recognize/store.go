package recognize

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/unistroke/core"
	"github.com/poiesic/unistroke/geometry"
)

// State is the lifecycle state of a Store.
type State int

const (
	// StateUnloaded means no templates have been loaded.
	StateUnloaded State = iota
	// StateLoading means Load is preprocessing templates.
	StateLoading
	// StateReady means the collection is complete and may be queried.
	StateReady
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Store holds the normalized template collection and classifies strokes
// against it.
type Store struct {
	mu        sync.RWMutex
	state     State
	templates []*core.Template

	pool                 *ants.Pool
	numPoints            int
	maxPoints            int
	orientationSensitive bool
	monitor              Monitor
	logger               *slog.Logger
}

// NewStore creates an unloaded template store.
func NewStore(opts ...Option) (*Store, error) {
	// Default pool size
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	s := &Store{
		state:     StateUnloaded,
		pool:      pool,
		numPoints: DefaultNumPoints,
		maxPoints: DefaultMaxPoints,
		monitor:   &noopMonitor{},
		logger:    slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(s); optErr != nil {
			s.Release()
			return nil, optErr
		}
	}

	s.logger = s.logger.With("component", "template-store")
	return s, nil
}

// Load preprocesses raw templates and makes the store Ready.
// Template order is preserved. If any template fails, the store returns to
// Unloaded with no templates and the first failure (in input order) is
// returned. A store can only be loaded once.
func (s *Store) Load(ctx context.Context, raws ...*core.RawTemplate) error {
	s.mu.Lock()
	if s.state != StateUnloaded {
		state := s.state
		s.mu.Unlock()
		return fmt.Errorf("%w: store is %s", core.ErrAlreadyLoaded, state)
	}
	s.state = StateLoading
	s.mu.Unlock()

	s.logger.Debug("loading templates", "templates", len(raws), "numPoints", s.numPoints)
	templates, err := s.prepareAll(ctx, raws)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.logger.Error("error loading templates", "err", err)
		s.state = StateUnloaded
		s.templates = nil
		return err
	}

	s.templates = templates
	s.state = StateReady
	s.logger.Info("templates loaded", "templates", len(templates))
	return nil
}

// prepareAll vectorizes every raw template on the worker pool. Results land
// in index slots so the output order matches raws.
func (s *Store) prepareAll(ctx context.Context, raws []*core.RawTemplate) ([]*core.Template, error) {
	templates := make([]*core.Template, len(raws))
	errs := make([]error, len(raws))

	var wg sync.WaitGroup
	for i, raw := range raws {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, err
		}

		wg.Add(1)
		err := s.pool.Submit(func() {
			defer wg.Done()
			templates[i], errs[i] = s.prepareTemplate(raw)
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return nil, err
		}
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return templates, nil
}

func (s *Store) prepareTemplate(raw *core.RawTemplate) (*core.Template, error) {
	if raw == nil {
		return nil, ErrNilTemplate
	}
	if err := core.ValidateRawTemplate(raw, s.maxPoints); err != nil {
		return nil, err
	}

	vector, err := geometry.Vectorize(raw.Points, s.numPoints, s.orientationSensitive)
	if err != nil {
		return nil, fmt.Errorf("template %q: %w", raw.Name, err)
	}

	id := raw.Id
	if id == 0 {
		id = core.IDFromTemplate(raw.Name, raw.Points)
	}
	return &core.Template{Id: id, Name: raw.Name, Vector: vector}, nil
}

// Preprocess validates a raw query stroke and vectorizes it with the
// store's settings.
func (s *Store) Preprocess(points core.Stroke) (core.Stroke, error) {
	if err := core.ValidateStroke(points, s.maxPoints); err != nil {
		return nil, err
	}
	return geometry.Vectorize(points, s.numPoints, s.orientationSensitive)
}

// Recognize preprocesses a raw stroke and classifies it against the loaded
// templates.
func (s *Store) Recognize(points core.Stroke) (*core.Result, error) {
	templates, err := s.readyTemplates()
	if err != nil {
		return nil, err
	}

	query, err := s.Preprocess(points)
	if err != nil {
		return nil, err
	}
	return ClassifyWithMonitor(query, templates, s.monitor)
}

// Classify classifies an already normalized stroke against the loaded
// templates.
func (s *Store) Classify(query core.Stroke) (*core.Result, error) {
	templates, err := s.readyTemplates()
	if err != nil {
		return nil, err
	}
	return ClassifyWithMonitor(query, templates, s.monitor)
}

func (s *Store) readyTemplates() ([]*core.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state != StateReady {
		return nil, fmt.Errorf("%w: store is %s", core.ErrNotReady, s.state)
	}
	return s.templates, nil
}

// State returns the store's lifecycle state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Templates returns the loaded templates in load order.
// The returned slice is a copy; the templates themselves must not be modified.
func (s *Store) Templates() []*core.Template {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*core.Template, len(s.templates))
	copy(out, s.templates)
	return out
}

// Len returns the number of loaded templates.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.templates)
}

// NumPoints returns the resample count used by the store.
func (s *Store) NumPoints() int {
	return s.numPoints
}

// Release releases the worker pool. Recognition keeps working after
// Release; only Load needs the pool.
func (s *Store) Release() {
	if s.pool != nil {
		s.pool.Release()
	}
}

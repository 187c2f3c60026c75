package exercises

import (
	"context"
	"sync"

	"github.com/liftlog-app/liftlog/internal/telemetry/tracing"
	"github.com/liftlog-app/liftlog/pkg"

	log "github.com/sirupsen/logrus"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type catalogRepo interface {
	ListCustom(ctx context.Context) ([]string, error)
	ListHiddenDefaults(ctx context.Context) ([]string, error)
	AddCustom(ctx context.Context, name string) error
	DeleteCustom(ctx context.Context, name string) error
	HideDefault(ctx context.Context, name string) error
	UnhideDefault(ctx context.Context, name string) error
	Rename(ctx context.Context, params RenameParams) error
}

type listCache interface {
	GetList(ctx context.Context) ([]string, error)
	SetList(ctx context.Context, names []string) error
	Invalidate(ctx context.Context) error
}

// Service reconciles the built-in defaults with the user's hidden and
// custom exercises into one catalog. Edits are serialized with a single
// mutex, there is one user and at most one in-flight catalog change.
type Service struct {
	mu       sync.Mutex
	repo     catalogRepo
	cache    listCache
	collator *collate.Collator
}

func NewService(repo catalogRepo, cache listCache) *Service {
	return &Service{
		repo:     repo,
		cache:    cache,
		collator: collate.New(language.English, collate.IgnoreCase),
	}
}

// List returns (Defaults - hidden) + custom, deduplicated case
// insensitively and locale sorted. When the repo is unreachable it
// falls back to the plain default list, the app still has to render
// an exercise picker.
func (s *Service) List(ctx context.Context) (_ []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "exercises.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if s.cache != nil {
		cached, err := s.cache.GetList(ctx)
		if err != nil {
			log.Errorf("exercises list: get cached list: %s", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	merged, err := s.mergedList(ctx)
	if err != nil {
		log.Errorf("exercises list: falling back to defaults: %s", err)
		return s.sortedDefaults(), nil
	}

	if s.cache != nil {
		if err := s.cache.SetList(ctx, merged); err != nil {
			log.Errorf("exercises list: cache merged list: %s", err)
		}
	}

	return merged, nil
}

// Add puts a new custom exercise in the catalog. A name matching a
// hidden default restores that default instead, a name already in the
// merged list is a no-op. Returns the canonical name.
func (s *Service) Add(ctx context.Context, name string) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "exercises.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	name = NormalizeName(name)
	if name == "" {
		return "", ErrInvalidName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	hidden, custom, err := s.readCollections(ctx)
	if err != nil {
		return "", err
	}

	if hiddenName, ok := findFold(hidden, name); ok {
		if err := s.repo.UnhideDefault(ctx, hiddenName); err != nil {
			return "", err
		}
		s.invalidateCache(ctx)
		return hiddenName, nil
	}

	if existing, ok := findFold(s.merge(hidden, custom), name); ok {
		return existing, nil
	}

	if err := s.repo.AddCustom(ctx, name); err != nil {
		return "", err
	}
	s.invalidateCache(ctx)
	return name, nil
}

// Delete hides a default or removes a custom exercise. Hiding an
// already hidden default is a no-op. Historical sets are not touched.
func (s *Service) Delete(ctx context.Context, name string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "exercises.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	name = NormalizeName(name)
	if name == "" {
		return ErrInvalidName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if defaultName, ok := findFold(Defaults, name); ok {
		if err := s.repo.HideDefault(ctx, defaultName); err != nil {
			return err
		}
		s.invalidateCache(ctx)
		return nil
	}

	if err := s.repo.DeleteCustom(ctx, name); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

// Rename replaces oldName with newName in one repo transaction, so a
// crash between the two halves can not lose the exercise.
func (s *Service) Rename(ctx context.Context, oldName, newName string) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "exercises.rename")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	oldName = NormalizeName(oldName)
	newName = NormalizeName(newName)
	if oldName == "" || newName == "" {
		return "", ErrInvalidName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	hidden, custom, err := s.readCollections(ctx)
	if err != nil {
		return "", err
	}
	merged := s.merge(hidden, custom)

	canonicalOld, ok := findFold(merged, oldName)
	if !ok {
		return "", ErrExerciseNotFound
	}
	if canonicalOld == newName {
		return canonicalOld, nil
	}

	// renaming onto another visible exercise merges into it: the old
	// name goes away and the existing entry stays untouched. Same rule
	// as Add being a no-op on a merged duplicate.
	if existing, ok := findFold(merged, newName); ok && existing != canonicalOld {
		if _, isDefault := findFold(Defaults, canonicalOld); isDefault {
			err = s.repo.HideDefault(ctx, canonicalOld)
		} else {
			err = s.repo.DeleteCustom(ctx, canonicalOld)
		}
		if err != nil {
			return "", err
		}
		s.invalidateCache(ctx)
		return existing, nil
	}

	params := RenameParams{
		Old: canonicalOld,
		New: newName,
	}
	if _, isDefault := findFold(Defaults, canonicalOld); isDefault {
		params.OldIsDefault = true
	}
	if hiddenName, isHiddenDefault := findFold(hidden, newName); isHiddenDefault {
		params.New = hiddenName
		params.NewIsHiddenDefault = true
	}

	if err := s.repo.Rename(ctx, params); err != nil {
		return "", err
	}
	s.invalidateCache(ctx)
	return params.New, nil
}

func (s *Service) mergedList(ctx context.Context) ([]string, error) {
	hidden, custom, err := s.readCollections(ctx)
	if err != nil {
		return nil, err
	}
	return s.merge(hidden, custom), nil
}

func (s *Service) readCollections(ctx context.Context) (hidden, custom []string, err error) {
	err = pkg.RetryTransient(ctx, func() error {
		var readErr error
		hidden, readErr = s.repo.ListHiddenDefaults(ctx)
		return readErr
	})
	if err != nil {
		return nil, nil, err
	}

	err = pkg.RetryTransient(ctx, func() error {
		var readErr error
		custom, readErr = s.repo.ListCustom(ctx)
		return readErr
	})
	if err != nil {
		return nil, nil, err
	}

	return hidden, custom, nil
}

func (s *Service) merge(hidden, custom []string) []string {
	var merged []string
	for _, d := range Defaults {
		if _, isHidden := findFold(hidden, d); !isHidden {
			merged = append(merged, d)
		}
	}
	for _, c := range custom {
		if _, exists := findFold(merged, c); !exists {
			merged = append(merged, c)
		}
	}
	s.collator.SortStrings(merged)
	return merged
}

func (s *Service) sortedDefaults() []string {
	defaults := make([]string, len(Defaults))
	copy(defaults, Defaults)
	s.collator.SortStrings(defaults)
	return defaults
}

func (s *Service) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Errorf("exercises: invalidate list cache: %s", err)
	}
}

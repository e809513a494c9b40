package students

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/orishu/turbocache/cache"
	"github.com/orishu/turbocache/internal/apperr"
	"github.com/orishu/turbocache/internal/logging"
	"github.com/orishu/turbocache/turbocache"
	"github.com/orishu/turbocache/turbostmt"
)

// Service composes the raw students queries with a cache.Handle, giving
// cmd/demo's HTTP handlers a single place that decides when a read goes
// through the cache and when a write tears it down.
type Service struct {
	db    *sqlx.DB
	cache cache.Handle
}

// New returns a Service backed by db and cache.
func New(db *sqlx.DB, c cache.Handle) *Service {
	return &Service{db: db, cache: c}
}

// List loads every student, populating the cache as rows stream past via
// SelectCachingWrapper.
func (s *Service) List(ctx context.Context) ([]Student, error) {
	wrapped := turbocache.PopulateCacheOf[Student, turbostmt.Queryer](selectAll(), s.cache)
	it, err := wrapped.InternalLoad(ctx, s.db)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrInternalServer, "failed to list students", err)
	}
	defer it.Close()

	var out []Student
	for it.Next(ctx) {
		out = append(out, it.Value())
	}
	if err := it.Err(); err != nil {
		return nil, apperr.Wrap(apperr.ErrInternalServer, "failed to list students", err)
	}
	return out, nil
}

// Get loads one student by id, reading through the cache first and
// populating it on a miss via SelectCacheReadWrapper.
func (s *Service) Get(ctx context.Context, id int32) (Student, error) {
	key := KeyOf(id)
	wrapped := turbocache.TryFromCacheAndPopulateOf[Student, turbostmt.Queryer](selectByID(id), s.cache, key)
	it, err := wrapped.InternalLoad(ctx, s.db)
	if err != nil {
		return Student{}, apperr.Wrap(apperr.ErrInternalServer, "failed to load student", err)
	}
	defer it.Close()

	if !it.Next(ctx) {
		if err := it.Err(); err != nil {
			return Student{}, apperr.Wrap(apperr.ErrInternalServer, "failed to load student", err)
		}
		return Student{}, apperr.ErrStudentNotFound
	}
	return it.Value(), nil
}

// Rename updates a student's name, invalidating its cache entry via
// UpdateWrapper before the write commits, so no reader can observe a stale
// cached row once Rename returns.
func (s *Service) Rename(ctx context.Context, id int32, name string) error {
	if name == "" {
		return apperr.ErrStudentNameEmpty
	}

	wrapped := turbocache.InvalidateCacheOf[turbostmt.Execer](updateName(id, name), s.cache, []string{KeyOf(id)})
	n, err := wrapped.Execute(ctx, s.db)
	if err != nil {
		return apperr.Wrap(apperr.ErrInternalServer, "failed to rename student", err)
	}
	if n == 0 {
		return apperr.ErrStudentNotFound
	}

	logging.LogInfo(ctx, "invalidated cache entry for renamed student", map[string]interface{}{"student_id": id})
	return nil
}

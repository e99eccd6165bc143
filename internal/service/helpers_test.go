package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"eduboost_backend/internal/grading"
	"eduboost_backend/internal/model"
	"eduboost_backend/internal/repository/inmem"

	"github.com/stretchr/testify/require"
)

func newRepos() Repositories {
	s := inmem.NewStore()
	return Repositories{
		Users:       s.Users,
		Programs:    s.Programs,
		Batches:     s.Batches,
		Modules:     s.Modules,
		Assessments: s.Assessments,
		Templates:   s.Templates,
		Enrollments: s.Enrollments,
		Progress:    s.Progress,
		Marks:       s.Marks,
		Goals:       s.Goals,
		HealthPlans: s.HealthPlans,
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func seedUser(t *testing.T, repos Repositories, role model.UserRole, first string) *model.User {
	t.Helper()
	u := &model.User{FirstName: first, LastName: "Test", Email: first + "@example.com", Role: role, Approved: true}
	require.NoError(t, repos.Users.Create(u))
	return u
}

// catalogFixture 一个项目、一个模块、三种类型各一个考核
type catalogFixture struct {
	educator   *model.User
	student    *model.User
	program    *model.Program
	module     *model.Module
	exam       *model.Assessment
	practical  *model.Assessment
	assignment *model.Assessment
}

func seedCatalog(t *testing.T, repos Repositories) catalogFixture {
	t.Helper()
	f := catalogFixture{
		educator: seedUser(t, repos, model.Educator, "edu"),
		student:  seedUser(t, repos, model.Student, "kofi"),
	}
	f.program = &model.Program{Title: "Software Engineering", EducatorID: f.educator.ID}
	require.NoError(t, repos.Programs.Create(f.program))
	f.module = &model.Module{ProgramID: f.program.ID, Code: "SE101", Title: "Programming Fundamentals"}
	require.NoError(t, repos.Modules.Create(f.module))

	mk := func(typ grading.AssessmentType, max float64) *model.Assessment {
		a := &model.Assessment{ModuleID: f.module.ID, EducatorID: f.educator.ID, Title: string(typ), Type: typ, MaxScore: max}
		require.NoError(t, repos.Assessments.Create(a))
		return a
	}
	f.exam = mk(grading.Exam, 100)
	f.practical = mk(grading.Practical, 50)
	f.assignment = mk(grading.Assignment, 20)
	return f
}

// memoryCache 记录调用情况的内存缓存
type memoryCache struct {
	mu          sync.Mutex
	entries     map[string]cachedCompletion
	versions    map[string]int64
	hits        int
	invalidated int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{
		entries:  make(map[string]cachedCompletion),
		versions: make(map[string]int64),
	}
}

func (c *memoryCache) Get(_ context.Context, studentID, moduleID string) (*grading.ModuleCompletionSummary, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := studentID + "/" + moduleID
	e, ok := c.entries[key]
	if !ok || e.Version != c.versions[key] {
		return nil, false
	}
	c.hits++
	return &e.Summary, true
}

func (c *memoryCache) Version(_ context.Context, studentID, moduleID string) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.versions[studentID+"/"+moduleID]
}

func (c *memoryCache) Set(_ context.Context, studentID, moduleID string, version int64, summary grading.ModuleCompletionSummary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[studentID+"/"+moduleID] = cachedCompletion{Version: version, Summary: summary}
}

func (c *memoryCache) Invalidate(_ context.Context, studentID, moduleID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := studentID + "/" + moduleID
	delete(c.entries, key)
	c.versions[key]++
	c.invalidated++
}

func ptr[T any](v T) *T {
	return &v
}

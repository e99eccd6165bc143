package inmem

import (
	"errors"
	"sync"
	"testing"
	"time"

	"eduboost_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTableCopiesOnReadAndWrite(t *testing.T) {
	s := NewStore()
	m := &model.Module{Title: "Networks"}
	require.NoError(t, s.Modules.Create(m))
	require.NotEmpty(t, m.ID)

	m.Title = "changed after insert"
	got, err := s.Modules.FindByID(m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Networks", got.Title)

	got.Title = "Databases"
	require.NoError(t, s.Modules.Update(got))
	again, _ := s.Modules.FindByID(m.ID)
	assert.Equal(t, "Databases", again.Title)
}

func TestNotFoundMatchesGorm(t *testing.T) {
	s := NewStore()
	_, err := s.Goals.FindByID("missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = s.Marks.FindByStudentAndModule("s", "m")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserEmailUnique(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Users.Create(&model.User{Email: "a@example.com"}))
	assert.ErrorIs(t, s.Users.Create(&model.User{Email: "A@example.com"}), gorm.ErrDuplicatedKey)
}

func TestUserEmailUniqueUnderConcurrentCreate(t *testing.T) {
	s := NewStore()

	const n = 32
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.Users.Create(&model.User{Email: "same@example.com"})
		}()
	}
	wg.Wait()
	close(errs)

	created := 0
	for err := range errs {
		if err == nil {
			created++
			continue
		}
		assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
	}
	assert.Equal(t, 1, created)
}

func TestActiveTemplatesDueBefore(t *testing.T) {
	s := NewStore()
	past := time.Now().Add(-48 * time.Hour)
	future := time.Now().Add(48 * time.Hour)
	require.NoError(t, s.Templates.Create(&model.AssignmentTemplate{ModuleID: "m1", IsActive: true, DueDate: &past}))
	require.NoError(t, s.Templates.Create(&model.AssignmentTemplate{ModuleID: "m1", IsActive: true, DueDate: &future}))
	require.NoError(t, s.Templates.Create(&model.AssignmentTemplate{ModuleID: "m1", IsActive: false, DueDate: &past}))

	due, err := s.Templates.FindActiveDueBefore(time.Now())
	require.NoError(t, err)
	assert.Len(t, due, 1)

	active, err := s.Templates.FindActiveByModules([]string{"m1"})
	require.NoError(t, err)
	assert.Len(t, active, 2)
}

func TestMarksOrderedLowestFirst(t *testing.T) {
	s := NewStore()
	for _, v := range []float64{72, 31, 48} {
		require.NoError(t, s.Marks.Save(&model.ModuleMarks{StudentID: "s1", ModuleID: model.GenerateUUID(), Marks: v}))
	}
	marks, err := s.Marks.FindByStudent("s1")
	require.NoError(t, err)
	require.Len(t, marks, 3)
	assert.Equal(t, 31.0, marks[0].Marks)
	assert.Equal(t, 72.0, marks[2].Marks)
}

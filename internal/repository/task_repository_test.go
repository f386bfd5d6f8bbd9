package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"tasktrack/internal/model"
)

// capturedQuery records the SQL and bound values of the last built statement.
type capturedQuery struct {
	sql  string
	vars []interface{}
}

// newDryRunDB opens a GORM handle that builds SQL without touching a real
// database, and hooks the query pipeline to capture what the repository
// generates.
func newDryRunDB(t *testing.T) (*gorm.DB, *capturedQuery) {
	t.Helper()

	dialector := mysql.New(mysql.Config{
		DSN:                       "user:password@tcp(127.0.0.1:3306)/tasktrack_test?charset=utf8mb4&parseTime=True",
		SkipInitializeWithVersion: true,
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		TranslateError:       true,
	})
	assert.NoError(t, err)

	captured := &capturedQuery{}
	err = db.Callback().Query().After("gorm:query").Register("test:capture", func(tx *gorm.DB) {
		captured.sql = tx.Statement.SQL.String()
		captured.vars = tx.Statement.Vars
	})
	assert.NoError(t, err)

	return db, captured
}

func TestTaskRepository_List_CreatedBeforeWholeDayCutoff(t *testing.T) {
	db, captured := newDryRunDB(t)
	repo := NewTaskRepository(db)

	before := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	_, err := repo.List(context.Background(), TaskQuery{
		OwnerID:       7,
		CreatedBefore: &before,
	})
	assert.NoError(t, err)

	// Tasks created on the 31st stay in; the cutoff is the start of Feb 1.
	assert.Contains(t, captured.sql, "created_at < ?")
	assert.NotContains(t, captured.sql, "created_at <= ?")
	assert.Contains(t, captured.vars, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
}

func TestTaskRepository_List_CreatedAfterIsInclusive(t *testing.T) {
	db, captured := newDryRunDB(t)
	repo := NewTaskRepository(db)

	after := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := repo.List(context.Background(), TaskQuery{
		OwnerID:      7,
		CreatedAfter: &after,
	})
	assert.NoError(t, err)

	assert.Contains(t, captured.sql, "created_at >= ?")
	assert.Contains(t, captured.vars, after)
}

func TestTaskRepository_List_OwnerScopingAndOrdering(t *testing.T) {
	db, captured := newDryRunDB(t)
	repo := NewTaskRepository(db)

	_, err := repo.List(context.Background(), TaskQuery{OwnerID: 7, Offset: 5, Limit: 20})
	assert.NoError(t, err)

	assert.Contains(t, captured.sql, "owner_id = ?")
	assert.Contains(t, captured.sql, "ORDER BY created_at DESC")
	assert.Contains(t, captured.vars, uint(7))
	assert.Contains(t, captured.vars, 20)
	assert.Contains(t, captured.vars, 5)
}

func TestTaskRepository_List_OptionalFiltersOmittedWhenUnset(t *testing.T) {
	db, captured := newDryRunDB(t)
	repo := NewTaskRepository(db)

	_, err := repo.List(context.Background(), TaskQuery{OwnerID: 7})
	assert.NoError(t, err)

	assert.NotContains(t, captured.sql, "status = ?")
	assert.NotContains(t, captured.sql, "priority = ?")
	assert.NotContains(t, captured.sql, "created_at <")
	assert.NotContains(t, captured.sql, "created_at >=")
	// Default page size applies when the caller asks for none.
	assert.Contains(t, captured.vars, DefaultListLimit)
}

func TestTaskRepository_List_StatusAndPriorityFilters(t *testing.T) {
	db, captured := newDryRunDB(t)
	repo := NewTaskRepository(db)

	_, err := repo.List(context.Background(), TaskQuery{
		OwnerID:  7,
		Status:   model.TaskStatusDone,
		Priority: model.PriorityHigh,
	})
	assert.NoError(t, err)

	assert.Contains(t, captured.sql, "status = ?")
	assert.Contains(t, captured.sql, "priority = ?")
	assert.Contains(t, captured.vars, model.TaskStatusDone)
	assert.Contains(t, captured.vars, model.PriorityHigh)
}

func TestTaskRepository_Search_CaseInsensitiveOverTitleAndDescription(t *testing.T) {
	db, captured := newDryRunDB(t)
	repo := NewTaskRepository(db)

	_, err := repo.Search(context.Background(), 7, "Report", 0, 0)
	assert.NoError(t, err)

	assert.Contains(t, captured.sql, "LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)")
	assert.Contains(t, captured.sql, "owner_id = ?")
	assert.Contains(t, captured.sql, "ORDER BY created_at DESC")

	matches := 0
	for _, v := range captured.vars {
		if v == "%Report%" {
			matches++
		}
	}
	assert.Equal(t, 2, matches, "substring pattern should bind to both columns")
	assert.Contains(t, captured.vars, DefaultListLimit)
}

func TestTaskRepository_FindByID_ScopesToOwner(t *testing.T) {
	db, captured := newDryRunDB(t)
	repo := NewTaskRepository(db)

	_, err := repo.FindByID(context.Background(), 3, 7)
	assert.NoError(t, err)

	assert.Contains(t, captured.sql, "id = ? AND owner_id = ?")
	assert.Contains(t, captured.vars, uint(3))
	assert.Contains(t, captured.vars, uint(7))
	assert.True(t, strings.Contains(captured.sql, "LIMIT"), "single-row fetch should be limited")
}

package persistence

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Kimutai-cloud/HRMS-sub002/domain/employee"
	"github.com/Kimutai-cloud/HRMS-sub002/domain/filter"
	"github.com/Kimutai-cloud/HRMS-sub002/domain/store"
	"github.com/Kimutai-cloud/HRMS-sub002/internal/database"
)

// EmployeeStore implements employee.Store using GORM.
type EmployeeStore struct {
	database.Repository[employee.Employee, EmployeeModel]
}

// NewEmployeeStore creates a new EmployeeStore.
func NewEmployeeStore(db database.Database) EmployeeStore {
	return EmployeeStore{
		Repository: database.NewRepository[employee.Employee, EmployeeModel](db, EmployeeMapper{}, "employee"),
	}
}

// Save creates or updates an employee profile.
func (s EmployeeStore) Save(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	model := s.Mapper().ToModel(e)
	model.UpdatedAt = time.Now().UTC()

	if result := s.DB(ctx).Save(&model); result.Error != nil {
		return employee.Employee{}, fmt.Errorf("save employee: %w", result.Error)
	}
	return s.Mapper().ToDomain(model), nil
}

// Delete removes employees matching the given options.
func (s EmployeeStore) Delete(ctx context.Context, options ...store.Option) error {
	return s.DeleteBy(ctx, options...)
}

// Search retrieves the page of employees selected by the filter state,
// with the total match count. Only the filter dimensions meaningful for
// employee lists apply: search, department, and pagination.
func (s EmployeeStore) Search(ctx context.Context, f filter.State) ([]employee.Employee, int64, error) {
	f = f.Sanitize()

	base := applyEmployeeFilter(s.DB(ctx).Model(&EmployeeModel{}), f)

	var total int64
	if result := base.Count(&total); result.Error != nil {
		return nil, 0, fmt.Errorf("count employees: %w", result.Error)
	}

	dir := "DESC"
	if f.Order == filter.OrderAsc {
		dir = "ASC"
	}
	orderBy := "created_at " + dir
	if f.Sort == filter.SortTitle {
		orderBy = "name " + dir
	}

	var models []EmployeeModel
	page := base.
		Order(orderBy).
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit)
	if result := page.Find(&models); result.Error != nil {
		return nil, 0, fmt.Errorf("search employees: %w", result.Error)
	}

	employees := make([]employee.Employee, len(models))
	for i, m := range models {
		employees[i] = s.Mapper().ToDomain(m)
	}
	return employees, total, nil
}

func applyEmployeeFilter(db *gorm.DB, f filter.State) *gorm.DB {
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		db = db.Where("name LIKE ? OR email LIKE ?", pattern, pattern)
	}
	if f.Department != "" {
		db = db.Where("department = ?", f.Department)
	}
	return db
}

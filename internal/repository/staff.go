package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/opsdesk-dev/status-board/backend/internal/domain"
)

func (r *Repository) GetAllStaff() ([]*domain.StaffMember, error) {
	query := `
		SELECT id, name, employee_code, department, grp, is_active,
			temp_department, temp_group, temp_start_date, temp_end_date,
			created_at, version
		FROM staff_members
		ORDER BY department, grp, id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	staff := make([]*domain.StaffMember, 0)
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		staff = append(staff, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return staff, nil
}

func (r *Repository) GetStaffByID(id int64) (*domain.StaffMember, error) {
	query := `
		SELECT id, name, employee_code, department, grp, is_active,
			temp_department, temp_group, temp_start_date, temp_end_date,
			created_at, version
		FROM staff_members
		WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return scanStaff(r.dbpool.QueryRowContext(ctx, query, id))
}

func (r *Repository) GetStaffByEmployeeCode(code string) (*domain.StaffMember, error) {
	query := `
		SELECT id, name, employee_code, department, grp, is_active,
			temp_department, temp_group, temp_start_date, temp_end_date,
			created_at, version
		FROM staff_members
		WHERE employee_code = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return scanStaff(r.dbpool.QueryRowContext(ctx, query, code))
}

func (r *Repository) CreateStaff(staff *domain.StaffMember) error {
	query := `
		INSERT INTO staff_members (name, employee_code, department, grp, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{staff.Name, staff.EmployeeCode, staff.Department, staff.Group, staff.IsActive}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&staff.ID, &staff.CreatedAt, &staff.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateStaff(staff *domain.StaffMember) error {
	query := `
		UPDATE staff_members
		SET
			name = $1,
			department = $2,
			grp = $3,
			is_active = $4,
			temp_department = $5,
			temp_group = $6,
			temp_start_date = $7,
			temp_end_date = $8,
			version = version + 1
		WHERE id = $9 AND version = $10
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var tempDept, tempGroup any
	var tempStart, tempEnd any
	if staff.TempAssignment != nil {
		tempDept = staff.TempAssignment.Department
		tempGroup = staff.TempAssignment.Group
		tempStart = staff.TempAssignment.StartDate
		tempEnd = staff.TempAssignment.EndDate
	}

	args := []any{staff.Name, staff.Department, staff.Group, staff.IsActive, tempDept, tempGroup, tempStart, tempEnd, staff.ID, staff.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&staff.Version); err != nil {
		return err
	}

	return nil
}

type staffScanner interface {
	Scan(...any) error
}

func scanStaff(row staffScanner) (*domain.StaffMember, error) {
	s := &domain.StaffMember{}
	var tempDept, tempGroup sql.NullString
	var tempStart, tempEnd sql.NullTime

	dst := []any{&s.ID, &s.Name, &s.EmployeeCode, &s.Department, &s.Group, &s.IsActive, &tempDept, &tempGroup, &tempStart, &tempEnd, &s.CreatedAt, &s.Version}
	if err := row.Scan(dst...); err != nil {
		return nil, err
	}

	if tempDept.Valid && tempStart.Valid && tempEnd.Valid {
		s.TempAssignment = &domain.TempAssignment{
			Department: tempDept.String,
			Group:      tempGroup.String,
			StartDate:  tempStart.Time,
			EndDate:    tempEnd.Time,
		}
	}

	return s, nil
}

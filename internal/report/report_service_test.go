package report

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-otpay/internal/attendance"
	"go-otpay/internal/employee"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

const reportCompanyID = "7e4b1f91-2a6e-4f0e-9a77-0d4c8d1f2a10"

type fakeRangeAttendanceRepo struct {
	days []attendance.AttendanceDay
}

func (f *fakeRangeAttendanceRepo) Create(ctx context.Context, a *attendance.AttendanceDay) error {
	return nil
}
func (f *fakeRangeAttendanceRepo) FindByID(ctx context.Context, companyID, id string) (*attendance.AttendanceDay, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeRangeAttendanceRepo) FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*attendance.AttendanceDay, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeRangeAttendanceRepo) FindBySessionID(ctx context.Context, companyID, sessionID string) (*attendance.AttendanceDay, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeRangeAttendanceRepo) FindMonth(ctx context.Context, companyID, employeeID string, month, year int) ([]attendance.AttendanceDay, error) {
	return f.days, nil
}
func (f *fakeRangeAttendanceRepo) FindRange(ctx context.Context, companyID string, from, to time.Time, employeeID string) ([]attendance.AttendanceDay, error) {
	if employeeID == "" {
		return f.days, nil
	}
	var out []attendance.AttendanceDay
	for _, d := range f.days {
		if d.EmployeeID.String() == employeeID {
			out = append(out, d)
		}
	}
	return out, nil
}
func (f *fakeRangeAttendanceRepo) FindWithPendingSessions(ctx context.Context, companyID string) ([]attendance.AttendanceDay, error) {
	return nil, nil
}
func (f *fakeRangeAttendanceRepo) UpdateVersioned(ctx context.Context, a *attendance.AttendanceDay) error {
	return nil
}

type fakeEmployeeRepo struct {
	employees []employee.Employee
	err       error
}

func (f *fakeEmployeeRepo) WithTx(tx *sql.Tx) employee.Repository { return f }
func (f *fakeEmployeeRepo) Create(ctx context.Context, e *employee.Employee) error {
	return nil
}
func (f *fakeEmployeeRepo) FindAllByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	return f.employees, f.err
}
func (f *fakeEmployeeRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*employee.Employee, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeEmployeeRepo) Update(ctx context.Context, e *employee.Employee) error { return nil }
func (f *fakeEmployeeRepo) Delete(ctx context.Context, companyID, id string) error { return nil }

func reportDay(employeeID uuid.UUID, date time.Time, sessions ...attendance.OTSession) attendance.AttendanceDay {
	return attendance.AttendanceDay{
		ID:             uuid.New(),
		CompanyID:      uuid.MustParse(reportCompanyID),
		EmployeeID:     employeeID,
		AttendanceDate: date,
		Status:         attendance.StatusPresent,
		OTSessions:     sessions,
	}
}

func TestSessionReportFlattensAndAggregates(t *testing.T) {
	empA := uuid.New()
	empB := uuid.New()
	start := time.Date(2026, 8, 10, 19, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	att := &fakeRangeAttendanceRepo{days: []attendance.AttendanceDay{
		reportDay(empA, time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
			attendance.OTSession{
				SessionID: "s1", SessionNumber: 1, OTType: attendance.OTLateDeparture,
				StartTime: start, EndTime: &end, OTHours: 2.0, Status: attendance.SessionApproved,
			},
			attendance.OTSession{
				SessionID: "s2", SessionNumber: 2, OTType: attendance.OTLateDeparture,
				StartTime: end, OTHours: 1.5, Status: attendance.SessionPendingReview,
			},
		),
		reportDay(empB, time.Date(2026, 8, 11, 0, 0, 0, 0, time.UTC),
			attendance.OTSession{
				SessionID: "s3", SessionNumber: 1, OTType: attendance.OTWeekend,
				StartTime: start.AddDate(0, 0, 1), OTHours: 3.0, Status: attendance.SessionLocked,
			},
		),
	}}
	emp := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: empA, FullName: "Arjun Mehta"},
		{ID: empB, FullName: "Priya Nair"},
	}}

	svc := NewService(att, emp, nil)
	resp, err := svc.SessionReport(context.Background(), reportCompanyID,
		time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), Filter{})

	assert.NoError(t, err)
	assert.Len(t, resp.Rows, 3)
	assert.Equal(t, "Arjun Mehta", resp.Rows[0].EmployeeName)
	assert.Equal(t, "", resp.Rows[1].EndTime)

	assert.Equal(t, 3, resp.Summary.TotalSessions)
	assert.Equal(t, 1, resp.Summary.ByStatus[attendance.SessionApproved])
	assert.Equal(t, 1, resp.Summary.ByStatus[attendance.SessionPendingReview])
	assert.Equal(t, 1, resp.Summary.ByStatus[attendance.SessionLocked])
	assert.Equal(t, 2, resp.Summary.ByType[attendance.OTLateDeparture])

	// PENDING_REVIEW tidak masuk jam; APPROVED dan locked masuk.
	assert.Equal(t, 5.0, resp.Summary.TotalOTHours)
	assert.Equal(t, 2.0, resp.Summary.HoursByType[attendance.OTLateDeparture])
	assert.Equal(t, 3.0, resp.Summary.HoursByType[attendance.OTWeekend])
}

func TestSessionReportFiltersByEmployee(t *testing.T) {
	empA := uuid.New()
	empB := uuid.New()
	att := &fakeRangeAttendanceRepo{days: []attendance.AttendanceDay{
		reportDay(empA, time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
			attendance.OTSession{SessionID: "s1", OTType: attendance.OTWeekend, OTHours: 1, Status: attendance.SessionApproved}),
		reportDay(empB, time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
			attendance.OTSession{SessionID: "s2", OTType: attendance.OTWeekend, OTHours: 1, Status: attendance.SessionApproved}),
	}}

	svc := NewService(att, &fakeEmployeeRepo{}, nil)
	resp, err := svc.SessionReport(context.Background(), reportCompanyID,
		time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), Filter{EmployeeID: empA.String()})

	assert.NoError(t, err)
	assert.Len(t, resp.Rows, 1)
	assert.Equal(t, "s1", resp.Rows[0].SessionID)
}

func TestSessionReportFiltersByDepartment(t *testing.T) {
	empA := uuid.New()
	empB := uuid.New()
	deptEng := uuid.New()
	deptOps := uuid.New()

	att := &fakeRangeAttendanceRepo{days: []attendance.AttendanceDay{
		reportDay(empA, time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
			attendance.OTSession{SessionID: "s1", OTType: attendance.OTWeekend, OTHours: 1, Status: attendance.SessionApproved}),
		reportDay(empB, time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
			attendance.OTSession{SessionID: "s2", OTType: attendance.OTWeekend, OTHours: 2, Status: attendance.SessionApproved}),
	}}
	emp := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: empA, FullName: "Arjun Mehta", DepartmentID: &deptEng},
		{ID: empB, FullName: "Priya Nair", DepartmentID: &deptOps},
	}}

	svc := NewService(att, emp, nil)
	resp, err := svc.SessionReport(context.Background(), reportCompanyID,
		time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), Filter{DepartmentID: deptOps.String()})

	assert.NoError(t, err)
	assert.Len(t, resp.Rows, 1)
	assert.Equal(t, "s2", resp.Rows[0].SessionID)
	assert.Equal(t, 2.0, resp.Summary.TotalOTHours)
}

func TestSessionReportDepartmentFilterNeedsEmployeeData(t *testing.T) {
	att := &fakeRangeAttendanceRepo{}
	emp := &fakeEmployeeRepo{err: assert.AnError}

	svc := NewService(att, emp, nil)
	_, err := svc.SessionReport(context.Background(), reportCompanyID,
		time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), Filter{DepartmentID: uuid.NewString()})

	assert.ErrorIs(t, err, assert.AnError)
}

func TestSessionReportSurvivesNameLookupFailure(t *testing.T) {
	empA := uuid.New()
	att := &fakeRangeAttendanceRepo{days: []attendance.AttendanceDay{
		reportDay(empA, time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
			attendance.OTSession{SessionID: "s1", OTType: attendance.OTHoliday, OTHours: 2, Status: attendance.SessionApproved}),
	}}
	emp := &fakeEmployeeRepo{err: assert.AnError}

	svc := NewService(att, emp, nil)
	resp, err := svc.SessionReport(context.Background(), reportCompanyID,
		time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), Filter{})

	assert.NoError(t, err)
	assert.Len(t, resp.Rows, 1)
	assert.Equal(t, "", resp.Rows[0].EmployeeName)
}

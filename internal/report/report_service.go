package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-otpay/internal/attendance"
	"go-otpay/internal/employee"
	"go-otpay/internal/shared/money"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// TTL pendek: laporan dipakai dashboard admin yang di-refresh sering,
// tapi data sesi berubah sepanjang hari.
const cacheTTL = 2 * time.Minute

// Filter mempersempit laporan; field kosong berarti tidak difilter.
type Filter struct {
	EmployeeID   string
	DepartmentID string
}

type Service interface {
	// SessionReport meratakan semua sesi lembur dalam rentang tanggal
	// menjadi baris per sesi, plus agregat per status dan per jenis.
	SessionReport(ctx context.Context, companyID string, from, to time.Time, filter Filter) (SessionReportResponse, error)
}

type service struct {
	attRepo attendance.Repository
	empRepo employee.Repository
	rdb     *redis.Client
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewService(attRepo attendance.Repository, empRepo employee.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{
		attRepo: attRepo,
		empRepo: empRepo,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		logger:  l,
	}
}

func cacheKey(companyID string, from, to time.Time, filter Filter) string {
	return fmt.Sprintf("reports:ot-sessions:%s:%s:%s:%s:%s",
		companyID, from.Format("2006-01-02"), to.Format("2006-01-02"),
		filter.EmployeeID, filter.DepartmentID)
}

func (s *service) SessionReport(ctx context.Context, companyID string, from, to time.Time, filter Filter) (SessionReportResponse, error) {
	key := cacheKey(companyID, from, to, filter)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, key).Result()
		if err == nil {
			var out SessionReportResponse
			if uerr := json.Unmarshal([]byte(cached), &out); uerr == nil {
				return out, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("read session report cache failed", zap.Error(err))
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		out, err := s.buildReport(ctx, companyID, from, to, filter)
		if err != nil {
			return nil, err
		}
		if s.rdb != nil {
			if payload, merr := json.Marshal(out); merr == nil {
				_ = s.rdb.Set(ctx, key, payload, cacheTTL).Err()
			}
		}
		return out, nil
	})
	if err != nil {
		return SessionReportResponse{}, err
	}
	return v.(SessionReportResponse), nil
}

func (s *service) buildReport(ctx context.Context, companyID string, from, to time.Time, filter Filter) (SessionReportResponse, error) {
	days, err := s.attRepo.FindRange(ctx, companyID, from, to, filter.EmployeeID)
	if err != nil {
		return SessionReportResponse{}, err
	}

	names, deptOf, err := s.employeeIndex(ctx, companyID)
	if err != nil {
		// Filter department tidak bisa dievaluasi tanpa data karyawan.
		if filter.DepartmentID != "" {
			return SessionReportResponse{}, err
		}
		// Laporan tetap jalan tanpa nama; enrichment bukan data inti.
		s.logger.Warn("load employee names failed", zap.Error(err))
		names = map[string]string{}
	}

	resp := SessionReportResponse{
		From: from.Format("2006-01-02"),
		To:   to.Format("2006-01-02"),
		Rows: []SessionReportRow{},
		Summary: SessionReportSummary{
			ByStatus:    map[string]int{},
			ByType:      map[string]int{},
			HoursByType: map[string]float64{},
		},
	}

	totalHours := 0.0
	for i := range days {
		day := &days[i]
		empID := day.EmployeeID.String()
		if filter.DepartmentID != "" && deptOf[empID] != filter.DepartmentID {
			continue
		}
		date := day.AttendanceDate.Format("2006-01-02")

		for j := range day.OTSessions {
			sess := &day.OTSessions[j]
			row := SessionReportRow{
				EmployeeID:     empID,
				EmployeeName:   names[empID],
				AttendanceDate: date,
				SessionID:      sess.SessionID,
				SessionNumber:  sess.SessionNumber,
				OTType:         sess.OTType,
				StartTime:      sess.StartTime.Format(time.RFC3339),
				OTHours:        sess.OTHours,
				OriginalHours:  sess.OriginalOTHours,
				Status:         sess.Status,
			}
			if sess.EndTime != nil {
				row.EndTime = sess.EndTime.Format(time.RFC3339)
			}
			resp.Rows = append(resp.Rows, row)

			resp.Summary.TotalSessions++
			resp.Summary.ByStatus[sess.Status]++
			resp.Summary.ByType[sess.OTType]++
			if sess.CountsTowardTotal() {
				resp.Summary.HoursByType[sess.OTType] = money.Round2(resp.Summary.HoursByType[sess.OTType] + sess.OTHours)
				totalHours += sess.OTHours
			}
		}
	}
	resp.Summary.TotalOTHours = money.Round2(totalHours)

	return resp, nil
}

func (s *service) employeeIndex(ctx context.Context, companyID string) (map[string]string, map[string]string, error) {
	rows, err := s.empRepo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, nil, err
	}
	names := make(map[string]string, len(rows))
	deptOf := make(map[string]string, len(rows))
	for _, e := range rows {
		names[e.ID.String()] = e.FullName
		if e.DepartmentID != nil {
			deptOf[e.ID.String()] = e.DepartmentID.String()
		}
	}
	return names, deptOf, nil
}

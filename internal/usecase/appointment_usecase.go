package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/deringirish/PHMS/internal/converter"
	"github.com/deringirish/PHMS/internal/delivery/dto"
	"github.com/deringirish/PHMS/internal/domain/entity"
	"github.com/deringirish/PHMS/internal/domain/repository"
	"github.com/deringirish/PHMS/internal/service"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound     = errors.New("appointment not found")
	ErrTimeSlotConflict        = errors.New("time slot conflict")
	ErrInvalidStatusTransition = errors.New("appointment is no longer scheduled")
	ErrInvalidTimeFormat       = errors.New("invalid time format, use HH:MM")
	ErrCrossesMidnight         = errors.New("appointment must end by midnight")
	ErrInvalidMonthFormat      = errors.New("invalid month format, use YYYY-MM")
)

const upcomingAppointmentsLimit = 50

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetAppointment(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	ListAppointments(ctx context.Context, query *dto.AppointmentListQuery) (*dto.AppointmentListResponse, error)
	ListPatientAppointments(ctx context.Context, patientID uuid.UUID) (*dto.AppointmentListResponse, error)
	Reschedule(ctx context.Context, id uuid.UUID, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, id uuid.UUID) error
	Complete(ctx context.Context, id uuid.UUID) error
	MarkNoShow(ctx context.Context, id uuid.UUID) error
	Calendar(ctx context.Context, month string) (*dto.CalendarResponse, error)
	CheckConflict(ctx context.Context, req *dto.CheckConflictRequest) (*dto.ConflictResponse, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	patientRepo     repository.PatientRepository
	adminRepo       repository.AdminRepository
	appointmentRepo repository.AppointmentRepository
	auditService    service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	adminRepo repository.AdminRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		patientRepo:     patientRepo,
		adminRepo:       adminRepo,
		appointmentRepo: appointmentRepo,
		auditService:    auditService,
	}
}

func (u *appointmentUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		return nil, ErrPatientNotFound
	}
	date, err := parseDate(req.AppointmentDate)
	if err != nil {
		return nil, err
	}

	appointment := &entity.Appointment{
		PatientID:       patientID,
		AppointmentDate: date,
		AppointmentTime: strings.TrimSpace(req.AppointmentTime),
		Duration:        lo.Ternary(req.Duration > 0, req.Duration, entity.DefaultAppointmentDuration),
		Type:            lo.Ternary(req.Type != "", entity.AppointmentType(req.Type), entity.AppointmentTypeConsultation),
		Status:          entity.AppointmentStatusScheduled,
		Notes:           strings.TrimSpace(req.Notes),
	}
	if err := ValidateWindow(appointment); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByID(tx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient by ID: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	appointment.DoctorID, err = resolveDoctor(ctx, tx, u.adminRepo, req.DoctorID)
	if err != nil {
		return nil, err
	}

	if err := u.ensureSlotFree(tx, appointment, nil); err != nil {
		return nil, err
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	appointment.Patient = patient
	response := converter.AppointmentToResponse(appointment)
	if err := u.auditService.LogCreate(ctx, tx, actorID(ctx), entity.AuditActionAppointmentCreate, "appointment", appointment.ID.String(), response); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return response, nil
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.findAppointment(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) ListAppointments(ctx context.Context, query *dto.AppointmentListQuery) (*dto.AppointmentListResponse, error) {
	filter, name, err := BuildAppointmentFilter(query, today())
	if err != nil {
		return nil, err
	}

	appointments, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Filter:       name,
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) ListPatientAppointments(ctx context.Context, patientID uuid.UUID) (*dto.AppointmentListResponse, error) {
	db := u.db.WithContext(ctx)

	patient, err := u.patientRepo.FindByID(db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient by ID: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	appointments, err := u.appointmentRepo.FindByPatientID(db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// Reschedule moves a scheduled appointment, keeping its duration. The slot
// check ignores the appointment itself.
func (u *appointmentUsecase) Reschedule(ctx context.Context, id uuid.UUID, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error) {
	date, err := parseDate(req.AppointmentDate)
	if err != nil {
		return nil, err
	}
	if _, err := entity.ParseClock(req.AppointmentTime); err != nil {
		return nil, ErrInvalidTimeFormat
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.findAppointment(tx, id)
	if err != nil {
		return nil, err
	}
	if !appointment.IsScheduled() {
		return nil, ErrInvalidStatusTransition
	}

	before := converter.AppointmentToResponse(appointment)
	appointment.AppointmentDate = date
	appointment.AppointmentTime = strings.TrimSpace(req.AppointmentTime)
	if err := ValidateWindow(appointment); err != nil {
		return nil, err
	}

	if err := u.ensureSlotFree(tx, appointment, &appointment.ID); err != nil {
		return nil, err
	}

	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		u.log.Warnf("Failed to update appointment: %+v", err)
		return nil, err
	}

	after := converter.AppointmentToResponse(appointment)
	if err := u.auditService.LogUpdate(ctx, tx, actorID(ctx), entity.AuditActionAppointmentUpdate, "appointment", id.String(), before, after); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return after, nil
}

func (u *appointmentUsecase) Cancel(ctx context.Context, id uuid.UUID) error {
	return u.transition(ctx, id, entity.AppointmentStatusCancelled)
}

func (u *appointmentUsecase) Complete(ctx context.Context, id uuid.UUID) error {
	return u.transition(ctx, id, entity.AppointmentStatusCompleted)
}

func (u *appointmentUsecase) MarkNoShow(ctx context.Context, id uuid.UUID) error {
	return u.transition(ctx, id, entity.AppointmentStatusNoShow)
}

// transition moves a SCHEDULED appointment to a terminal status.
func (u *appointmentUsecase) transition(ctx context.Context, id uuid.UUID, to entity.AppointmentStatus) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rows, err := u.appointmentRepo.UpdateStatus(tx, id, entity.AppointmentStatusScheduled, to)
	if err != nil {
		u.log.Warnf("Failed to update appointment status: %+v", err)
		return err
	}
	if rows == 0 {
		if _, err := u.findAppointment(tx, id); err != nil {
			return err
		}
		return ErrInvalidStatusTransition
	}

	if err := u.auditService.LogUpdate(ctx, tx, actorID(ctx), entity.AuditActionAppointmentUpdate, "appointment", id.String(),
		map[string]interface{}{"status": entity.AppointmentStatusScheduled},
		map[string]interface{}{"status": to},
	); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

// Calendar lists a month of appointments grouped by day. An empty month
// means the current one.
func (u *appointmentUsecase) Calendar(ctx context.Context, month string) (*dto.CalendarResponse, error) {
	first, last, err := MonthRange(month, time.Now())
	if err != nil {
		return nil, err
	}

	appointments, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx), &entity.AppointmentFilter{
		From: &first,
		To:   &last,
	})
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return nil, err
	}

	return &dto.CalendarResponse{
		Month: first.Format("2006-01"),
		Days:  converter.AppointmentsByDay(appointments),
		Total: len(appointments),
	}, nil
}

func (u *appointmentUsecase) CheckConflict(ctx context.Context, req *dto.CheckConflictRequest) (*dto.ConflictResponse, error) {
	date, err := parseDate(req.AppointmentDate)
	if err != nil {
		return nil, err
	}

	candidate := &entity.Appointment{
		AppointmentDate: date,
		AppointmentTime: strings.TrimSpace(req.AppointmentTime),
		Duration:        lo.Ternary(req.Duration > 0, req.Duration, entity.DefaultAppointmentDuration),
	}
	if err := ValidateWindow(candidate); err != nil {
		return nil, err
	}

	db := u.db.WithContext(ctx)
	candidate.DoctorID, err = resolveDoctor(ctx, db, u.adminRepo, req.DoctorID)
	if err != nil {
		return nil, err
	}

	err = u.ensureSlotFree(db, candidate, nil)
	switch {
	case errors.Is(err, ErrTimeSlotConflict):
		return &dto.ConflictResponse{HasConflict: true}, nil
	case err != nil:
		return nil, err
	}
	return &dto.ConflictResponse{HasConflict: false}, nil
}

func (u *appointmentUsecase) ensureSlotFree(db *gorm.DB, candidate *entity.Appointment, excludeID *uuid.UUID) error {
	existing, err := u.appointmentRepo.FindActiveOnDate(db, candidate.DoctorID, candidate.AppointmentDate, excludeID)
	if err != nil {
		u.log.Warnf("Failed to find appointments on date: %+v", err)
		return err
	}

	conflict, err := HasConflict(candidate, existing)
	if err != nil {
		return ErrInvalidTimeFormat
	}
	if conflict {
		return ErrTimeSlotConflict
	}
	return nil
}

func (u *appointmentUsecase) findAppointment(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	appointment, err := u.appointmentRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment by ID: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	return appointment, nil
}

// ValidateWindow checks the start time and keeps the window inside one
// calendar day; conflicts are only detected within a single date.
func ValidateWindow(a *entity.Appointment) error {
	_, end, err := a.Window()
	if err != nil {
		return ErrInvalidTimeFormat
	}
	if end > entity.MinutesPerDay {
		return ErrCrossesMidnight
	}
	return nil
}

// HasConflict reports whether candidate's [time, time+duration) window
// overlaps any non-cancelled appointment in existing. Existing rows with an
// unreadable time are skipped.
func HasConflict(candidate *entity.Appointment, existing []entity.Appointment) (bool, error) {
	start, end, err := candidate.Window()
	if err != nil {
		return false, err
	}

	return lo.ContainsBy(existing, func(a entity.Appointment) bool {
		if a.IsCancelled() || a.ID == candidate.ID && a.ID != uuid.Nil {
			return false
		}
		aStart, aEnd, err := a.Window()
		if err != nil {
			return false
		}
		return entity.Overlaps(start, end, aStart, aEnd)
	}), nil
}

// BuildAppointmentFilter maps a list window onto a date range relative to
// today. Unknown or empty windows list upcoming scheduled appointments.
func BuildAppointmentFilter(query *dto.AppointmentListQuery, today time.Time) (*entity.AppointmentFilter, string, error) {
	if query == nil {
		query = &dto.AppointmentListQuery{}
	}

	filter := &entity.AppointmentFilter{Status: entity.AppointmentStatus(query.Status)}
	if query.DoctorID != "" {
		doctorID, err := uuid.Parse(query.DoctorID)
		if err != nil {
			return nil, "", ErrDoctorNotFound
		}
		filter.DoctorID = &doctorID
	}

	switch query.Filter {
	case dto.AppointmentFilterToday:
		filter.From, filter.To = &today, &today
		return filter, dto.AppointmentFilterToday, nil
	case dto.AppointmentFilterWeek:
		end := today.AddDate(0, 0, 7)
		filter.From, filter.To = &today, &end
		return filter, dto.AppointmentFilterWeek, nil
	case dto.AppointmentFilterMonth:
		end := today.AddDate(0, 0, 30)
		filter.From, filter.To = &today, &end
		return filter, dto.AppointmentFilterMonth, nil
	default:
		filter.From = &today
		filter.Status = entity.AppointmentStatusScheduled
		filter.Limit = upcomingAppointmentsLimit
		return filter, dto.AppointmentFilterUpcoming, nil
	}
}

// MonthRange returns the first and last day of a YYYY-MM month.
func MonthRange(month string, now time.Time) (time.Time, time.Time, error) {
	var first time.Time
	if strings.TrimSpace(month) == "" {
		first = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	} else {
		parsed, err := time.Parse("2006-01", strings.TrimSpace(month))
		if err != nil {
			return time.Time{}, time.Time{}, ErrInvalidMonthFormat
		}
		first = parsed
	}
	last := first.AddDate(0, 1, -1)
	return first, last, nil
}

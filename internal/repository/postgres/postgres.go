package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/clinicboard/allotment-api/internal/repository"
)

type scheduleRepository struct {
	db *sqlx.DB
}

type profileRepository struct {
	db *sqlx.DB
}

type attendanceRepository struct {
	db *sqlx.DB
}

type timeBlockRepository struct {
	db *sqlx.DB
}

type dutyRepository struct {
	db *sqlx.DB
}

type userRepository struct {
	db *sqlx.DB
}

func NewScheduleRepository(db *sqlx.DB) repository.ScheduleRepository {
	return &scheduleRepository{db: db}
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func NewAttendanceRepository(db *sqlx.DB) repository.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func NewTimeBlockRepository(db *sqlx.DB) repository.TimeBlockRepository {
	return &timeBlockRepository{db: db}
}

func NewDutyRepository(db *sqlx.DB) repository.DutyRepository {
	return &dutyRepository{db: db}
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

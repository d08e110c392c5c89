package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	AccountRepository            *AccountRepository
	StudentRepository            *StudentRepository
	ResultRepository             *ResultRepository
	SemesterRepository           *SemesterRepository
	LectureRepository            *LectureRepository
	EnrollmentRepository         *EnrollmentRepository
	AnnouncementRepository       *AnnouncementRepository
	TokenRepository              *TokenRepository
	PasswordResetTokenRepository *PasswordResetTokenRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		AccountRepository:            NewAccountRepository(db),
		StudentRepository:            NewStudentRepository(db),
		ResultRepository:             NewResultRepository(db),
		SemesterRepository:           NewSemesterRepository(db),
		LectureRepository:            NewLectureRepository(db),
		EnrollmentRepository:         NewEnrollmentRepository(db),
		AnnouncementRepository:       NewAnnouncementRepository(db),
		TokenRepository:              NewTokenRepository(db),
		PasswordResetTokenRepository: NewPasswordResetTokenRepository(db),
	}
}

// Package seed creates the default catalogue data a fresh deployment needs:
// the course list, its semesters and a welcome announcement.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/quicktech/studentportal/internal/app/models"
)

var defaultCourses = []string{
	"Web Development",
	"Graphic Designing",
	"Digital Marketing",
	"Mobile App Development",
}

// CreateDefaultData seeds the catalogue tables. Re-running is safe: courses
// upsert by name and the other tables are only filled when empty.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default catalogue data...")
	var finalErr error

	courseIDs := make(map[string]int64, len(defaultCourses))
	for _, name := range defaultCourses {
		var id int64
		err := dbPool.QueryRow(ctx, `
			INSERT INTO courses (name) VALUES ($1)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id`, name).Scan(&id)
		if err != nil {
			lgr.Error().Err(err).Str("course", name).Msg("Error seeding course")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		courseIDs[name] = id
	}

	if err := seedSemesters(ctx, dbPool, courseIDs); err != nil {
		lgr.Error().Err(err).Msg("Error seeding semesters")
		finalErr = errors.Join(finalErr, err)
	}

	if err := seedAnnouncements(ctx, dbPool); err != nil {
		lgr.Error().Err(err).Msg("Error seeding announcements")
		finalErr = errors.Join(finalErr, err)
	}

	if finalErr == nil {
		lgr.Info().Msg("Default catalogue data in place")
	}
	return finalErr
}

func seedSemesters(ctx context.Context, dbPool *pgxpool.Pool, courseIDs map[string]int64) error {
	var count int
	if err := dbPool.QueryRow(ctx, `SELECT COUNT(*) FROM semesters`).Scan(&count); err != nil {
		return fmt.Errorf("error counting semesters: %w", err)
	}
	if count > 0 {
		return nil
	}

	webDevID, ok := courseIDs["Web Development"]
	if !ok {
		return errors.New("web development course missing, cannot seed semesters")
	}

	semesters := []struct {
		name, description, status, batch, city, mode string
		courseID                                     int64
	}{
		{"Semester 1", "HTML, CSS and JavaScript foundations", models.SemesterStatusCompleted, "2024", "Karachi", models.SemesterModeOnsite, webDevID},
		{"Semester 2", "React and modern front-end tooling", models.SemesterStatusInProgress, "2024", "Karachi", models.SemesterModeOnsite, webDevID},
		{"Semester 3", "Backend APIs and databases", models.SemesterStatusUpcoming, "2024", "Karachi", models.SemesterModeOnline, webDevID},
	}

	for _, sem := range semesters {
		_, err := dbPool.Exec(ctx, `
			INSERT INTO semesters (name, description, status, batch, city, mode, course_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			sem.name, sem.description, sem.status, sem.batch, sem.city, sem.mode, sem.courseID)
		if err != nil {
			return fmt.Errorf("error seeding semester %q: %w", sem.name, err)
		}
	}

	return nil
}

func seedAnnouncements(ctx context.Context, dbPool *pgxpool.Pool) error {
	var count int
	if err := dbPool.QueryRow(ctx, `SELECT COUNT(*) FROM announcements`).Scan(&count); err != nil {
		return fmt.Errorf("error counting announcements: %w", err)
	}
	if count > 0 {
		return nil
	}

	_, err := dbPool.Exec(ctx, `
		INSERT INTO announcements (title, body)
		VALUES ($1, $2)`,
		"Welcome to the student portal",
		"Complete your profile and upload a photo to activate your student ID card.")
	if err != nil {
		return fmt.Errorf("error seeding welcome announcement: %w", err)
	}

	return nil
}

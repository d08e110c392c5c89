package services

// Services defined in this package:
// - AuthService: registration, sign-in, token rotation and password reset
// - StudentService: cached profile reads, profile upsert and avatar upload
// - ResultService: cached result reads plus the admin-side result mutation
// - SemesterService: cached semester listing with portal eligibility
// - EnrollmentService: the "Open Portal" action and enrollment listing
// - LectureService: cached lecture listing
// - AnnouncementService: announcement timeline
// - CardService: identity card rendering, PDF export and the print surface
// - DashboardService: aggregated dashboard read

import "time"

// Cache TTLs shared across the cached read paths. Profile, result and
// semester reads stay fresh for an hour; the lecture list turns over faster.
const (
	cacheTTLStandard = time.Hour
	cacheTTLLectures = 30 * time.Minute
)

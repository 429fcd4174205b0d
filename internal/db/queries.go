package db

const (
	InsertJob = `
		INSERT INTO print_jobs (id, data_json, created_at)
		VALUES (?, ?, ?)
	`

	GetJobByID = `
		SELECT id, data_json, created_at
		FROM print_jobs WHERE id = ?
	`

	CountJobs = `SELECT COUNT(*) FROM print_jobs`
)

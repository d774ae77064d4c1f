package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/hillandale/walksync/internal/models"
)

// PostgresWalkRepository implements reconcile.WalkRepository using
// PostgreSQL.
type PostgresWalkRepository struct {
	db *sql.DB
}

// NewPostgresWalkRepository creates a new PostgreSQL walk repository.
func NewPostgresWalkRepository(db *sql.DB) *PostgresWalkRepository {
	return &PostgresWalkRepository{db: db}
}

const walkColumns = `
	id, group_code, title, description, additional_details, shape, status,
	publish, start_input, finish_time, meeting_time, distance, ascent, grade,
	start_location, finish_location, meeting_location, contact, features,
	media, risk_assessments, average_speed_mph, remote_id, remote_url, links,
	created_at, updated_at
`

// Store inserts a new walk.
func (r *PostgresWalkRepository) Store(ctx context.Context, walk models.Walk) error {
	fields, err := marshalWalkFields(walk)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO walks (%s, start_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28)
	`, walkColumns)

	_, err = r.db.ExecContext(ctx, query, append(walkArgs(walk, fields), startAtArg(walk))...)
	if err != nil {
		return fmt.Errorf("failed to insert walk: %w", err)
	}
	return nil
}

// Update modifies an existing walk.
func (r *PostgresWalkRepository) Update(ctx context.Context, walk models.Walk) error {
	fields, err := marshalWalkFields(walk)
	if err != nil {
		return err
	}

	query := `
		UPDATE walks SET
			group_code = $2, title = $3, description = $4,
			additional_details = $5, shape = $6, status = $7, publish = $8,
			start_input = $9, finish_time = $10, meeting_time = $11,
			distance = $12, ascent = $13, grade = $14, start_location = $15,
			finish_location = $16, meeting_location = $17, contact = $18,
			features = $19, media = $20, risk_assessments = $21,
			average_speed_mph = $22, remote_id = $23, remote_url = $24,
			links = $25, created_at = $26, updated_at = $27, start_at = $28
		WHERE id = $1
	`

	walk.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query, append(walkArgs(walk, fields), startAtArg(walk))...)
	if err != nil {
		return fmt.Errorf("failed to update walk: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("walk not found: %s", walk.ID)
	}
	return nil
}

// GetByID retrieves a walk by its ID. Returns nil when not found.
func (r *PostgresWalkRepository) GetByID(ctx context.Context, id string) (*models.Walk, error) {
	query := fmt.Sprintf(`SELECT %s FROM walks WHERE id = $1`, walkColumns)

	walk, err := scanWalk(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get walk: %w", err)
	}
	return walk, nil
}

// ListLive retrieves titled walks starting within the horizon, ordered by
// start date ascending.
func (r *PostgresWalkRepository) ListLive(ctx context.Context, from, to time.Time) ([]models.Walk, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM walks
		WHERE title <> ''
		  AND start_at IS NOT NULL
		  AND start_at >= $1
		  AND start_at <= $2
		ORDER BY start_at ASC
	`, walkColumns)

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list walks: %w", err)
	}
	defer rows.Close()

	var walks []models.Walk
	for rows.Next() {
		walk, err := scanWalk(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan walk: %w", err)
		}
		walks = append(walks, *walk)
	}
	return walks, rows.Err()
}

// Delete removes a walk by its ID.
func (r *PostgresWalkRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM walks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete walk: %w", err)
	}
	return nil
}

type walkJSONFields struct {
	startLocation   []byte
	finishLocation  []byte
	meetingLocation []byte
	contact         []byte
	media           []byte
	riskAssessments []byte
	links           []byte
}

func marshalWalkFields(walk models.Walk) (walkJSONFields, error) {
	var fields walkJSONFields
	var err error

	marshal := func(name string, v interface{}) []byte {
		if err != nil {
			return nil
		}
		var data []byte
		data, err = json.Marshal(v)
		if err != nil {
			err = fmt.Errorf("failed to marshal %s: %w", name, err)
		}
		return data
	}

	fields.startLocation = marshal("start location", walk.StartLocation)
	fields.finishLocation = marshal("finish location", walk.FinishLocation)
	fields.meetingLocation = marshal("meeting location", walk.MeetingLocation)
	fields.contact = marshal("contact", walk.Contact)
	fields.media = marshal("media", walk.Media)
	fields.riskAssessments = marshal("risk assessments", walk.RiskAssessments)
	fields.links = marshal("links", walk.Links)

	return fields, err
}

func walkArgs(walk models.Walk, fields walkJSONFields) []interface{} {
	return []interface{}{
		walk.ID,
		walk.GroupCode,
		walk.Title,
		walk.Description,
		walk.AdditionalDetails,
		walk.Shape,
		walk.Status,
		walk.Publish,
		walk.StartDate,
		walk.FinishTime,
		walk.MeetingTime,
		walk.Distance,
		walk.Ascent,
		walk.Grade,
		fields.startLocation,
		fields.finishLocation,
		fields.meetingLocation,
		fields.contact,
		pq.Array(walk.Features.Tags()),
		fields.media,
		fields.riskAssessments,
		walk.AverageSpeedMph,
		walk.RemoteID,
		walk.RemoteURL,
		fields.links,
		walk.CreatedAt,
		walk.UpdatedAt,
	}
}

// startAtArg derives the sortable timestamp column from the authored start
// input. NULL when the input is empty or unparsable.
func startAtArg(walk models.Walk) interface{} {
	if start, ok := walk.StartAt(); ok {
		return start
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWalk(row rowScanner) (*models.Walk, error) {
	var walk models.Walk
	var startLocation, finishLocation, meetingLocation, contact []byte
	var media, riskAssessments, links []byte
	var features pq.StringArray

	err := row.Scan(
		&walk.ID,
		&walk.GroupCode,
		&walk.Title,
		&walk.Description,
		&walk.AdditionalDetails,
		&walk.Shape,
		&walk.Status,
		&walk.Publish,
		&walk.StartDate,
		&walk.FinishTime,
		&walk.MeetingTime,
		&walk.Distance,
		&walk.Ascent,
		&walk.Grade,
		&startLocation,
		&finishLocation,
		&meetingLocation,
		&contact,
		&features,
		&media,
		&riskAssessments,
		&walk.AverageSpeedMph,
		&walk.RemoteID,
		&walk.RemoteURL,
		&links,
		&walk.CreatedAt,
		&walk.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	walk.Features = models.FeaturesFromTags(features)

	unmarshal := func(name string, data []byte, v interface{}) {
		if err != nil || len(data) == 0 {
			return
		}
		if uerr := json.Unmarshal(data, v); uerr != nil {
			err = fmt.Errorf("failed to unmarshal %s: %w", name, uerr)
		}
	}

	unmarshal("start location", startLocation, &walk.StartLocation)
	unmarshal("finish location", finishLocation, &walk.FinishLocation)
	unmarshal("meeting location", meetingLocation, &walk.MeetingLocation)
	unmarshal("contact", contact, &walk.Contact)
	unmarshal("media", media, &walk.Media)
	unmarshal("risk assessments", riskAssessments, &walk.RiskAssessments)
	unmarshal("links", links, &walk.Links)
	if err != nil {
		return nil, err
	}

	return &walk, nil
}

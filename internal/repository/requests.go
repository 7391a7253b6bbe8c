package repository

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/weatherops/weather-automation-api/internal/models"
)

// WeatherRequestRepository owns the append-only weather_requests table.
type WeatherRequestRepository struct {
	DB     *sql.DB
	logger *log.Logger
}

func NewWeatherRequestRepository(db *sql.DB, logger *log.Logger) *WeatherRequestRepository {
	return &WeatherRequestRepository{DB: db, logger: logger}
}

// Create inserts one request and returns the stored record with its id and
// creation time filled in. Repeated identical submissions insert new rows.
func (r *WeatherRequestRepository) Create(ctx context.Context, req models.WeatherRequest) (models.WeatherRequest, error) {
	req.ID = uuid.NewString()
	req.CreatedAt = time.Now().UTC()

	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO weather_requests
			(id, requester_id, name, email, city,
			 temperature, condition, air_quality, air_quality_index, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		req.ID, req.RequesterID, req.Name, req.Email, req.City,
		req.Snapshot.Temperature, req.Snapshot.Condition,
		req.Snapshot.AirQuality, req.Snapshot.AirQualityIndex, req.CreatedAt,
	)
	if err != nil {
		return models.WeatherRequest{}, err
	}

	return req, nil
}

func (r *WeatherRequestRepository) ListByRequester(ctx context.Context, requesterID string) ([]models.WeatherRequest, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, requester_id, name, email, city,
		       temperature, condition, air_quality, air_quality_index, created_at
		FROM weather_requests
		WHERE requester_id = ?
		ORDER BY created_at DESC
	`, requesterID)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			r.logger.Println(err)
		}
	}(rows)

	var requests []models.WeatherRequest
	for rows.Next() {
		var req models.WeatherRequest
		if err := rows.Scan(
			&req.ID, &req.RequesterID, &req.Name, &req.Email, &req.City,
			&req.Snapshot.Temperature, &req.Snapshot.Condition,
			&req.Snapshot.AirQuality, &req.Snapshot.AirQualityIndex, &req.CreatedAt,
		); err != nil {
			return nil, err
		}
		req.Snapshot.City = req.City
		requests = append(requests, req)
	}

	return requests, rows.Err()
}

func (r *WeatherRequestRepository) CountByRequester(ctx context.Context, requesterID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM weather_requests WHERE requester_id = ?`, requesterID,
	).Scan(&count)
	return count, err
}

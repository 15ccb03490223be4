package repository

import (
	"context"

	"github.com/autotrips/bid-service/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TransporterRepository - интерфейс для работы с перевозчиками.
type TransporterRepository interface {
	GetTransporters(ctx context.Context) ([]models.Transporter, error)
	GetTransporterByName(ctx context.Context, name string) (*models.Transporter, error)
}

// PostgresTransporterRepository - реализация TransporterRepository для базы данных.
type PostgresTransporterRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresTransporterRepository создает новый экземпляр PostgresTransporterRepository.
func NewPostgresTransporterRepository(db *pgxpool.Pool) *PostgresTransporterRepository {
	return &PostgresTransporterRepository{DB: db}
}

// GetTransporters получает список всех перевозчиков.
func (r *PostgresTransporterRepository) GetTransporters(ctx context.Context) ([]models.Transporter, error) {
	query := `SELECT id, name, phone FROM transporter ORDER BY name`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transporters []models.Transporter
	for rows.Next() {
		var t models.Transporter
		if err = rows.Scan(&t.ID, &t.Name, &t.Phone); err != nil {
			return nil, err
		}
		transporters = append(transporters, t)
	}
	return transporters, rows.Err()
}

// GetTransporterByName получает перевозчика по имени.
func (r *PostgresTransporterRepository) GetTransporterByName(ctx context.Context, name string) (*models.Transporter, error) {
	var t models.Transporter
	query := `SELECT id, name, phone FROM transporter WHERE name = $1`
	err := r.DB.QueryRow(ctx, query, name).Scan(&t.ID, &t.Name, &t.Phone)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

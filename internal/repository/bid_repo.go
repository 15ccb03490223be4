package repository

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/autotrips/bid-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Состояния заявки в списках выдачи.
const (
	StateUntouched  = "untouched"
	StateInProgress = "in_progress"
	StateCompleted  = "completed"
	StateRejected   = "rejected"
)

// BidRepository - интерфейс для работы с заявками.
type BidRepository interface {
	GetBid(ctx context.Context, bidId int) (*models.Bid, error)
	ListGrouped(ctx context.Context) (*models.BidListResponse, error)
	EditBid(ctx context.Context, bidId int, updateFields models.BidPatch, listState string) (*models.Bid, error)
	RejectBid(ctx context.Context, bidId int, comment string) (*models.RejectBidResponse, error)
}

// PostgresBidRepository - реализация BidRepository для базы данных.
type PostgresBidRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresBidRepository создает новый экземпляр PostgresBidRepository.
func NewPostgresBidRepository(db *pgxpool.Pool) *PostgresBidRepository {
	return &PostgresBidRepository{DB: db}
}

const bidSelectQuery = `SELECT b.id, b.brand, b.model, b.vin, b.price, b.container_number, b.arrival_date,
	b.transporter, b.recipient, b.transit_method, b.location, b.requested_title,
	b.notified_parking, b.notified_inspector, b.acceptance_type, b.acceptance_date,
	b.openning_date, b.opened, b.manager_comment,
	b.pickup_address, b.took_title, b.title_collection_date, b.notified_logistician_by_title,
	b.transit_number, b.inspection_done, b.inspection_date, b.number_sent, b.number_sent_date,
	b.inspection_paid, b.inspector_comment, b.notified_logistician_by_inspector,
	b.export, b.prepared_documents,
	b.vehicle_arrival_date, b.receive_vehicle, b.receive_documents, b.full_acceptance, b.receiver_keys_number,
	b.approved_by_inspector, b.approved_by_title, b.approved_by_re_export,
	b.vehicle_transporter, b.list_state,
	c.id, c.full_name, c.phone, c.telegram, c.company, c.address, c.email
	FROM bid b JOIN client c ON b.client_id = c.id`

// Разрешённые к обновлению колонки. Имена полей патча совпадают с именами колонок.
var editableColumns = map[string]bool{
	"transporter":    true,
	"transit_method": true, "location": true, "requested_title": true,
	"notified_parking": true, "notified_inspector": true,
	"acceptance_type": true, "acceptance_date": true,
	"openning_date": true, "opened": true, "manager_comment": true,
	"pickup_address": true, "took_title": true, "title_collection_date": true,
	"notified_logistician_by_title": true,
	"transit_number":                true, "inspection_done": true, "inspection_date": true,
	"number_sent": true, "number_sent_date": true, "inspection_paid": true,
	"inspector_comment": true, "notified_logistician_by_inspector": true,
	"export": true, "prepared_documents": true,
	"vehicle_arrival_date": true, "receive_vehicle": true, "receive_documents": true,
	"full_acceptance": true, "receiver_keys_number": true,
	"approved_by_inspector": true, "approved_by_title": true, "approved_by_re_export": true,
	"vehicle_transporter": true,
}

func scanBid(row pgx.Row) (*models.Bid, string, error) {
	var bid models.Bid
	var listState string
	err := row.Scan(
		&bid.ID,
		&bid.Brand,
		&bid.Model,
		&bid.Vin,
		&bid.Price,
		&bid.ContainerNumber,
		&bid.ArrivalDate,
		&bid.Transporter,
		&bid.Recipient,
		&bid.TransitMethod,
		&bid.Location,
		&bid.RequestedTitle,
		&bid.NotifiedParking,
		&bid.NotifiedInspector,
		&bid.AcceptanceType,
		&bid.AcceptanceDate,
		&bid.OpenningDate,
		&bid.Opened,
		&bid.ManagerComment,
		&bid.PickupAddress,
		&bid.TookTitle,
		&bid.TitleCollectionDate,
		&bid.NotifiedLogisticianByTitle,
		&bid.TransitNumber,
		&bid.InspectionDone,
		&bid.InspectionDate,
		&bid.NumberSent,
		&bid.NumberSentDate,
		&bid.InspectionPaid,
		&bid.InspectorComment,
		&bid.NotifiedLogisticianByInspector,
		&bid.Export,
		&bid.PreparedDocuments,
		&bid.VehicleArrivalDate,
		&bid.ReceiveVehicle,
		&bid.ReceiveDocuments,
		&bid.FullAcceptance,
		&bid.ReceiverKeysNumber,
		&bid.ApprovedByInspector,
		&bid.ApprovedByTitle,
		&bid.ApprovedByReExport,
		&bid.VehicleTransporter,
		&listState,
		&bid.Client.ID,
		&bid.Client.FullName,
		&bid.Client.Phone,
		&bid.Client.Telegram,
		&bid.Client.Company,
		&bid.Client.Address,
		&bid.Client.Email,
	)
	if err != nil {
		return nil, "", err
	}
	return &bid, listState, nil
}

// GetBid получает заявку по ID.
func (r *PostgresBidRepository) GetBid(ctx context.Context, bidId int) (*models.Bid, error) {
	query := bidSelectQuery + ` WHERE b.id = $1`
	bid, _, err := scanBid(r.DB.QueryRow(ctx, query, bidId))
	return bid, err
}

// ListGrouped получает активные заявки, сгруппированные по состоянию обработки.
func (r *PostgresBidRepository) ListGrouped(ctx context.Context) (*models.BidListResponse, error) {
	query := bidSelectQuery + ` WHERE b.list_state != $1 ORDER BY b.id`
	rows, err := r.DB.Query(ctx, query, StateRejected)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	grouped := models.BidListResponse{
		Untouched:  []models.Bid{},
		InProgress: []models.Bid{},
		Completed:  []models.Bid{},
	}
	for rows.Next() {
		bid, listState, err := scanBid(rows)
		if err != nil {
			return nil, err
		}
		switch listState {
		case StateInProgress:
			grouped.InProgress = append(grouped.InProgress, *bid)
		case StateCompleted:
			grouped.Completed = append(grouped.Completed, *bid)
		default:
			grouped.Untouched = append(grouped.Untouched, *bid)
		}
	}
	return &grouped, rows.Err()
}

// EditBid применяет частичное обновление заявки и выставляет новое
// состояние списка. Запрос собирается динамически по полям патча.
func (r *PostgresBidRepository) EditBid(ctx context.Context, bidId int, updateFields models.BidPatch, listState string) (*models.Bid, error) {
	setClauses := make([]string, 0, len(updateFields)+1)
	args := make([]interface{}, 0, len(updateFields)+2)
	argPos := 1

	for field, value := range updateFields {
		if !editableColumns[field] {
			return nil, models.NewErrorResponse(http.StatusBadRequest, fmt.Sprintf("field %s is not editable", field))
		}
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", field, argPos))
		args = append(args, value)
		argPos++
	}
	setClauses = append(setClauses, fmt.Sprintf("list_state = $%d", argPos))
	args = append(args, listState)
	argPos++
	args = append(args, bidId)

	updateQuery := fmt.Sprintf(`UPDATE bid SET %s WHERE id = $%d`, strings.Join(setClauses, ", "), argPos)
	if _, err := r.DB.Exec(ctx, updateQuery, args...); err != nil {
		return nil, err
	}
	return r.GetBid(ctx, bidId)
}

// RejectBid записывает отклонение заявки и убирает её из активных списков.
// Возвращает transit_method заявки на момент отклонения.
func (r *PostgresBidRepository) RejectBid(ctx context.Context, bidId int, comment string) (*models.RejectBidResponse, error) {
	var transitMethod *string
	selectQuery := `SELECT transit_method FROM bid WHERE id = $1`
	if err := r.DB.QueryRow(ctx, selectQuery, bidId).Scan(&transitMethod); err != nil {
		return nil, err
	}

	insertQuery := `INSERT INTO bid_rejection (id, bid_id, comment, created_at)
                   VALUES ($1, $2, $3, $4)`
	_, err := r.DB.Exec(ctx, insertQuery, uuid.New().String(), bidId, comment, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	updateQuery := `UPDATE bid SET list_state = $1 WHERE id = $2`
	if _, err = r.DB.Exec(ctx, updateQuery, StateRejected, bidId); err != nil {
		return nil, err
	}
	return &models.RejectBidResponse{TransitMethod: transitMethod}, nil
}

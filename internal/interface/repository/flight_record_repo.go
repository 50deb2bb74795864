package repository

import (
	"context"
	"time"

	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormFlightRecordRepository implements the FlightRecordRepository interface
type GormFlightRecordRepository struct {
	db *gorm.DB
}

// NewGormFlightRecordRepository creates a new GORM flight record repository
func NewGormFlightRecordRepository(db *gorm.DB) repository.FlightRecordRepository {
	return &GormFlightRecordRepository{
		db: db,
	}
}

// Flights GORM model for database mapping
type Flights struct {
	ID           string `gorm:"primaryKey;column:id"`
	Waid         string `gorm:"column:waid;index"`
	Origin       string `gorm:"column:origin"`
	Dest         string `gorm:"column:dest"`
	DepartDate   string `gorm:"column:depart_date;index"`
	DepartTime   string `gorm:"column:depart_time"`
	ArrivalDate  string `gorm:"column:arrival_date"`
	ArrivalTime  string `gorm:"column:arrival_time"`
	Airline      string `gorm:"column:airline"`
	FlightNumber string `gorm:"column:flight_number"`
	PNR          string `gorm:"column:pnr"`
	Passengers   string `gorm:"column:passengers"`
	SourceDocID  string `gorm:"column:source_doc_id"`
	RawExcerpt   string `gorm:"column:raw_excerpt"`
	CreatedAt    time.Time
}

// TableName overrides the default table name
func (Flights) TableName() string {
	return "flights"
}

func toFlightEntity(m *Flights) *entity.FlightRecord {
	return &entity.FlightRecord{
		ID:           m.ID,
		Waid:         m.Waid,
		Origin:       m.Origin,
		Dest:         m.Dest,
		DepartDate:   m.DepartDate,
		DepartTime:   m.DepartTime,
		ArrivalDate:  m.ArrivalDate,
		ArrivalTime:  m.ArrivalTime,
		Airline:      m.Airline,
		FlightNumber: m.FlightNumber,
		PNR:          m.PNR,
		Passengers:   m.Passengers,
		SourceDocID:  m.SourceDocID,
		RawExcerpt:   m.RawExcerpt,
		CreatedAt:    m.CreatedAt,
	}
}

// Save inserts a flight record. Each insert is a single atomic write;
// duplicate submissions append rather than merge.
func (r *GormFlightRecordRepository) Save(ctx context.Context, record *entity.FlightRecord) error {
	model := &Flights{
		ID:           record.ID,
		Waid:         record.Waid,
		Origin:       record.Origin,
		Dest:         record.Dest,
		DepartDate:   record.DepartDate,
		DepartTime:   record.DepartTime,
		ArrivalDate:  record.ArrivalDate,
		ArrivalTime:  record.ArrivalTime,
		Airline:      record.Airline,
		FlightNumber: record.FlightNumber,
		PNR:          record.PNR,
		Passengers:   record.Passengers,
		SourceDocID:  record.SourceDocID,
		RawExcerpt:   record.RawExcerpt,
		CreatedAt:    record.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(model).Error
}

// ListUpcoming returns the owner's flights departing between today and
// today+withinDays, soonest first; records without a depart time sort
// after dated ones on the same day.
func (r *GormFlightRecordRepository) ListUpcoming(ctx context.Context, waid string, withinDays int, limit int) ([]*entity.FlightRecord, error) {
	today := time.Now().UTC().Format("2006-01-02")
	until := time.Now().UTC().AddDate(0, 0, withinDays).Format("2006-01-02")

	var models []Flights
	result := r.db.WithContext(ctx).
		Where("waid = ? AND depart_date BETWEEN ? AND ?", waid, today, until).
		Order("depart_date ASC, NULLIF(depart_time, '') ASC NULLS LAST").
		Limit(limit).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	records := make([]*entity.FlightRecord, 0, len(models))
	for i := range models {
		records = append(records, toFlightEntity(&models[i]))
	}
	return records, nil
}

// ListByDepartDate returns all flights departing on the given date.
func (r *GormFlightRecordRepository) ListByDepartDate(ctx context.Context, date string) ([]*entity.FlightRecord, error) {
	var models []Flights
	result := r.db.WithContext(ctx).Where("depart_date = ?", date).Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	records := make([]*entity.FlightRecord, 0, len(models))
	for i := range models {
		records = append(records, toFlightEntity(&models[i]))
	}
	return records, nil
}

// ListBetween returns the owner's flights in a date window, soonest first.
func (r *GormFlightRecordRepository) ListBetween(ctx context.Context, waid, from, until string) ([]*entity.FlightRecord, error) {
	var models []Flights
	result := r.db.WithContext(ctx).
		Where("waid = ? AND depart_date BETWEEN ? AND ?", waid, from, until).
		Order("depart_date ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	records := make([]*entity.FlightRecord, 0, len(models))
	for i := range models {
		records = append(records, toFlightEntity(&models[i]))
	}
	return records, nil
}

// Count returns the total number of flight records.
func (r *GormFlightRecordRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&Flights{}).Count(&count)
	return count, result.Error
}

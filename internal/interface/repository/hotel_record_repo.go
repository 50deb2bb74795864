package repository

import (
	"context"
	"time"

	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormHotelRecordRepository implements the HotelRecordRepository interface
type GormHotelRecordRepository struct {
	db *gorm.DB
}

// NewGormHotelRecordRepository creates a new GORM hotel record repository
func NewGormHotelRecordRepository(db *gorm.DB) repository.HotelRecordRepository {
	return &GormHotelRecordRepository{
		db: db,
	}
}

// Hotels GORM model for database mapping
type Hotels struct {
	ID           string `gorm:"primaryKey;column:id"`
	Waid         string `gorm:"column:waid;index"`
	HotelName    string `gorm:"column:hotel_name"`
	City         string `gorm:"column:city"`
	CheckinDate  string `gorm:"column:checkin_date;index"`
	CheckoutDate string `gorm:"column:checkout_date"`
	Address      string `gorm:"column:address"`
	SourceDocID  string `gorm:"column:source_doc_id"`
	RawExcerpt   string `gorm:"column:raw_excerpt"`
	CreatedAt    time.Time
}

// TableName overrides the default table name
func (Hotels) TableName() string {
	return "hotels"
}

func toHotelEntity(m *Hotels) *entity.HotelRecord {
	return &entity.HotelRecord{
		ID:           m.ID,
		Waid:         m.Waid,
		HotelName:    m.HotelName,
		City:         m.City,
		CheckinDate:  m.CheckinDate,
		CheckoutDate: m.CheckoutDate,
		Address:      m.Address,
		SourceDocID:  m.SourceDocID,
		RawExcerpt:   m.RawExcerpt,
		CreatedAt:    m.CreatedAt,
	}
}

// Save inserts a hotel record as a single atomic write.
func (r *GormHotelRecordRepository) Save(ctx context.Context, record *entity.HotelRecord) error {
	model := &Hotels{
		ID:           record.ID,
		Waid:         record.Waid,
		HotelName:    record.HotelName,
		City:         record.City,
		CheckinDate:  record.CheckinDate,
		CheckoutDate: record.CheckoutDate,
		Address:      record.Address,
		SourceDocID:  record.SourceDocID,
		RawExcerpt:   record.RawExcerpt,
		CreatedAt:    record.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(model).Error
}

// ListByCheckinDate returns all hotel stays checking in on the given date.
func (r *GormHotelRecordRepository) ListByCheckinDate(ctx context.Context, date string) ([]*entity.HotelRecord, error) {
	var models []Hotels
	result := r.db.WithContext(ctx).Where("checkin_date = ?", date).Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	records := make([]*entity.HotelRecord, 0, len(models))
	for i := range models {
		records = append(records, toHotelEntity(&models[i]))
	}
	return records, nil
}

// ListBetween returns the owner's hotel stays in a check-in date window.
func (r *GormHotelRecordRepository) ListBetween(ctx context.Context, waid, from, until string) ([]*entity.HotelRecord, error) {
	var models []Hotels
	result := r.db.WithContext(ctx).
		Where("waid = ? AND checkin_date BETWEEN ? AND ?", waid, from, until).
		Order("checkin_date ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	records := make([]*entity.HotelRecord, 0, len(models))
	for i := range models {
		records = append(records, toHotelEntity(&models[i]))
	}
	return records, nil
}

// Count returns the total number of hotel records.
func (r *GormHotelRecordRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&Hotels{}).Count(&count)
	return count, result.Error
}

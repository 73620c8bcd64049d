package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type captionRecord struct {
	ID                 string    `gorm:"type:uuid;primaryKey"`
	SessionID          string    `gorm:"type:uuid;index"`
	OriginalCandidates []string  `gorm:"serializer:json;type:jsonb"`
	FinalText          string    `gorm:"type:text;not null"`
	Style              string    `gorm:"size:32"`
	LengthKey          string    `gorm:"size:16"`
	Language           string    `gorm:"size:64"`
	Profile            string    `gorm:"size:128"`
	ImagePath          string    `gorm:"type:text"`
	PromptUsed         string    `gorm:"type:text"`
	CreatedAt          time.Time `gorm:"index"`
}

func (captionRecord) TableName() string {
	return "caption_records"
}

// GormSink keeps history in a SQL database through gorm.
type GormSink struct {
	db *gorm.DB
}

// OpenPostgres connects to dsn and migrates the history table.
func OpenPostgres(dsn string) (*GormSink, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres history requires a dsn")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		// the terminal belongs to the TUI
		Logger: logger.Discard,
	})
	if err != nil {
		return nil, fmt.Errorf("connect history database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetMaxOpenConns(4)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return NewGormSink(db)
}

// NewGormSink wraps an open connection, creating the table if needed.
func NewGormSink(db *gorm.DB) (*GormSink, error) {
	if err := db.AutoMigrate(&captionRecord{}); err != nil {
		return nil, fmt.Errorf("migrate caption_records: %w", err)
	}
	return &GormSink{db: db}, nil
}

func (g *GormSink) Save(ctx context.Context, rec Record) error {
	row := toRow(rec)
	if err := g.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("insert caption record: %w", err)
	}
	return nil
}

func (g *GormSink) List(ctx context.Context, limit int) ([]Record, error) {
	query := g.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []captionRecord
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list caption records: %w", err)
	}

	recs := make([]Record, len(rows))
	for i, r := range rows {
		recs[i] = fromRow(r)
	}
	return recs, nil
}

func (g *GormSink) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func toRow(r Record) captionRecord {
	return captionRecord{
		ID:                 r.ID,
		SessionID:          r.SessionID,
		OriginalCandidates: r.OriginalCandidates,
		FinalText:          r.FinalText,
		Style:              r.Style,
		LengthKey:          r.LengthKey,
		Language:           r.Language,
		Profile:            r.Profile,
		ImagePath:          r.ImagePath,
		PromptUsed:         r.PromptUsed,
		CreatedAt:          r.CreatedAt,
	}
}

func fromRow(r captionRecord) Record {
	return Record{
		ID:                 r.ID,
		SessionID:          r.SessionID,
		OriginalCandidates: r.OriginalCandidates,
		FinalText:          r.FinalText,
		Style:              r.Style,
		LengthKey:          r.LengthKey,
		Language:           r.Language,
		Profile:            r.Profile,
		ImagePath:          r.ImagePath,
		PromptUsed:         r.PromptUsed,
		CreatedAt:          r.CreatedAt,
	}
}

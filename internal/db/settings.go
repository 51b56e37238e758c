package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pysugar/code-facts/internal/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Keys read by the provider gateway. The store itself accepts any key.
const (
	KeySelectedProvider = "selectedProvider"
	KeyAPIKey           = "apiKey"
	KeyBaseURL          = "baseUrl"
	KeySelectedModel    = "selectedModel"
)

// Settings is a last-write-wins key/value store backed by the settings table.
type Settings struct {
	db *gorm.DB
}

func NewSettings(db *gorm.DB) *Settings {
	return &Settings{db: db}
}

// Get returns the decoded value stored under key. ok is false when the key has
// never been set.
func (s *Settings) Get(ctx context.Context, key string) (any, bool, error) {
	var setting models.Setting
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, storageErr("get setting", err)
	}

	value, err := decodeValue(setting.Value)
	if err != nil {
		return nil, false, fmt.Errorf("decode setting %q: %w", key, err)
	}
	return value, true, nil
}

// GetString reads key as a string. Missing keys and non-string values read as "".
func (s *Settings) GetString(ctx context.Context, key string) (string, error) {
	value, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return "", err
	}
	str, _ := value.(string)
	return str, nil
}

// Set upserts value under key.
func (s *Settings) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode setting %q: %w", key, err)
	}

	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&models.Setting{Key: key, Value: string(raw)}).Error
	if err != nil {
		return storageErr("set setting", err)
	}
	return nil
}

// SetDefault stores value only when key is absent.
func (s *Settings) SetDefault(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode setting %q: %w", key, err)
	}

	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Setting{Key: key, Value: string(raw)}).Error
	if err != nil {
		return storageErr("seed setting", err)
	}
	return nil
}

// GetAll returns a snapshot of every stored setting.
func (s *Settings) GetAll(ctx context.Context) (map[string]any, error) {
	var settings []models.Setting
	if err := s.db.WithContext(ctx).Order("key").Find(&settings).Error; err != nil {
		return nil, storageErr("list settings", err)
	}

	result := make(map[string]any, len(settings))
	for _, setting := range settings {
		value, err := decodeValue(setting.Value)
		if err != nil {
			return nil, fmt.Errorf("decode setting %q: %w", setting.Key, err)
		}
		result[setting.Key] = value
	}
	return result, nil
}

func decodeValue(raw string) (any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return nil, err
	}
	return value, nil
}

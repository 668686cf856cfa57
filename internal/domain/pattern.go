package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConversionPattern is a curated or inferred conversion rule. Historical
// rows of the same transformation type feed the validator's blended
// confidence score.
type ConversionPattern struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SourceConcept      string    `gorm:"column:source_concept;not null;index" json:"source_concept"`
	TargetConcept      string    `gorm:"column:target_concept;not null" json:"target_concept"`
	TransformationType string    `gorm:"column:transformation_type;not null;index" json:"transformation_type"`
	Confidence         float64   `gorm:"column:confidence;not null;default:0" json:"confidence"`
	SuccessRate        float64   `gorm:"column:success_rate;not null;default:0" json:"success_rate"`
	UsageCount         int64     `gorm:"column:usage_count;not null;default:0" json:"usage_count"`
	Platform           string    `gorm:"column:platform;not null" json:"platform"`
	MinecraftVersion   string    `gorm:"column:minecraft_version;not null" json:"minecraft_version"`
	CreatedAt          time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt          time.Time `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ConversionPattern) TableName() string { return "conversion_pattern" }

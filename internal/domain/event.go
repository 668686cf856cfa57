package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// InferenceEvent is one recorded inference call, the raw material for the
// rolling statistics window. Append-only.
type InferenceEvent struct {
	ID               uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Concept          string    `gorm:"column:concept;not null;index" json:"concept"`
	TargetPlatform   string    `gorm:"column:target_platform;not null" json:"target_platform"`
	MinecraftVersion string    `gorm:"column:minecraft_version;not null" json:"minecraft_version"`
	Success          bool      `gorm:"column:success;not null" json:"success"`
	FailureKind      string    `gorm:"column:failure_kind" json:"failure_kind,omitempty"`
	PathType         string    `gorm:"column:path_type" json:"path_type,omitempty"`
	Confidence       float64   `gorm:"column:confidence;not null;default:0" json:"confidence"`
	DurationMS       int64     `gorm:"column:duration_ms;not null;default:0" json:"duration_ms"`
	CreatedAt        time.Time `gorm:"not null;default:now();index" json:"created_at"`
}

func (InferenceEvent) TableName() string { return "inference_event" }

// LearningEvent records one applied feedback update. Append-only.
type LearningEvent struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	JavaConcept    string         `gorm:"column:java_concept;not null;index" json:"java_concept"`
	BedrockConcept string         `gorm:"column:bedrock_concept;not null" json:"bedrock_concept"`
	EdgesUpdated   int            `gorm:"column:edges_updated;not null;default:0" json:"edges_updated"`
	ObservedScore  float64        `gorm:"column:observed_score;not null;default:0" json:"observed_score"`
	Applied        bool           `gorm:"column:applied;not null;default:false" json:"applied"`
	Metrics        datatypes.JSON `gorm:"column:metrics;type:jsonb" json:"metrics,omitempty"`
	CreatedAt      time.Time      `gorm:"not null;default:now();index" json:"created_at"`
}

func (LearningEvent) TableName() string { return "learning_event" }

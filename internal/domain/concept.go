package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ConceptNode is one platform-scoped concept in the knowledge graph: a Java
// class, a Bedrock component, a recipe shape. The relational row is the
// system of record; the matching neo4j node shares its ID.
// (name, platform, minecraft_version) resolves to at most one live row.
type ConceptNode struct {
	ID               uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name             string         `gorm:"column:name;not null;index:idx_concept_identity,unique,priority:1" json:"name"`
	Platform         string         `gorm:"column:platform;not null;index:idx_concept_identity,unique,priority:2;index:idx_concept_platform" json:"platform"`
	MinecraftVersion string         `gorm:"column:minecraft_version;not null;index:idx_concept_identity,unique,priority:3" json:"minecraft_version"`
	Description      string         `gorm:"column:description;type:text" json:"description,omitempty"`
	ExpertValidated  bool           `gorm:"column:expert_validated;not null;default:false" json:"expert_validated"`
	CommunityRating  float64        `gorm:"column:community_rating;not null;default:0" json:"community_rating"`
	Properties       datatypes.JSON `gorm:"column:properties;type:jsonb" json:"properties,omitempty"`
	CreatedAt        time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	// Soft archival only; historical paths keep referencing archived nodes.
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ConceptNode) TableName() string { return "concept_node" }

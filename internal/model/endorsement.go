package model

import (
	"time"
)

// SkillEndorsementModel 技能背书记录
type SkillEndorsementModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	UserId     string `json:"user_id" gorm:"not null;index"`
	Skill      string `json:"skill" gorm:"not null"`
	EndorsedBy string `json:"endorsed_by" gorm:"not null"`
}

// TableName 自定义表名
func (SkillEndorsementModel) TableName() string {
	return "skill_endorsement"
}

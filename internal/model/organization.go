package model

import (
	"time"
)

// OrganizationModel 公益组织模型
// 既作为捐赠对象的慈善机构，也作为志愿服务的认证组织
type OrganizationModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name        string `json:"name" gorm:"not null" binding:"required"`
	Description string `json:"description" gorm:"type:text"`
	Category    string `json:"category"`

	// 认证信息（只有认证组织可以审核自报工时）
	Verified bool `json:"verified" gorm:"default:false"`

	// 链上信息
	WalletAddress string `json:"wallet_address"`
}

// TableName 自定义表名
func (OrganizationModel) TableName() string {
	return "organization"
}

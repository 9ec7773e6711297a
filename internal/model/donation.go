package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DonationModel 捐赠记录（链上结算后写入，本服务只读统计）
type DonationModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	DonorId   string          `json:"donor_id" gorm:"not null;index"` // 捐赠者标识（钱包地址或账户ID）
	CharityId *int64          `json:"charity_id" gorm:"index"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:decimal(30,8);not null"`

	// 区块链信息
	TxHash   string `json:"tx_hash" gorm:"uniqueIndex"`
	BlockNum int64  `json:"block_num"`

	// 关联
	Charity *OrganizationModel `json:"charity,omitempty" gorm:"foreignKey:CharityId"`
}

// TableName 自定义表名
func (DonationModel) TableName() string {
	return "donation"
}

package logic

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/haien/ccs/internal/logger"
	"github.com/haien/ccs/internal/model"
	"gorm.io/gorm"
)

// DonationLogic 捐赠记录业务逻辑
type DonationLogic struct {
	db *gorm.DB
}

// NewDonationLogic 创建捐赠记录业务逻辑
func NewDonationLogic(db *gorm.DB) *DonationLogic {
	return &DonationLogic{db: db}
}

// CreateDonation 写入已结算的捐赠记录
// 按交易哈希去重，重复的链上事件跳过写入
func (d *DonationLogic) CreateDonation(donation *model.DonationModel) error {
	if err := d.validateDonation(donation); err != nil {
		return err
	}

	if donation.TxHash != "" {
		var count int64
		if err := d.db.Model(&model.DonationModel{}).
			Where("tx_hash = ?", donation.TxHash).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			logger.Debug("Donation with tx %s already recorded, skipping", donation.TxHash)
			return nil
		}
	}

	return d.db.Create(donation).Error
}

// GetUserDonations 获取用户捐赠记录
func (d *DonationLogic) GetUserDonations(donorId string, page, pageSize int) ([]model.DonationModel, int64, error) {
	var donations []model.DonationModel
	var total int64

	if err := d.db.Model(&model.DonationModel{}).
		Where("donor_id = ?", donorId).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := d.db.Preload("Charity").
		Where("donor_id = ?", donorId).
		Offset(offset).
		Limit(pageSize).
		Order("created_at DESC").
		Find(&donations).Error; err != nil {
		return nil, 0, err
	}

	return donations, total, nil
}

// GetLastProcessedBlock 获取已入库捐赠的最大区块号
func (d *DonationLogic) GetLastProcessedBlock() (int64, error) {
	var lastBlock int64
	if err := d.db.Model(&model.DonationModel{}).
		Select("COALESCE(MAX(block_num), 0)").
		Scan(&lastBlock).Error; err != nil {
		return 0, err
	}
	return lastBlock, nil
}

// validateDonation 校验捐赠数据
func (d *DonationLogic) validateDonation(donation *model.DonationModel) error {
	if donation.DonorId == "" {
		return NewValidationError("donor_id", "捐赠者标识不能为空")
	}
	// 链上捐赠的标识是钱包地址，必须是合法的十六进制地址
	if strings.HasPrefix(donation.DonorId, "0x") && !common.IsHexAddress(donation.DonorId) {
		return NewValidationError("donor_id", "无效的钱包地址")
	}
	if donation.Amount.IsNegative() {
		return NewValidationError("amount", "捐赠金额不能为负数")
	}
	return nil
}

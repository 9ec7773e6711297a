package chain

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/haien/ccs/internal/logger"
	"github.com/haien/ccs/internal/logic"
	"github.com/haien/ccs/internal/model"
	"gorm.io/gorm"
)

// eventSource 捐赠事件来源
type eventSource interface {
	GetLatestBlock() (uint64, error)
	GetStartBlock() int64
	GetConfirmations() int
	FilterDonationLogs(fromBlock, toBlock int64) ([]types.Log, error)
	ParseDonationLog(log types.Log) (*DonationEvent, error)
}

// DonationMonitor 链上捐赠事件监控器
// 只读取已结算的捐赠事件写入捐赠表，不签名不发交易
type DonationMonitor struct {
	client        eventSource
	donationLogic *logic.DonationLogic
	lastBlock     int64
	ctx           context.Context
	cancel        context.CancelFunc
}

// NewDonationMonitor 创建捐赠事件监控器
func NewDonationMonitor(db *gorm.DB, client *Client) *DonationMonitor {
	ctx, cancel := context.WithCancel(context.Background())

	return &DonationMonitor{
		client:        client,
		donationLogic: logic.NewDonationLogic(db),
		ctx:           ctx,
		cancel:        cancel,
	}
}

// Start 开始监控链上捐赠事件
func (m *DonationMonitor) Start() error {
	// 获取最后处理的区块号
	if err := m.loadLastBlock(); err != nil {
		logger.Warn("Failed to load last block, starting from config: %v", err)
		m.lastBlock = m.client.GetStartBlock()
	}

	logger.Info("Starting donation monitor from block %d", m.lastBlock)

	// 启动监控循环
	go m.monitorLoop()
	return nil
}

// Stop 停止监控
func (m *DonationMonitor) Stop() {
	m.cancel()
}

// loadLastBlock 从捐赠表加载最后处理的区块号
func (m *DonationMonitor) loadLastBlock() error {
	lastBlock, err := m.donationLogic.GetLastProcessedBlock()
	if err != nil {
		return err
	}

	if lastBlock == 0 {
		m.lastBlock = m.client.GetStartBlock()
	} else {
		m.lastBlock = lastBlock
	}
	return nil
}

// monitorLoop 监控循环
func (m *DonationMonitor) monitorLoop() {
	ticker := time.NewTicker(60 * time.Second) // 每60秒检查一次
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			logger.Info("Donation monitor stopped")
			return
		case <-ticker.C:
			if err := m.processNewBlocks(); err != nil {
				logger.Error("Error processing donation events: %v", err)
			}
		}
	}
}

// processNewBlocks 处理新确认的区块范围
func (m *DonationMonitor) processNewBlocks() error {
	latest, err := m.client.GetLatestBlock()
	if err != nil {
		return err
	}

	// 只处理已确认的区块
	confirmed := int64(latest) - int64(m.client.GetConfirmations())
	if confirmed <= m.lastBlock {
		return nil
	}

	logs, err := m.client.FilterDonationLogs(m.lastBlock+1, confirmed)
	if err != nil {
		return err
	}

	for _, log := range logs {
		event, err := m.client.ParseDonationLog(log)
		if err != nil {
			logger.Error("Failed to parse donation log %s: %v", log.TxHash.Hex(), err)
			continue
		}

		donation := &model.DonationModel{
			DonorId:   event.Donor,
			CharityId: &event.CharityId,
			Amount:    event.Amount,
			TxHash:    event.TxHash,
			BlockNum:  event.BlockNum,
		}
		// 写入失败时不推进区块游标，下个周期重扫该区间（按交易哈希去重，已入库的事件跳过）
		if err := m.donationLogic.CreateDonation(donation); err != nil {
			return fmt.Errorf("failed to record donation %s: %w", event.TxHash, err)
		}
		logger.Info("Recorded donation %s from %s, amount %s", event.TxHash, event.Donor, event.Amount)
	}

	m.lastBlock = confirmed
	return nil
}

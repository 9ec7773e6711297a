package chain

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/haien/ccs/internal/config"
	"github.com/shopspring/decimal"
)

// 捐赠合约ABI定义（只监听事件，不发交易）
const donationABI = `[
	{
		"anonymous": false,
		"inputs": [
			{"indexed": true, "name": "charityId", "type": "uint256"},
			{"indexed": true, "name": "donor", "type": "address"},
			{"indexed": false, "name": "amount", "type": "uint256"}
		],
		"name": "DonationMade",
		"type": "event"
	}
]`

// Client 以太坊只读客户端
type Client struct {
	client        *ethclient.Client
	contractAddr  common.Address
	startBlock    uint64
	confirmations int
	contractABI   abi.ABI
}

// DonationEvent 解析后的链上捐赠事件
type DonationEvent struct {
	CharityId int64
	Donor     string
	Amount    decimal.Decimal
	TxHash    string
	BlockNum  int64
}

func Init(cfg config.EthereumConfig) (*Client, error) {
	// 连接以太坊客户端
	client, err := ethclient.Dial(cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ethereum client: %w", err)
	}

	if !common.IsHexAddress(cfg.ContractAddr) {
		return nil, fmt.Errorf("invalid donation contract address: %s", cfg.ContractAddr)
	}

	// 解析ABI
	parsedABI, err := abi.JSON(strings.NewReader(donationABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse contract ABI: %w", err)
	}

	return &Client{
		client:        client,
		contractAddr:  common.HexToAddress(cfg.ContractAddr),
		startBlock:    cfg.StartBlock,
		confirmations: cfg.Confirmations,
		contractABI:   parsedABI,
	}, nil
}

// GetLatestBlock 获取最新区块号
func (c *Client) GetLatestBlock() (uint64, error) {
	header, err := c.client.HeaderByNumber(context.Background(), nil)
	if err != nil {
		return 0, err
	}
	return header.Number.Uint64(), nil
}

// GetStartBlock 获取配置的起始区块号
func (c *Client) GetStartBlock() int64 {
	return int64(c.startBlock)
}

// GetConfirmations 获取确认区块数
func (c *Client) GetConfirmations() int {
	return c.confirmations
}

// FilterDonationLogs 过滤指定区块范围内的捐赠事件日志
func (c *Client) FilterDonationLogs(fromBlock, toBlock int64) ([]types.Log, error) {
	query := ethereum.FilterQuery{
		FromBlock: big.NewInt(fromBlock),
		ToBlock:   big.NewInt(toBlock),
		Addresses: []common.Address{c.contractAddr},
		Topics:    [][]common.Hash{{c.contractABI.Events["DonationMade"].ID}},
	}
	return c.client.FilterLogs(context.Background(), query)
}

// ParseDonationLog 解析捐赠事件日志
func (c *Client) ParseDonationLog(log types.Log) (*DonationEvent, error) {
	if len(log.Topics) < 3 {
		return nil, fmt.Errorf("unexpected topic count %d for donation log", len(log.Topics))
	}

	values, err := c.contractABI.Unpack("DonationMade", log.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack donation log: %w", err)
	}
	amountWei, ok := values[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected amount type in donation log")
	}

	charityId := new(big.Int).SetBytes(log.Topics[1].Bytes())
	donor := common.BytesToAddress(log.Topics[2].Bytes())

	return &DonationEvent{
		CharityId: charityId.Int64(),
		Donor:     donor.Hex(),
		Amount:    decimal.NewFromBigInt(amountWei, -18), // wei -> ether
		TxHash:    log.TxHash.Hex(),
		BlockNum:  int64(log.BlockNumber),
	}, nil
}

package chain

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/haien/ccs/internal/logic"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return db, mock
}

// fakeEventSource 测试用的事件来源
type fakeEventSource struct {
	latest        uint64
	confirmations int
	logs          []types.Log
	event         *DonationEvent
	fromBlock     int64
	toBlock       int64
}

func (f *fakeEventSource) GetLatestBlock() (uint64, error) { return f.latest, nil }
func (f *fakeEventSource) GetStartBlock() int64            { return 100 }
func (f *fakeEventSource) GetConfirmations() int           { return f.confirmations }

func (f *fakeEventSource) FilterDonationLogs(fromBlock, toBlock int64) ([]types.Log, error) {
	f.fromBlock = fromBlock
	f.toBlock = toBlock
	return f.logs, nil
}

func (f *fakeEventSource) ParseDonationLog(log types.Log) (*DonationEvent, error) {
	return f.event, nil
}

func donationEvent() *DonationEvent {
	return &DonationEvent{
		CharityId: 3,
		Donor:     "0x0000000000000000000000000000000000000001",
		Amount:    decimal.NewFromFloat(1.5),
		TxHash:    "0xabc",
		BlockNum:  105,
	}
}

func TestProcessNewBlocksRecordsConfirmedDonations(t *testing.T) {
	db, mock := newMockDB(t)
	source := &fakeEventSource{
		latest:        120,
		confirmations: 12,
		logs:          []types.Log{{BlockNumber: 105}},
		event:         donationEvent(),
	}
	monitor := &DonationMonitor{
		client:        source,
		donationLogic: logic.NewDonationLogic(db),
		lastBlock:     100,
	}

	mock.ExpectQuery(`SELECT count\(\*\) FROM "donation"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO "donation"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	require.NoError(t, monitor.processNewBlocks())

	// 只扫描已确认的区间
	assert.Equal(t, int64(101), source.fromBlock)
	assert.Equal(t, int64(108), source.toBlock)
	assert.Equal(t, int64(108), monitor.lastBlock)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProcessNewBlocksKeepsCursorOnWriteFailure(t *testing.T) {
	db, mock := newMockDB(t)
	source := &fakeEventSource{
		latest:        120,
		confirmations: 12,
		logs:          []types.Log{{BlockNumber: 105}},
		event:         donationEvent(),
	}
	monitor := &DonationMonitor{
		client:        source,
		donationLogic: logic.NewDonationLogic(db),
		lastBlock:     100,
	}

	mock.ExpectQuery(`SELECT count\(\*\) FROM "donation"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO "donation"`).
		WillReturnError(errors.New("connection reset"))

	err := monitor.processNewBlocks()
	require.Error(t, err)

	// 游标不推进，下个周期重扫同一区间
	assert.Equal(t, int64(100), monitor.lastBlock)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProcessNewBlocksWaitsForConfirmations(t *testing.T) {
	source := &fakeEventSource{latest: 110, confirmations: 12}
	monitor := &DonationMonitor{client: source, lastBlock: 100}

	require.NoError(t, monitor.processNewBlocks())
	assert.Equal(t, int64(100), monitor.lastBlock)
	assert.Equal(t, int64(0), source.fromBlock) // 未触发日志扫描
}

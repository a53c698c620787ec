package repository

import (
	"context"
	"sync"
	"testing"

	"croupier/domain/entities"
	"croupier/domain/events"
	"croupier/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capturingPublisher records events delivered after commit
type capturingPublisher struct {
	mu        sync.Mutex
	delivered []events.Event
}

func (p *capturingPublisher) Publish(event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.delivered = append(p.delivered, event)
	return nil
}

func (p *capturingPublisher) events() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.Event(nil), p.delivered...)
}

func TestUnitOfWork_CommitPersistsAndFlushesEvents(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	publisher := &capturingPublisher{}
	factory := NewUnitOfWorkFactory(testDB.DB, publisher)
	ctx := context.Background()

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	defer uow.Rollback()

	_, err := uow.AccountRepository().Create(ctx, 123456, 1000)
	require.NoError(t, err)
	require.NoError(t, uow.EventBus().Publish(events.UserRegisteredEvent{DiscordID: 123456}))

	// Nothing is delivered while the transaction is open
	assert.Empty(t, publisher.events())

	require.NoError(t, uow.Commit())

	account, err := NewAccountRepository(testDB.DB).GetByDiscordID(ctx, 123456)
	require.NoError(t, err)
	require.NotNil(t, account)
	assert.Equal(t, int64(1000), account.Balance)

	require.Len(t, publisher.events(), 1)
	assert.Equal(t, events.UserRegisteredEvent{DiscordID: 123456}, publisher.events()[0])
}

func TestUnitOfWork_RollbackDiscardsWritesAndEvents(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	publisher := &capturingPublisher{}
	factory := NewUnitOfWorkFactory(testDB.DB, publisher)
	ctx := context.Background()

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))

	_, err := uow.AccountRepository().Create(ctx, 123456, 1000)
	require.NoError(t, err)
	require.NoError(t, uow.EventBus().Publish(events.UserRegisteredEvent{DiscordID: 123456}))

	require.NoError(t, uow.Rollback())

	account, err := NewAccountRepository(testDB.DB).GetByDiscordID(ctx, 123456)
	require.NoError(t, err)
	assert.Nil(t, account)
	assert.Empty(t, publisher.events())
}

func TestUnitOfWork_RepositoriesShareTheTransaction(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	publisher := &capturingPublisher{}
	factory := NewUnitOfWorkFactory(testDB.DB, publisher)
	ctx := context.Background()

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	defer uow.Rollback()

	// The transaction entry sees the account created in the same unit of work
	_, err := uow.AccountRepository().Create(ctx, 123456, 1000)
	require.NoError(t, err)

	tx := &entities.Transaction{
		DiscordID:       123456,
		BalanceBefore:   1000,
		BalanceAfter:    900,
		ChangeAmount:    -100,
		TransactionType: entities.TransactionTypeGameStake,
	}
	require.NoError(t, uow.TransactionRepository().Record(ctx, tx))
	require.NoError(t, uow.Commit())

	transactions, err := NewTransactionRepository(testDB.DB).GetByUser(ctx, 123456, 10)
	require.NoError(t, err)
	assert.Len(t, transactions, 1)
}

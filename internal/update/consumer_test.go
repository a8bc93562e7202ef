package update

import (
	"context"
	"testing"
	"time"

	client "github.com/goverland-labs/goverland-platform-events/pkg/natsclient"
	"github.com/nats-io/nats-server/v2/server"
	natsserver "github.com/nats-io/nats-server/v2/test"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/require"
)

func runNatsServer(t *testing.T) *nats.Conn {
	t.Helper()

	opts := natsserver.DefaultTestOptions
	opts.Port = server.RANDOM_PORT
	opts.JetStream = true
	opts.StoreDir = t.TempDir()

	s := natsserver.RunServer(&opts)

	nc, err := nats.Connect(s.ClientURL())
	require.NoError(t, err)

	t.Cleanup(func() {
		nc.Close()
		s.Shutdown()
	})

	return nc
}

func TestUnitConsumerHandle(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, baseTime)
	c := NewConsumer(nil, env.service, "grant_updates")

	ev := GrantEnactedEvent{
		ProposalID: "proposal",
		EnactedAt:  baseTime,
		Months:     4,
	}
	require.NoError(t, c.handle(ctx, ev))

	stored, err := env.repo.FindByProposal(ctx, "proposal")
	require.NoError(t, err)
	require.Len(t, stored, 4)

	t.Run("redelivery is acknowledged", func(t *testing.T) {
		require.NoError(t, c.handle(ctx, ev))

		stored, err := env.repo.FindByProposal(ctx, "proposal")
		require.NoError(t, err)
		require.Len(t, stored, 4)
	})

	for name, ev := range map[string]GrantEnactedEvent{
		"unknown proposal": {ProposalID: "unknown", EnactedAt: baseTime, Months: 2},
		"no months":        {ProposalID: "no-vesting", EnactedAt: baseTime},
		"no enacted date":  {ProposalID: "no-vesting", Months: 2},
	} {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, c.handle(ctx, ev))
		})
	}
}

func TestUnitConsumerHandleStorageError(t *testing.T) {
	env := newTestEnv(t, baseTime)
	c := NewConsumer(nil, env.service, "grant_updates")

	ps, err := env.repo.db.DB()
	require.NoError(t, err)
	require.NoError(t, ps.Close())

	err = c.handle(context.Background(), GrantEnactedEvent{ProposalID: "proposal", EnactedAt: baseTime, Months: 2})
	require.Error(t, err)
}

func TestUnitConsumerSchedulesFromStream(t *testing.T) {
	nc := runNatsServer(t)
	env := newTestEnv(t, baseTime)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := NewConsumer(nc, env.service, "grant_updates")
	done := make(chan error, 1)
	go func() {
		done <- c.Start(ctx)
	}()

	pb, err := client.NewPublisher(nc)
	require.NoError(t, err)

	ev := GrantEnactedEvent{ProposalID: "proposal", EnactedAt: baseTime, Months: 3}
	require.NoError(t, pb.PublishJSON(ctx, SubjectGrantEnacted, ev))
	require.NoError(t, pb.PublishJSON(ctx, SubjectGrantEnacted, ev))

	require.Eventually(t, func() bool {
		stored, err := env.repo.FindByProposal(context.Background(), "proposal")

		return err == nil && len(stored) == 3
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

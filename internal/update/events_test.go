package update

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	client "github.com/goverland-labs/goverland-platform-events/pkg/natsclient"
	"github.com/stretchr/testify/require"
	"go.openly.dev/pointy"
)

func TestUnitNewEvent(t *testing.T) {
	for name, tc := range map[string]struct {
		update   Update
		expected string
	}{
		"submitted": {
			update: Update{
				ID:             "update-1",
				ProposalID:     "proposal",
				Status:         StatusLate,
				Author:         pointy.String("0xAuthor"),
				DueDate:        pointy.Pointer(baseTime),
				CompletionDate: pointy.Pointer(baseTime.Add(time.Hour)),
			},
			expected: `{
				"update_id": "update-1",
				"proposal_id": "proposal",
				"status": "late",
				"author": "0xAuthor",
				"due_date": "2024-03-10T12:00:00Z",
				"completion_date": "2024-03-10T13:00:00Z"
			}`,
		},
		"missed": {
			update: Update{
				ID:         "update-2",
				ProposalID: "proposal",
				Status:     StatusMissed,
				DueDate:    pointy.Pointer(baseTime),
			},
			expected: `{
				"update_id": "update-2",
				"proposal_id": "proposal",
				"status": "missed",
				"due_date": "2024-03-10T12:00:00Z"
			}`,
		},
	} {
		t.Run(name, func(t *testing.T) {
			raw, err := json.Marshal(newEvent(&tc.update))
			require.NoError(t, err)
			require.JSONEq(t, tc.expected, string(raw))
		})
	}
}

func TestUnitPublishSubmittedEvent(t *testing.T) {
	ctx := context.Background()
	nc := runNatsServer(t)

	sub, err := nc.SubscribeSync(SubjectUpdateSubmitted)
	require.NoError(t, err)

	pb, err := client.NewPublisher(nc)
	require.NoError(t, err)

	env := newTestEnv(t, baseTime.Add(-time.Hour))
	env.service.publisher = pb

	u := scheduled("update-1", baseTime)
	require.NoError(t, env.repo.Create(ctx, &u))

	_, err = env.service.Submit(ctx, SubmitRequest{
		ProposalID: "proposal",
		UpdateID:   u.ID,
		Caller:     authorAddress,
		Content:    validContent(authorAddress),
	})
	require.NoError(t, err)

	msg, err := sub.NextMsg(5 * time.Second)
	require.NoError(t, err)

	var ev Event
	require.NoError(t, json.Unmarshal(msg.Data, &ev))
	require.Equal(t, "update-1", ev.UpdateID)
	require.Equal(t, "proposal", ev.ProposalID)
	require.Equal(t, StatusDone, ev.Status)
	require.Equal(t, authorAddress, ev.Author)
	require.True(t, baseTime.Equal(*ev.DueDate))
	require.True(t, baseTime.Add(-time.Hour).Equal(*ev.CompletionDate))
}

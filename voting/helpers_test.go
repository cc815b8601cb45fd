// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/pollgram/models"
	"github.com/danielhkuo/pollgram/social"
	"github.com/danielhkuo/pollgram/store/sqlstore"
	"github.com/danielhkuo/pollgram/testutil"
	"github.com/danielhkuo/pollgram/voting"
)

type fixture struct {
	store *sqlstore.SQLStore
	graph *social.Graph
	svc   *voting.Service
}

func newFixture(t *testing.T, opts ...voting.Option) *fixture {
	t.Helper()
	st := testutil.SetupTestStore(t)
	graph := social.NewGraph(st, nil)
	return &fixture{store: st, graph: graph, svc: voting.NewService(st, graph, opts...)}
}

func viewer(u *models.User) voting.Viewer {
	return voting.ViewerFromUser(u)
}

func requireKind(t *testing.T, err error, kind voting.Kind, msg string) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, voting.KindOf(err), "error: %v", err)
	if msg != "" {
		var verr *voting.Error
		require.ErrorAs(t, err, &verr)
		require.Equal(t, msg, verr.Message)
	}
}

func counts(t *testing.T, resp *models.PollResponse) map[int]int64 {
	t.Helper()
	out := make(map[int]int64)
	for _, c := range resp.Choices {
		require.NotNil(t, c.VoteCount, "choice %d count hidden", c.Order)
		out[c.Order] = *c.VoteCount
	}
	return out
}

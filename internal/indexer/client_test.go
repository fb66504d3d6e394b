package indexer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/KamisAyaka/Crowdfunding/internal/config"
	"github.com/KamisAyaka/Crowdfunding/internal/model"
	"github.com/stretchr/testify/require"
)

// fakeIndexer 用固定的 data 段应答所有GraphQL查询
func fakeIndexer(t *testing.T, data string) *Client {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var req struct {
			Query string `json:"query"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotEmpty(t, req.Query)

		fmt.Fprintf(w, `{"data":%s}`, data)
	}))
	t.Cleanup(srv.Close)

	client, err := New(config.IndexerConfig{Endpoint: srv.URL, Timeout: 5})
	require.NoError(t, err)
	return client
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := New(config.IndexerConfig{})
	require.ErrorIs(t, err, model.ErrConfigMissing)

	client, err := New(config.IndexerConfig{Endpoint: "http://localhost:5000/graphql"})
	require.NoError(t, err)
	require.NotNil(t, client)
}

func TestFetchProjectEvents(t *testing.T) {
	t.Parallel()

	t.Run("events are sorted by block and log index", func(t *testing.T) {
		t.Parallel()

		// 索引服务故意乱序返回
		client := fakeIndexer(t, `{
			"allProjectCreateds": {"nodes": [{
				"id": "1", "creator": "0x00000000000000000000000000000000000000aa",
				"name": "p", "description": "", "goal": "100", "deadline": 1800000000,
				"txHash": "0xabc", "blockNumber": 1, "logIndex": 0
			}]},
			"allDonationMades": {"nodes": [
				{"donor": "0x00000000000000000000000000000000000000bb", "amount": "7", "currentAmount": "10",
				 "txHash": "0x2", "blockNumber": 5, "logIndex": 1},
				{"donor": "0x00000000000000000000000000000000000000bb", "amount": "3", "currentAmount": "3",
				 "txHash": "0x1", "blockNumber": 5, "logIndex": 0}
			]},
			"allFundsWithdrawns": {"nodes": []},
			"allAllowanceIncreaseds": {"nodes": []},
			"allProjectCompleteds": {"nodes": []},
			"allProjectFaileds": {"nodes": []}
		}`)

		events, err := client.FetchProjectEvents(context.Background(), "1")
		require.NoError(t, err)
		require.NotNil(t, events.Created)
		require.Equal(t, "0x00000000000000000000000000000000000000aa", events.Created.Creator)

		require.Len(t, events.Donations, 2)
		require.Equal(t, uint(0), events.Donations[0].LogIndex)
		require.Equal(t, "3", events.Donations[0].Amount.String())
		require.Equal(t, "10", events.Donations[1].CurrentAmount.String())
	})

	t.Run("malformed amount is a transport failure", func(t *testing.T) {
		t.Parallel()

		client := fakeIndexer(t, `{
			"allProjectCreateds": {"nodes": []},
			"allDonationMades": {"nodes": [
				{"donor": "0x00000000000000000000000000000000000000bb", "amount": "not-a-number",
				 "currentAmount": "1", "blockNumber": 1, "logIndex": 0}
			]},
			"allFundsWithdrawns": {"nodes": []},
			"allAllowanceIncreaseds": {"nodes": []},
			"allProjectCompleteds": {"nodes": []},
			"allProjectFaileds": {"nodes": []}
		}`)

		_, err := client.FetchProjectEvents(context.Background(), "1")
		var transportErr *model.TransportError
		require.ErrorAs(t, err, &transportErr)
	})

	t.Run("invalid donor address is rejected", func(t *testing.T) {
		t.Parallel()

		client := fakeIndexer(t, `{
			"allProjectCreateds": {"nodes": []},
			"allDonationMades": {"nodes": [
				{"donor": "bogus", "amount": "1", "currentAmount": "1", "blockNumber": 1, "logIndex": 0}
			]},
			"allFundsWithdrawns": {"nodes": []},
			"allAllowanceIncreaseds": {"nodes": []},
			"allProjectCompleteds": {"nodes": []},
			"allProjectFaileds": {"nodes": []}
		}`)

		_, err := client.FetchProjectEvents(context.Background(), "1")
		var transportErr *model.TransportError
		require.ErrorAs(t, err, &transportErr)
	})
}

func TestFetchProjectProposals(t *testing.T) {
	t.Parallel()

	client := fakeIndexer(t, `{
		"allProposalCreateds": {"nodes": [
			{"projectId": "1", "proposalId": "1", "description": "d", "amount": "100",
			 "voteDeadline": 1700000000, "blockNumber": 1, "logIndex": 0}
		]},
		"allVoteds": {"nodes": [
			{"projectId": "1", "proposalId": "1", "voter": "0x00000000000000000000000000000000000000aa",
			 "support": true, "amount": "5", "blockNumber": 3, "logIndex": 0},
			{"projectId": "1", "proposalId": "99", "voter": "0x00000000000000000000000000000000000000bb",
			 "support": false, "amount": "2", "blockNumber": 4, "logIndex": 0}
		]},
		"allProposalExecuteds": {"nodes": [
			{"projectId": "1", "proposalId": "1", "passed": true, "blockNumber": 9, "logIndex": 0}
		]}
	}`)

	bundles, err := client.FetchProjectProposals(context.Background(), "1")
	require.NoError(t, err)
	require.Len(t, bundles, 1)

	bundle := bundles[0]
	require.Equal(t, "1", bundle.Created.ProposalID)
	// 没有创建事件的孤儿投票被丢弃
	require.Len(t, bundle.Votes, 1)
	require.True(t, bundle.Votes[0].Support)
	require.NotNil(t, bundle.Executed)
	require.True(t, bundle.Executed.Passed)
}

func TestFetchProjectIDs(t *testing.T) {
	t.Parallel()

	client := fakeIndexer(t, `{"allProjectCreateds": {"nodes": [{"id": "1"}, {"id": "2"}]}}`)

	ids, err := client.FetchProjectIDs(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"1", "2"}, ids)
}

func TestQueryErrors(t *testing.T) {
	t.Parallel()

	t.Run("graphql error envelope", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"errors":[{"message":"syntax error"}]}`)
		}))
		t.Cleanup(srv.Close)

		client, err := New(config.IndexerConfig{Endpoint: srv.URL})
		require.NoError(t, err)

		_, err = client.FetchProjectIDs(context.Background())
		var transportErr *model.TransportError
		require.ErrorAs(t, err, &transportErr)
		require.Contains(t, transportErr.Error(), "syntax error")
	})

	t.Run("non-200 status", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		t.Cleanup(srv.Close)

		client, err := New(config.IndexerConfig{Endpoint: srv.URL})
		require.NoError(t, err)

		_, err = client.FetchProjectIDs(context.Background())
		var transportErr *model.TransportError
		require.ErrorAs(t, err, &transportErr)
	})

	t.Run("unreachable endpoint", func(t *testing.T) {
		t.Parallel()

		client, err := New(config.IndexerConfig{Endpoint: "http://127.0.0.1:1/graphql", Timeout: 1})
		require.NoError(t, err)

		_, err = client.FetchProjectIDs(context.Background())
		var transportErr *model.TransportError
		require.ErrorAs(t, err, &transportErr)
	})
}

func TestParseWei(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"0", "0", false},
		{"1000000000000000000", "1000000000000000000", false},
		{"", "", true},
		{"abc", "", true},
		{"-1", "", true},
		{"1.5", "", true},
	}

	for _, tt := range tests {
		v, err := parseWei(tt.input)
		if tt.wantErr {
			require.Error(t, err, "input %q", tt.input)
			continue
		}
		require.NoError(t, err, "input %q", tt.input)
		require.Equal(t, tt.want, v.String())
	}
}

package indexer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/KamisAyaka/Crowdfunding/internal/config"
	"github.com/KamisAyaka/Crowdfunding/internal/logger"
	"github.com/KamisAyaka/Crowdfunding/internal/model"
)

// Client 事件索引服务的查询客户端。
// 只做同步的请求/应答，连接池、重试和缓存都是索引服务一侧的职责。
type Client struct {
	endpoint string
	client   *http.Client
}

// New 创建索引服务客户端，Endpoint 未配置时拒绝创建
func New(cfg config.IndexerConfig) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("indexer.endpoint: %w", model.ErrConfigMissing)
	}

	timeout := time.Duration(cfg.Timeout) * time.Second
	if cfg.Timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		endpoint: cfg.Endpoint,
		client:   &http.Client{Timeout: timeout},
	}, nil
}

// graphqlRequest GraphQL请求体
type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// graphqlResponse GraphQL响应信封
type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// query 执行一次GraphQL查询并把 data 解码到 out
func (c *Client) query(ctx context.Context, op, query string, variables map[string]interface{}, out interface{}) error {
	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return model.NewTransportError(op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return model.NewTransportError(op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return model.NewTransportError(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return model.NewTransportError(op, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, payload))
	}

	var envelope graphqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return model.NewTransportError(op, fmt.Errorf("malformed response: %w", err))
	}
	if len(envelope.Errors) > 0 {
		return model.NewTransportError(op, fmt.Errorf("graphql error: %s", envelope.Errors[0].Message))
	}
	if envelope.Data == nil {
		return model.NewTransportError(op, fmt.Errorf("empty data"))
	}

	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return model.NewTransportError(op, fmt.Errorf("malformed data: %w", err))
	}
	return nil
}

// FetchProjectEvents 拉取一个项目的全部事件并按链上顺序排好
func (c *Client) FetchProjectEvents(ctx context.Context, projectID string) (*model.ProjectEvents, error) {
	const op = "project_events"

	var data struct {
		ProjectCreateds    connection[rawProjectCreated]    `json:"allProjectCreateds"`
		DonationMades      connection[rawDonation]          `json:"allDonationMades"`
		FundsWithdrawns    connection[rawWithdrawal]        `json:"allFundsWithdrawns"`
		AllowanceIncreases connection[rawAllowanceIncrease] `json:"allAllowanceIncreaseds"`
		ProjectCompleteds  connection[rawProjectCompleted]  `json:"allProjectCompleteds"`
		ProjectFaileds     connection[rawProjectFailed]     `json:"allProjectFaileds"`
	}
	if err := c.query(ctx, op, projectEventsQuery, map[string]interface{}{"id": projectID}, &data); err != nil {
		return nil, err
	}

	events := &model.ProjectEvents{}

	if len(data.ProjectCreateds.Nodes) > 0 {
		created, err := data.ProjectCreateds.Nodes[0].toEvent()
		if err != nil {
			return nil, model.NewTransportError(op, err)
		}
		events.Created = created
	}

	for i, row := range data.DonationMades.Nodes {
		ev, err := row.toEvent(projectID)
		if err != nil {
			return nil, model.NewTransportError(op, fmt.Errorf("donation[%d]: %w", i, err))
		}
		events.Donations = append(events.Donations, *ev)
	}
	for i, row := range data.FundsWithdrawns.Nodes {
		ev, err := row.toEvent(projectID)
		if err != nil {
			return nil, model.NewTransportError(op, fmt.Errorf("withdrawal[%d]: %w", i, err))
		}
		events.Withdrawals = append(events.Withdrawals, *ev)
	}
	for i, row := range data.AllowanceIncreases.Nodes {
		ev, err := row.toEvent(projectID)
		if err != nil {
			return nil, model.NewTransportError(op, fmt.Errorf("allowance[%d]: %w", i, err))
		}
		events.AllowanceIncreases = append(events.AllowanceIncreases, *ev)
	}
	if len(data.ProjectCompleteds.Nodes) > 0 {
		events.Completed = data.ProjectCompleteds.Nodes[0].toEvent(projectID)
	}
	if len(data.ProjectFaileds.Nodes) > 0 {
		events.Failed = data.ProjectFaileds.Nodes[0].toEvent(projectID)
	}

	// 索引服务的行序不可信，统一按 (区块号, 日志序号) 重排
	model.SortDonations(events.Donations)
	model.SortWithdrawals(events.Withdrawals)
	model.SortAllowanceIncreases(events.AllowanceIncreases)

	logger.Debug("Fetched project %s events: %d donations, %d withdrawals",
		projectID, len(events.Donations), len(events.Withdrawals))

	return events, nil
}

// FetchProposalEvents 拉取单个提案的全部事件
func (c *Client) FetchProposalEvents(ctx context.Context, projectID, proposalID string) (*model.ProposalEvents, error) {
	const op = "proposal_events"

	var data rawProposalData
	vars := map[string]interface{}{"projectId": projectID, "proposalId": proposalID}
	if err := c.query(ctx, op, proposalEventsQuery, vars, &data); err != nil {
		return nil, err
	}

	bundles, err := groupProposalEvents(op, &data)
	if err != nil {
		return nil, err
	}
	for _, b := range bundles {
		if b.Created != nil && b.Created.ProposalID == proposalID {
			return b, nil
		}
	}
	return &model.ProposalEvents{}, nil
}

// FetchProjectProposals 拉取一个项目名下的所有提案事件，按提案分组
func (c *Client) FetchProjectProposals(ctx context.Context, projectID string) ([]*model.ProposalEvents, error) {
	const op = "project_proposals"

	var data rawProposalData
	vars := map[string]interface{}{"projectId": projectID}
	if err := c.query(ctx, op, projectProposalsQuery, vars, &data); err != nil {
		return nil, err
	}

	return groupProposalEvents(op, &data)
}

// FetchProjectIDs 拉取全部项目ID，供整体刷新任务使用
func (c *Client) FetchProjectIDs(ctx context.Context) ([]string, error) {
	const op = "project_ids"

	var data struct {
		ProjectCreateds connection[struct {
			ID string `json:"id"`
		}] `json:"allProjectCreateds"`
	}
	if err := c.query(ctx, op, projectIDsQuery, nil, &data); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(data.ProjectCreateds.Nodes))
	for _, node := range data.ProjectCreateds.Nodes {
		if node.ID == "" {
			return nil, model.NewTransportError(op, fmt.Errorf("empty project id"))
		}
		ids = append(ids, node.ID)
	}
	return ids, nil
}

// groupProposalEvents 把提案相关的三类事件按 proposalId 分组成事件包
func groupProposalEvents(op string, data *rawProposalData) ([]*model.ProposalEvents, error) {
	byID := make(map[string]*model.ProposalEvents)
	order := make([]string, 0, len(data.ProposalCreateds.Nodes))

	for i, row := range data.ProposalCreateds.Nodes {
		ev, err := row.toEvent()
		if err != nil {
			return nil, model.NewTransportError(op, fmt.Errorf("proposal[%d]: %w", i, err))
		}
		if _, ok := byID[ev.ProposalID]; !ok {
			order = append(order, ev.ProposalID)
		}
		byID[ev.ProposalID] = &model.ProposalEvents{Created: ev}
	}

	for i, row := range data.Voteds.Nodes {
		ev, err := row.toEvent()
		if err != nil {
			return nil, model.NewTransportError(op, fmt.Errorf("vote[%d]: %w", i, err))
		}
		bundle, ok := byID[ev.ProposalID]
		if !ok {
			// 没有创建事件的孤儿投票，隔离掉而不是混入视图
			logger.Warn("Dropping vote for unknown proposal %s/%s", ev.ProjectID, ev.ProposalID)
			continue
		}
		bundle.Votes = append(bundle.Votes, *ev)
	}

	for _, row := range data.ProposalExecuteds.Nodes {
		ev := row.toEvent()
		if bundle, ok := byID[ev.ProposalID]; ok {
			bundle.Executed = ev
		}
	}

	bundles := make([]*model.ProposalEvents, 0, len(order))
	for _, id := range order {
		bundle := byID[id]
		model.SortVotes(bundle.Votes)
		bundles = append(bundles, bundle)
	}
	return bundles, nil
}

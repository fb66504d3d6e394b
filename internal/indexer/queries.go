package indexer

// 索引服务的GraphQL查询语句。
// 所有事件都带 blockNumber/logIndex，客户端取回后统一按链上顺序重排，
// 不信任索引服务返回的行序。

const projectEventsQuery = `
query GetProjectEvents($id: String!) {
  allProjectCreateds(filter: { id: { equalTo: $id } }) {
    nodes {
      id
      creator
      name
      description
      goal
      deadline
      txHash
      blockNumber
      logIndex
    }
  }
  allDonationMades(filter: { id: { equalTo: $id } }) {
    nodes {
      donor
      amount
      currentAmount
      txHash
      blockNumber
      logIndex
    }
  }
  allFundsWithdrawns(filter: { id: { equalTo: $id } }) {
    nodes {
      amount
      txHash
      blockNumber
      logIndex
    }
  }
  allAllowanceIncreaseds(filter: { id: { equalTo: $id } }) {
    nodes {
      amount
      txHash
      blockNumber
      logIndex
    }
  }
  allProjectCompleteds(filter: { id: { equalTo: $id } }) {
    nodes {
      isSuccessful
      txHash
      blockNumber
      logIndex
    }
  }
  allProjectFaileds(filter: { id: { equalTo: $id } }) {
    nodes {
      txHash
      blockNumber
      logIndex
    }
  }
}
`

const projectProposalsQuery = `
query GetProjectProposals($projectId: String!) {
  allProposalCreateds(condition: { projectId: $projectId }) {
    nodes {
      projectId
      proposalId
      description
      amount
      voteDeadline
      txHash
      blockNumber
      logIndex
    }
  }
  allVoteds(condition: { projectId: $projectId }) {
    nodes {
      projectId
      proposalId
      voter
      support
      amount
      txHash
      blockNumber
      logIndex
    }
  }
  allProposalExecuteds(condition: { projectId: $projectId }) {
    nodes {
      projectId
      proposalId
      passed
      txHash
      blockNumber
      logIndex
    }
  }
}
`

const proposalEventsQuery = `
query GetProposalDetail($projectId: String!, $proposalId: String!) {
  allProposalCreateds(condition: { projectId: $projectId, proposalId: $proposalId }) {
    nodes {
      projectId
      proposalId
      description
      amount
      voteDeadline
      txHash
      blockNumber
      logIndex
    }
  }
  allVoteds(condition: { projectId: $projectId, proposalId: $proposalId }) {
    nodes {
      projectId
      proposalId
      voter
      support
      amount
      txHash
      blockNumber
      logIndex
    }
  }
  allProposalExecuteds(condition: { projectId: $projectId, proposalId: $proposalId }) {
    nodes {
      projectId
      proposalId
      passed
      txHash
      blockNumber
      logIndex
    }
  }
}
`

const projectIDsQuery = `
query GetProjectIds {
  allProjectCreateds {
    nodes {
      id
    }
  }
}
`

package contract

// 写路径涉及的两个合约的函数ABI。
// 本服务只用它们打包calldata，事件解码由索引服务完成。

const crowdfundingABI = `[
	{
		"inputs": [
			{"name": "projectId", "type": "uint256"},
			{"name": "topDonors", "type": "address[]"},
			{"name": "topAmounts", "type": "uint256[]"}
		],
		"name": "completeProject",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	},
	{
		"inputs": [
			{"name": "projectId", "type": "uint256"},
			{"name": "amount", "type": "uint256"}
		],
		"name": "withdrawFunds",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	},
	{
		"inputs": [
			{"name": "projectId", "type": "uint256"}
		],
		"name": "refund",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	}
]`

const governanceABI = `[
	{
		"inputs": [
			{"name": "projectId", "type": "uint256"},
			{"name": "amount", "type": "uint256"},
			{"name": "durationDays", "type": "uint256"},
			{"name": "description", "type": "string"}
		],
		"name": "createProposal",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	},
	{
		"inputs": [
			{"name": "projectId", "type": "uint256"},
			{"name": "proposalId", "type": "uint256"},
			{"name": "support", "type": "bool"}
		],
		"name": "voteOnProposal",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	},
	{
		"inputs": [
			{"name": "projectId", "type": "uint256"},
			{"name": "proposalId", "type": "uint256"}
		],
		"name": "executeProposal",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	}
]`

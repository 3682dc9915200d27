package evm

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const escrowABIJson = `[
	{"type":"function","name":"getAccountStatus","stateMutability":"view",
	 "inputs":[{"name":"user","type":"address"}],
	 "outputs":[
		{"name":"escrowedAmount","type":"uint256"},
		{"name":"outstandingDebt","type":"uint256"},
		{"name":"reputation","type":"uint256"},
		{"name":"blacklisted","type":"bool"}]},
	{"type":"function","name":"finalizeRewards","stateMutability":"nonpayable",
	 "inputs":[
		{"name":"user","type":"address"},
		{"name":"repayAmount","type":"uint256"},
		{"name":"payoutAmount","type":"uint256"}],
	 "outputs":[]}
]`

const erc20ABIJson = `[
	{"type":"function","name":"approve","stateMutability":"nonpayable",
	 "inputs":[{"name":"spender","type":"address"},{"name":"amount","type":"uint256"}],
	 "outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"transferFrom","stateMutability":"nonpayable",
	 "inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],
	 "outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"balanceOf","stateMutability":"view",
	 "inputs":[{"name":"account","type":"address"}],
	 "outputs":[{"name":"","type":"uint256"}]}
]`

const tokenBridgeABIJson = `[
	{"type":"function","name":"transferTokens","stateMutability":"payable",
	 "inputs":[
		{"name":"token","type":"address"},
		{"name":"amount","type":"uint256"},
		{"name":"recipientChain","type":"uint16"},
		{"name":"recipient","type":"bytes32"},
		{"name":"arbiterFee","type":"uint256"},
		{"name":"nonce","type":"uint32"}],
	 "outputs":[{"name":"sequence","type":"uint64"}]},
	{"type":"function","name":"completeTransfer","stateMutability":"nonpayable",
	 "inputs":[{"name":"encodedVm","type":"bytes"}],
	 "outputs":[]}
]`

var (
	escrowABI      = mustParseABI(escrowABIJson)
	erc20ABI       = mustParseABI(erc20ABIJson)
	tokenBridgeABI = mustParseABI(tokenBridgeABIJson)
)

func mustParseABI(definition string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(definition))
	if err != nil {
		panic(err)
	}
	return parsed
}

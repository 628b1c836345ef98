package model

// Coin identifies the chain family a record belongs to.
type Coin string

// Network identifies the network a record belongs to.
type Network string

var (
	BTC Coin = "BTC"
)

var (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet"
	Regtest Network = "regtest"
)

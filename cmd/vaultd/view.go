package main

import (
	"github.com/iov-one/delayvault"
	"github.com/iov-one/delayvault/x/ledger"
)

type vaultJSON struct {
	Amount  string            `json:"amount"`
	Delays  delayvault.Delays `json:"delays"`
	Consent bool              `json:"consent"`
}

func vaultView(v *ledger.Vault) vaultJSON {
	return vaultJSON{
		Amount: v.Balance().String(),
		Delays: v.Delays(),
	}
}

type tierView struct {
	Threshold string            `json:"threshold"`
	Delays    delayvault.Delays `json:"delays"`
}

type tableView struct {
	Active          bool                `json:"active"`
	WithdrawEpoch   delayvault.UnixTime `json:"withdraw_epoch"`
	WhitelistFilter bool                `json:"whitelist_filter"`
	Tiers           []tierView          `json:"tiers"`
}

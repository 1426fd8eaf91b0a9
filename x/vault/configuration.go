package vault

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/delayvault"
	"github.com/iov-one/delayvault/errors"
	"github.com/iov-one/delayvault/gconf"
)

// configPkg is the name configuration is stored under.
const configPkg = "vault"

// DefaultMaxDelay is the delay cap used when the genesis does not declare
// one, 365 days.
const DefaultMaxDelay = 365 * 24 * 60 * 60

// Configuration holds the global settings of the vault.
type Configuration struct {
	// Owner is the administrator of the vault.
	Owner delayvault.Address `protobuf:"bytes,1,opt,name=owner,proto3,casttype=github.com/iov-one/delayvault.Address" json:"owner,omitempty"`
	// MinDelay is the shortest start delay of any deposit.
	MinDelay uint64 `protobuf:"varint,2,opt,name=min_delay,json=minDelay,proto3" json:"min_delay,omitempty"`
	// MaxDelay caps every delay of every deposit and tier.
	MaxDelay uint64 `protobuf:"varint,3,opt,name=max_delay,json=maxDelay,proto3" json:"max_delay,omitempty"`
	// Paused stops deposits and withdrawals.
	Paused bool `protobuf:"varint,4,opt,name=paused,proto3" json:"paused,omitempty"`
	// VestingFacility receives withdrawn funds if set.
	VestingFacility delayvault.Address `protobuf:"bytes,5,opt,name=vesting_facility,json=vestingFacility,proto3,casttype=github.com/iov-one/delayvault.Address" json:"vesting_facility,omitempty"`
	// WhitelistAddress enables eligibility checks if set.
	WhitelistAddress delayvault.Address `protobuf:"bytes,6,opt,name=whitelist_address,json=whitelistAddress,proto3,casttype=github.com/iov-one/delayvault.Address" json:"whitelist_address,omitempty"`
	// WhitelistID is the whitelist consulted by eligibility checks.
	WhitelistID uint64 `protobuf:"varint,7,opt,name=whitelist_id,json=whitelistId,proto3" json:"whitelist_id,omitempty"`
}

func (m *Configuration) Reset()         { *m = Configuration{} }
func (m *Configuration) String() string { return proto.CompactTextString(m) }
func (*Configuration) ProtoMessage()    {}

func (m *Configuration) MarshalBinary() ([]byte, error) {
	return proto.Marshal(m)
}

func (m *Configuration) UnmarshalBinary(raw []byte) error {
	return proto.Unmarshal(raw, m)
}

var _ gconf.OwnedConfig = (*Configuration)(nil)

// GetOwner returns the configuration owner.
func (m *Configuration) GetOwner() delayvault.Address {
	return m.Owner
}

// Validate ensures the configuration is consistent.
func (m *Configuration) Validate() error {
	if err := m.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if m.MaxDelay == 0 {
		return errors.Wrap(errors.ErrInput, "max delay required")
	}
	if m.MinDelay > m.MaxDelay {
		return errors.Wrapf(errors.ErrInvalidRange, "min delay %d above max delay %d", m.MinDelay, m.MaxDelay)
	}
	if len(m.VestingFacility) != 0 {
		if err := m.VestingFacility.Validate(); err != nil {
			return errors.Wrap(err, "vesting facility")
		}
	}
	if len(m.WhitelistAddress) != 0 {
		if err := m.WhitelistAddress.Validate(); err != nil {
			return errors.Wrap(err, "whitelist address")
		}
	}
	return nil
}

func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, configPkg, &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}

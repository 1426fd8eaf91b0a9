package ledger

import (
	"math/big"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/delayvault"
	"github.com/iov-one/delayvault/errors"
)

// Vault is the record of a single (asset, depositor) pair.
type Vault struct {
	// Amount is a big-endian encoded balance.
	Amount      []byte `protobuf:"bytes,1,opt,name=amount,proto3" json:"amount,omitempty"`
	StartDelay  uint64 `protobuf:"varint,2,opt,name=start_delay,json=startDelay,proto3" json:"start_delay,omitempty"`
	CliffDelay  uint64 `protobuf:"varint,3,opt,name=cliff_delay,json=cliffDelay,proto3" json:"cliff_delay,omitempty"`
	FinishDelay uint64 `protobuf:"varint,4,opt,name=finish_delay,json=finishDelay,proto3" json:"finish_delay,omitempty"`
}

func (m *Vault) Reset()         { *m = Vault{} }
func (m *Vault) String() string { return proto.CompactTextString(m) }
func (*Vault) ProtoMessage()    {}

func (m *Vault) MarshalBinary() ([]byte, error) {
	return proto.Marshal(m)
}

func (m *Vault) UnmarshalBinary(raw []byte) error {
	return proto.Unmarshal(raw, m)
}

// Validate ensures the amount is encoded in its canonical form.
func (m *Vault) Validate() error {
	if len(m.Amount) > 0 && m.Amount[0] == 0 {
		return errors.Wrap(errors.ErrModel, "amount with leading zero")
	}
	return nil
}

// Balance returns the amount held in the vault.
func (m *Vault) Balance() *big.Int {
	return delayvault.AmountFromBytes(m.Amount)
}

// Delays returns the committed delays.
func (m *Vault) Delays() delayvault.Delays {
	return delayvault.Delays{
		Start:  m.StartDelay,
		Cliff:  m.CliffDelay,
		Finish: m.FinishDelay,
	}
}

// IsEmpty returns true if the vault holds nothing.
func (m *Vault) IsEmpty() bool {
	return len(m.Amount) == 0
}

func (m *Vault) set(amount *big.Int, d delayvault.Delays) {
	m.Amount = delayvault.AmountBytes(amount)
	m.StartDelay = d.Start
	m.CliffDelay = d.Cliff
	m.FinishDelay = d.Finish
}

// Consent records whether a depositor allows buy-backs of a vault.
type Consent struct {
	Granted bool `protobuf:"varint,1,opt,name=granted,proto3" json:"granted,omitempty"`
}

func (m *Consent) Reset()         { *m = Consent{} }
func (m *Consent) String() string { return proto.CompactTextString(m) }
func (*Consent) ProtoMessage()    {}

func (m *Consent) MarshalBinary() ([]byte, error) {
	return proto.Marshal(m)
}

func (m *Consent) UnmarshalBinary(raw []byte) error {
	return proto.Unmarshal(raw, m)
}

func (m *Consent) Validate() error {
	return nil
}

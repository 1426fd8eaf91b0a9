package whitelist

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/delayvault"
	"github.com/iov-one/delayvault/errors"
)

// Whitelist is owned by an account that manages its entries.
type Whitelist struct {
	Owner delayvault.Address `protobuf:"bytes,1,opt,name=owner,proto3,casttype=github.com/iov-one/delayvault.Address" json:"owner,omitempty"`
}

func (m *Whitelist) Reset()         { *m = Whitelist{} }
func (m *Whitelist) String() string { return proto.CompactTextString(m) }
func (*Whitelist) ProtoMessage()    {}

func (m *Whitelist) MarshalBinary() ([]byte, error) {
	return proto.Marshal(m)
}

func (m *Whitelist) UnmarshalBinary(raw []byte) error {
	return proto.Unmarshal(raw, m)
}

func (m *Whitelist) Validate() error {
	return errors.Wrap(m.Owner.Validate(), "owner")
}

// Entry marks an account as eligible for an asset.
type Entry struct {
	Eligible bool `protobuf:"varint,1,opt,name=eligible,proto3" json:"eligible,omitempty"`
}

func (m *Entry) Reset()         { *m = Entry{} }
func (m *Entry) String() string { return proto.CompactTextString(m) }
func (*Entry) ProtoMessage()    {}

func (m *Entry) MarshalBinary() ([]byte, error) {
	return proto.Marshal(m)
}

func (m *Entry) UnmarshalBinary(raw []byte) error {
	return proto.Unmarshal(raw, m)
}

func (m *Entry) Validate() error {
	return nil
}

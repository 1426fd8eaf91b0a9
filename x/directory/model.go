package directory

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/delayvault/errors"
)

// Entry is a single member of a directory, stored both by position and by
// member value.
type Entry struct {
	Member   []byte `protobuf:"bytes,1,opt,name=member,proto3" json:"member,omitempty"`
	Position uint64 `protobuf:"varint,2,opt,name=position,proto3" json:"position,omitempty"`
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
	if len(m.Member) == 0 {
		return errors.Wrap(errors.ErrEmpty, "member")
	}
	return nil
}

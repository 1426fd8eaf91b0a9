package cash

import (
	"math/big"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/delayvault"
	"github.com/iov-one/delayvault/errors"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Balance is the amount of a single asset held by an account.
type Balance struct {
	Amount []byte `protobuf:"bytes,1,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *Balance) Reset()         { *m = Balance{} }
func (m *Balance) String() string { return proto.CompactTextString(m) }
func (*Balance) ProtoMessage()    {}

func (m *Balance) MarshalBinary() ([]byte, error) {
	return proto.Marshal(m)
}

func (m *Balance) UnmarshalBinary(raw []byte) error {
	return proto.Unmarshal(raw, m)
}

// Validate ensures the amount is encoded in its canonical form.
func (m *Balance) Validate() error {
	if len(m.Amount) > 0 && m.Amount[0] == 0 {
		return errors.Wrap(errors.ErrModel, "amount with leading zero")
	}
	return nil
}

// Value returns the balance as a number.
func (m *Balance) Value() *big.Int {
	return delayvault.AmountFromBytes(m.Amount)
}

package lockeddeal

import (
	"math/big"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/delayvault"
	"github.com/iov-one/delayvault/errors"
)

// Deal is an amount of an asset locked for its owner.
type Deal struct {
	Owner      delayvault.Address  `protobuf:"bytes,1,opt,name=owner,proto3,casttype=github.com/iov-one/delayvault.Address" json:"owner,omitempty"`
	Asset      string              `protobuf:"bytes,2,opt,name=asset,proto3" json:"asset,omitempty"`
	Amount     []byte              `protobuf:"bytes,3,opt,name=amount,proto3" json:"amount,omitempty"`
	Released   []byte              `protobuf:"bytes,4,opt,name=released,proto3" json:"released,omitempty"`
	StartTime  delayvault.UnixTime `protobuf:"varint,5,opt,name=start_time,json=startTime,proto3,casttype=github.com/iov-one/delayvault.UnixTime" json:"start_time,omitempty"`
	CliffTime  delayvault.UnixTime `protobuf:"varint,6,opt,name=cliff_time,json=cliffTime,proto3,casttype=github.com/iov-one/delayvault.UnixTime" json:"cliff_time,omitempty"`
	FinishTime delayvault.UnixTime `protobuf:"varint,7,opt,name=finish_time,json=finishTime,proto3,casttype=github.com/iov-one/delayvault.UnixTime" json:"finish_time,omitempty"`
}

func (m *Deal) Reset()         { *m = Deal{} }
func (m *Deal) String() string { return proto.CompactTextString(m) }
func (*Deal) ProtoMessage()    {}

func (m *Deal) MarshalBinary() ([]byte, error) {
	return proto.Marshal(m)
}

func (m *Deal) UnmarshalBinary(raw []byte) error {
	return proto.Unmarshal(raw, m)
}

// Validate ensures the deal is consistent.
func (m *Deal) Validate() error {
	if err := m.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := delayvault.ValidateAsset(m.Asset); err != nil {
		return errors.Wrap(err, "asset")
	}
	if len(m.Amount) == 0 {
		return errors.Wrap(errors.ErrInvalidAmount, "empty deal")
	}
	if m.ReleasedAmount().Cmp(m.Total()) > 0 {
		return errors.Wrap(errors.ErrState, "released more than locked")
	}
	if err := m.StartTime.Validate(); err != nil {
		return errors.Wrap(err, "start time")
	}
	if m.FinishTime < m.StartTime {
		return errors.Wrap(errors.ErrState, "finish before start")
	}
	return nil
}

// Total returns the locked amount.
func (m *Deal) Total() *big.Int {
	return delayvault.AmountFromBytes(m.Amount)
}

// ReleasedAmount returns the amount already paid out.
func (m *Deal) ReleasedAmount() *big.Int {
	return delayvault.AmountFromBytes(m.Released)
}

// Unlocked returns the amount vested at given time, including what was
// released already.
func (m *Deal) Unlocked(now delayvault.UnixTime) *big.Int {
	total := m.Total()
	switch {
	case now < m.StartTime || now < m.CliffTime:
		return new(big.Int)
	case now >= m.FinishTime:
		return total
	}
	elapsed := big.NewInt(int64(now - m.StartTime))
	span := big.NewInt(int64(m.FinishTime - m.StartTime))
	return elapsed.Mul(elapsed, total).Quo(elapsed, span)
}

package policy

import (
	"math/big"
	"sort"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/delayvault"
	"github.com/iov-one/delayvault/errors"
)

// Table is the tier table of a single asset. All four sequences have the
// same length, thresholds are strictly ascending and every delay sequence is
// non-decreasing.
type Table struct {
	// Thresholds are big-endian encoded amounts.
	Thresholds   [][]byte `protobuf:"bytes,1,rep,name=thresholds,proto3" json:"thresholds,omitempty"`
	StartDelays  []uint64 `protobuf:"varint,2,rep,packed,name=start_delays,json=startDelays,proto3" json:"start_delays,omitempty"`
	CliffDelays  []uint64 `protobuf:"varint,3,rep,packed,name=cliff_delays,json=cliffDelays,proto3" json:"cliff_delays,omitempty"`
	FinishDelays []uint64 `protobuf:"varint,4,rep,packed,name=finish_delays,json=finishDelays,proto3" json:"finish_delays,omitempty"`
	// Active tables accept deposits. An inactive table is kept but looks
	// like no table at all.
	Active bool `protobuf:"varint,5,opt,name=active,proto3" json:"active,omitempty"`
	// WithdrawEpoch is the reference time withdrawal delays are counted
	// from.
	WithdrawEpoch delayvault.UnixTime `protobuf:"varint,6,opt,name=withdraw_epoch,json=withdrawEpoch,proto3,casttype=github.com/iov-one/delayvault.UnixTime" json:"withdraw_epoch,omitempty"`
	// WhitelistFilter requires every deposit to be approved by the
	// eligibility oracle.
	WhitelistFilter bool `protobuf:"varint,7,opt,name=whitelist_filter,json=whitelistFilter,proto3" json:"whitelist_filter,omitempty"`
}

func (m *Table) Reset()         { *m = Table{} }
func (m *Table) String() string { return proto.CompactTextString(m) }
func (*Table) ProtoMessage()    {}

func (m *Table) MarshalBinary() ([]byte, error) {
	return proto.Marshal(m)
}

func (m *Table) UnmarshalBinary(raw []byte) error {
	return proto.Unmarshal(raw, m)
}

var _ delayvault.Persistent = (*Table)(nil)

// Validate ensures the tiers are well formed.
func (m *Table) Validate() error {
	n := len(m.Thresholds)
	if len(m.StartDelays) != n || len(m.CliffDelays) != n || len(m.FinishDelays) != n {
		return errors.Wrapf(errors.ErrMismatchedArrayLengths,
			"thresholds %d, start %d, cliff %d, finish %d",
			n, len(m.StartDelays), len(m.CliffDelays), len(m.FinishDelays))
	}
	for i := 1; i < n; i++ {
		prev, cur := m.Threshold(i-1), m.Threshold(i)
		if cur.Cmp(prev) <= 0 {
			return errors.Wrapf(errors.ErrUnorderedTiers, "threshold %d: %s after %s", i, cur, prev)
		}
		if !m.Tier(i).Covers(m.Tier(i - 1)) {
			return errors.Wrapf(errors.ErrUnorderedTiers, "delays %d: %s after %s", i, m.Tier(i), m.Tier(i-1))
		}
	}
	if err := m.WithdrawEpoch.Validate(); err != nil {
		return errors.Wrap(err, "withdraw epoch")
	}
	return nil
}

// Len returns the number of tiers.
func (m *Table) Len() int {
	return len(m.Thresholds)
}

// Threshold returns the amount from which the i-th tier applies.
func (m *Table) Threshold(i int) *big.Int {
	return delayvault.AmountFromBytes(m.Thresholds[i])
}

// Tier returns the delays of the i-th tier.
func (m *Table) Tier(i int) delayvault.Delays {
	return delayvault.Delays{
		Start:  m.StartDelays[i],
		Cliff:  m.CliffDelays[i],
		Finish: m.FinishDelays[i],
	}
}

// Lookup returns the delays required for given cumulative amount. Amounts
// below the first threshold and inactive tables require no delay.
func (m *Table) Lookup(amount *big.Int) delayvault.Delays {
	if m == nil || !m.Active {
		return delayvault.Delays{}
	}
	// Index of the first threshold above the amount.
	i := sort.Search(m.Len(), func(i int) bool {
		return m.Threshold(i).Cmp(amount) > 0
	})
	if i == 0 {
		return delayvault.Delays{}
	}
	return m.Tier(i - 1)
}

// Longest returns the longest delay of any tier. Delays never decrease so
// this is the longest delay of the last tier.
func (m *Table) Longest() uint64 {
	if m.Len() == 0 {
		return 0
	}
	return m.Tier(m.Len() - 1).Longest()
}

// Tiers is the admin input describing a tier table. Cliff delays are
// optional, a nil slice means no cliff for any tier.
type Tiers struct {
	Thresholds []*big.Int `json:"thresholds"`
	Start      []uint64   `json:"start"`
	Cliff      []uint64   `json:"cliff,omitempty"`
	Finish     []uint64   `json:"finish"`
}

// apply writes the tiers into given table, keeping the table settings. The
// table is modified only if the tiers are valid.
func (t Tiers) apply(dst *Table) error {
	cliff := t.Cliff
	if cliff == nil {
		cliff = make([]uint64, len(t.Thresholds))
	}
	thresholds := make([][]byte, len(t.Thresholds))
	for i, th := range t.Thresholds {
		if err := delayvault.ValidateAmount(th); err != nil {
			return errors.Wrapf(err, "threshold %d", i)
		}
		thresholds[i] = delayvault.AmountBytes(th)
	}
	next := *dst
	next.Thresholds = thresholds
	next.StartDelays = t.Start
	next.CliffDelays = cliff
	next.FinishDelays = t.Finish
	if err := next.Validate(); err != nil {
		return err
	}
	*dst = next
	return nil
}

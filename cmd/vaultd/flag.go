package main

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"os"
	"strings"
	"time"

	"github.com/iov-one/delayvault"
	"github.com/spf13/pflag"
)

// flagDie terminates the program when an invalid flag value is given.
func flagDie(description string, args ...interface{}) {
	s := fmt.Sprintf(description, args...)
	fmt.Fprintln(os.Stderr, s)
	os.Exit(2)
}

func newFlagSet(name, help string) *pflag.FlagSet {
	fl := pflag.NewFlagSet(name, pflag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(os.Stderr, help)
		fl.PrintDefaults()
	}
	return fl
}

type addressValue struct {
	a *delayvault.Address
}

func (v addressValue) String() string {
	if v.a == nil || len(*v.a) == 0 {
		return ""
	}
	return v.a.String()
}

func (v addressValue) Set(raw string) error {
	a, err := delayvault.ParseAddress(raw)
	if err != nil {
		return err
	}
	*v.a = a
	return nil
}

func (addressValue) Type() string { return "address" }

// flAddress declares an address flag. Any format understood by
// delayvault.ParseAddress is accepted.
func flAddress(fl *pflag.FlagSet, name, usage string) *delayvault.Address {
	var a delayvault.Address
	fl.Var(addressValue{a: &a}, name, usage)
	return &a
}

type amountValue struct {
	a *big.Int
}

func (v amountValue) String() string { return v.a.String() }

func (v amountValue) Set(raw string) error {
	a, err := delayvault.ParseAmount(raw)
	if err != nil {
		return err
	}
	v.a.Set(a)
	return nil
}

func (amountValue) Type() string { return "amount" }

// flAmount declares a decimal amount flag of unlimited precision.
func flAmount(fl *pflag.FlagSet, name, usage string) *big.Int {
	a := new(big.Int)
	fl.Var(amountValue{a: a}, name, usage)
	return a
}

type conditionsValue struct {
	c *[]delayvault.Condition
}

func (v conditionsValue) String() string {
	s := make([]string, len(*v.c))
	for i, c := range *v.c {
		s[i] = c.String()
	}
	return strings.Join(s, ",")
}

func (v conditionsValue) Set(raw string) error {
	c, err := parseCondition(raw)
	if err != nil {
		return err
	}
	*v.c = append(*v.c, c)
	return nil
}

func (conditionsValue) Type() string { return "condition" }

// flConditions declares a repeatable condition flag.
func flConditions(fl *pflag.FlagSet, name, usage string) *[]delayvault.Condition {
	var c []delayvault.Condition
	fl.Var(conditionsValue{c: &c}, name, usage)
	return &c
}

// parseCondition reads a condition written as "extension/type/hexdata".
func parseCondition(raw string) (delayvault.Condition, error) {
	chunks := strings.Split(raw, "/")
	if len(chunks) != 3 {
		return nil, fmt.Errorf("condition %q: want extension/type/hexdata", raw)
	}
	data, err := hex.DecodeString(chunks[2])
	if err != nil {
		return nil, fmt.Errorf("condition %q: %s", raw, err)
	}
	c := delayvault.NewCondition(chunks[0], chunks[1], data)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// seconds converts a duration flag into a delay, rejecting negative values.
func seconds(name string, d time.Duration) uint64 {
	if d < 0 {
		flagDie("%s must not be negative", name)
	}
	return uint64(d / time.Second)
}

/*
Package lockeddeal implements a vesting facility. Funds handed to the
facility are locked in a deal and released to the deal owner over time.

A deal unlocks nothing before its start and cliff times, unlocks linearly
between start and finish and unlocks everything once finish time is
reached. The vault engine forwards withdrawals here when a facility is
configured.
*/
package lockeddeal

/*
Package ledger keeps the balance and delay commitment of every
(asset, depositor) vault together with the depositor consent to buy-backs.

The ledger owns the top-up rules: a deposit may add to the balance and
extend the committed delays, it never shortens them. The ledger does not
move any funds and does not know about time, both are the concern of the
vault engine.
*/
package ledger

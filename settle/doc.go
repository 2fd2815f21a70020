// Package settle reduces the net results of a game to a short list of
// payments between players.
//
// The algorithm is greedy: the largest creditor is paid by the largest
// debtor, the smaller of the two amounts is transferred, and whoever is
// settled leaves the table. With n players whose result is not zero it never
// emits more than n-1 payments.
//
// Amounts are rounded to the currency minor unit before any comparison, and a
// remainder smaller than one minor unit counts as zero. Rounding keeps the
// total: the rounded nets add up to the rounded sum of the nets, so a balanced
// game never leaves a cent unsettled. The output is advisory: nothing here
// moves money.
package settle

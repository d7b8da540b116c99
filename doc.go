/*
Package register computes the change due for a point-of-sale transaction.
It leverages the [decimal] package for exact decimal input and works in
integer cents internally.

# Features

  - Greedy, largest-denomination-first breakdown of the change owed
  - Detection of drawers that cannot make exact change
  - Detection of drawers that the change drains exactly
  - Pure computation: the caller's drawer is never modified
  - Safe for concurrent use by multiple goroutines

# Representation

A [Drawer] is a slice of [Unit] values, one per [Denomination], in canonical
order from [Penny] to [OneHundred].
A Unit pairs a denomination with an amount in dollars, so two quarters are
written as Unit{Quarter, 0.5}.
Denominations are indexes into generated lookup tables holding the U.S.
face values in cents.

# Statuses

[Compute] returns a [Result] with one of three statuses:

  - [Open]: the change was made and money is left in the drawer;
  - [Closed]: the change owed equals the drawer total, so the whole drawer
    is handed back;
  - [InsufficientFunds]: the drawer cannot make exact change, and the
    change is empty.

None of these is an error.

# Rounding

Amounts are converted to cents with [rounding half up]: a tie goes towards
positive infinity, so 0.125 is 13 cents and -0.125 is -12 cents.
Amounts given as floats go through their shortest decimal representation
first, see [DecimalFromFloat64].

# Errors

Compute returns an error only for input outside of its contract: a negative
price, cash below the price, a drawer that fails [Drawer.Validate], or
amounts that overflow int64 cents.

[rounding half up]: https://en.wikipedia.org/wiki/Rounding#Rounding_half_up
*/
package register

/*
Package wallet implements the wallet transaction use cases: deposit,
withdrawal, currency exchange and validated wallet reads.

Each use case validates its raw inputs against the currency policy table,
computes fees where applicable, checks balance sufficiency and daily limits,
and only then delegates the mutation to the wallet repository. Validation is
fail-fast: the first violated guard wins and no repository call is made.

Usage:

	svc := wallet.NewService(repo, cache, policyTable, checker, cards, metrics, wallet.Config{})

	// Deposit 100 USD by card
	txn, err := svc.Deposit(ctx, userID, "USD", decimal.NewFromInt(100), "card")

	// Withdraw with fee and daily-limit enforcement
	txn, err = svc.Withdraw(ctx, userID, "USD", decimal.NewFromInt(250), "bank_transfer")

	// Convert between currencies
	txn, err = svc.Exchange(ctx, userID, "USD", "EUR", decimal.NewFromInt(50))

Error handling:

Failures carry one of the package's error kinds and callers match with
errors.Is (or errors.As for *LimitExceededError):

  - ErrInvalidInput: caller-supplied data failed validation
  - ErrInsufficientFunds: balance (including fee) below the requested total
  - LimitExceededError: the daily withdrawal cap would be breached
  - ErrConnection: transient network failure, retried only on reads
  - ErrDataNotFound / ErrDataCorrupted: missing or structurally invalid data
  - ErrTransactionFailed: repository-signaled or unexpected mutation failure
  - ErrUnsupportedCurrency / ErrUnsupportedPaymentMethod

Monetary amounts are decimal.Decimal throughout; no floating point money
math happens in this package.
*/
package wallet

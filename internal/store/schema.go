package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS users (
    id            TEXT PRIMARY KEY,
    email         TEXT NOT NULL UNIQUE,
    username      TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS accounts (
    id                        TEXT PRIMARY KEY,
    user_id                   TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    name                      TEXT NOT NULL,
    balance_cents             INTEGER NOT NULL DEFAULT 0,
    acceleration_cents        INTEGER NOT NULL DEFAULT 0,
    acceleration_buffer_weeks INTEGER NOT NULL DEFAULT 0,
    is_spending               INTEGER NOT NULL DEFAULT 0,
    is_week_ahead             INTEGER NOT NULL DEFAULT 0,
    target_cents              INTEGER NOT NULL DEFAULT 0,
    priority                  INTEGER NOT NULL DEFAULT 0,
    starting_balance_date     TEXT
);

-- Sub-account balances live on the expense row, not in a separate table.
-- This denormalization is deliberate: the sub-ledger is owned by the
-- expense and has no independent lifecycle.
CREATE TABLE IF NOT EXISTS expenses (
    id                TEXT PRIMARY KEY,
    user_id           TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    name              TEXT NOT NULL,
    amount_cents      INTEGER NOT NULL DEFAULT 0,
    frequency         TEXT NOT NULL,
    due_day           INTEGER NOT NULL DEFAULT 0,
    due_date          TEXT,
    account_id        TEXT,
    sub_account_cents INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS settings (
    user_id             TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
    pay_amount_cents    INTEGER NOT NULL DEFAULT 0,
    pay_type            TEXT NOT NULL DEFAULT 'gross',
    kiwisaver           INTEGER NOT NULL DEFAULT 0,
    kiwisaver_rate      TEXT NOT NULL DEFAULT '0',
    student_loan        INTEGER NOT NULL DEFAULT 0,
    ietc                INTEGER NOT NULL DEFAULT 0,
    allowance_cents     INTEGER NOT NULL DEFAULT 0,
    allowance_frequency TEXT NOT NULL DEFAULT 'weekly',
    horizon_weeks       INTEGER NOT NULL DEFAULT 52,
    start_date          TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_accounts_user ON accounts(user_id);
CREATE INDEX IF NOT EXISTS idx_expenses_user ON expenses(user_id);
CREATE INDEX IF NOT EXISTS idx_expenses_account ON expenses(account_id);
`

package database

type migration struct {
	version int
	name    string
	sql     string
}

// migrations are applied in slice order; versions must only ever grow.
var migrations = []migration{
	{1, "create paschalion", migrationV1Paschalion},
}

// Dates are stored as YYYY-MM-DD text (negative years keep their sign) so
// rows stay readable from the sqlite3 shell.
const migrationV1Paschalion = `
CREATE TABLE IF NOT EXISTS paschalion (
    year INTEGER PRIMARY KEY,
    orthodox_julian TEXT NOT NULL,
    orthodox_gregorian TEXT NOT NULL,
    catholic_gregorian TEXT NOT NULL,
    generated_at TEXT NOT NULL DEFAULT (datetime('now'))
);
`

package storage

const schema = `
-- The 'decks' table groups cards; membership lives on the card side.
CREATE TABLE IF NOT EXISTS decks (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    created_at DATETIME NOT NULL
);

-- The 'vocabs' table stores each card together with its embedded SM-2
-- review state. deck_id is NULL for unassigned cards. fingerprint and
-- source_id are set only for cards reconciled from a synced source.
CREATE TABLE IF NOT EXISTS vocabs (
    id TEXT PRIMARY KEY,
    front TEXT NOT NULL,
    back TEXT NOT NULL,
    deck_id TEXT,
    created_at DATETIME NOT NULL,
    ef REAL NOT NULL,
    interval INTEGER NOT NULL,
    reps INTEGER NOT NULL,
    due_at DATETIME NOT NULL,
    last_reviewed_at DATETIME,
    fingerprint TEXT,
    source_id INTEGER,

    FOREIGN KEY(deck_id) REFERENCES decks(id),
    FOREIGN KEY(source_id) REFERENCES sources(id)
);

-- Singleton gamification record.
CREATE TABLE IF NOT EXISTS stats (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    xp INTEGER NOT NULL DEFAULT 0,
    streak INTEGER NOT NULL DEFAULT 0,
    level INTEGER NOT NULL DEFAULT 1,
    last_review_date TEXT
);

-- Singleton session-planning preferences.
CREATE TABLE IF NOT EXISTS settings (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    daily_goal INTEGER NOT NULL DEFAULT 10,
    scope_kind INTEGER NOT NULL DEFAULT 0,
    scope_deck_id TEXT
);

-- Card sources: a local directory or git repository of markdown card
-- files reconciled into a deck by sync.
CREATE TABLE IF NOT EXISTS sources (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    path TEXT NOT NULL UNIQUE,
    type TEXT NOT NULL DEFAULT 'local',
    deck_id TEXT,
    last_scanned DATETIME,

    FOREIGN KEY(deck_id) REFERENCES decks(id)
);

INSERT OR IGNORE INTO stats (id) VALUES (1);
INSERT OR IGNORE INTO settings (id) VALUES (1);
`

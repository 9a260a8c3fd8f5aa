package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/conorfennell/vocabdrill/internal/domain"
)

// seedReviewed answers a card once so it is no longer "never reviewed"
// and is scheduled at a controlled point in the past or future.
func seedReviewed(t *testing.T, db *DB, id string, reviewedAt time.Time) domain.Vocab {
	t.Helper()
	result, err := db.AnswerReview(id, domain.QualityPerfect, reviewedAt)
	require.NoError(t, err)
	return result.Vocab
}

func TestDueVocabsOrdering(t *testing.T) {
	db := openTestDB(t)
	created := date(t, "2020-01-01")
	now := date(t, "2020-02-01")

	// Three reviewed cards due on different past days, one due in the
	// future, one never reviewed.
	newest, err := db.InsertVocab("a", "1", nil, created)
	require.NoError(t, err)
	oldest, err := db.InsertVocab("b", "2", nil, created)
	require.NoError(t, err)
	middle, err := db.InsertVocab("c", "3", nil, created)
	require.NoError(t, err)
	future, err := db.InsertVocab("d", "4", nil, created)
	require.NoError(t, err)
	fresh, err := db.InsertVocab("e", "5", nil, created)
	require.NoError(t, err)

	seedReviewed(t, db, newest.ID, date(t, "2020-01-30")) // due 01-31
	seedReviewed(t, db, oldest.ID, date(t, "2020-01-10")) // due 01-11
	seedReviewed(t, db, middle.ID, date(t, "2020-01-20")) // due 01-21
	seedReviewed(t, db, future.ID, date(t, "2020-02-01")) // due 02-02

	due, err := db.DueVocabs(now, domain.ScopeAll())
	require.NoError(t, err)

	ids := make([]string, len(due))
	for i, v := range due {
		ids[i] = v.ID
	}
	// Most overdue first; the never-reviewed card is due at its creation
	// date, which is the oldest timestamp of all.
	require.Equal(t, []string{fresh.ID, oldest.ID, middle.ID, newest.ID}, ids)

	count, err := db.CountDue(now, domain.ScopeAll())
	require.NoError(t, err)
	require.Equal(t, 4, count)
}

func TestDueVocabsStableTieBreak(t *testing.T) {
	db := openTestDB(t)
	now := date(t, "2020-01-01")

	first, err := db.InsertVocab("a", "1", nil, now)
	require.NoError(t, err)
	second, err := db.InsertVocab("b", "2", nil, now)
	require.NoError(t, err)
	third, err := db.InsertVocab("c", "3", nil, now)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		due, err := db.DueVocabs(now, domain.ScopeAll())
		require.NoError(t, err)
		require.Len(t, due, 3)
		require.Equal(t, first.ID, due[0].ID)
		require.Equal(t, second.ID, due[1].ID)
		require.Equal(t, third.ID, due[2].ID)
	}
}

func TestDueVocabsScoped(t *testing.T) {
	db := openTestDB(t)
	now := date(t, "2020-01-01")

	deck, err := db.InsertDeck("Turkish", "", now)
	require.NoError(t, err)
	inDeck, err := db.InsertVocab("cat", "kedi", &deck.ID, now)
	require.NoError(t, err)
	loose, err := db.InsertVocab("dog", "kopek", nil, now)
	require.NoError(t, err)

	due, err := db.DueVocabs(now, domain.ScopeDeck(deck.ID))
	require.NoError(t, err)
	require.Len(t, due, 1)
	require.Equal(t, inDeck.ID, due[0].ID)

	due, err = db.DueVocabs(now, domain.ScopeUnassigned())
	require.NoError(t, err)
	require.Len(t, due, 1)
	require.Equal(t, loose.ID, due[0].ID)
}

func TestTodaysBatchDueFillsLimit(t *testing.T) {
	db := openTestDB(t)
	created := date(t, "2020-01-01")
	now := date(t, "2020-03-01")

	var ids []string
	for i := 0; i < 5; i++ {
		v, err := db.InsertVocab("front", "back", nil, created)
		require.NoError(t, err)
		// Stagger the due dates: each card reviewed one day later than
		// the previous one.
		seedReviewed(t, db, v.ID, created.AddDate(0, 0, i))
		ids = append(ids, v.ID)
	}

	batch, err := db.TodaysBatch(now, 3, domain.ScopeAll())
	require.NoError(t, err)
	require.Len(t, batch, 3)
	// Full batch of due work: most overdue three, no new cards mixed in.
	require.Equal(t, []string{ids[0], ids[1], ids[2]}, []string{batch[0].ID, batch[1].ID, batch[2].ID})
}

func TestTodaysBatchFillsWithUnreviewed(t *testing.T) {
	db := openTestDB(t)
	created := date(t, "2020-01-01")
	now := date(t, "2020-03-01")

	reviewed, err := db.InsertVocab("a", "1", nil, created)
	require.NoError(t, err)
	seedReviewed(t, db, reviewed.ID, date(t, "2020-01-10"))

	// A lapsed card answered but rescheduled past now is not "new" and
	// must not be pulled into the fill.
	lapsed, err := db.InsertVocab("b", "2", nil, created)
	require.NoError(t, err)
	_, err = db.AnswerReview(lapsed.ID, domain.QualityBlackout, now)
	require.NoError(t, err)

	freshA, err := db.InsertVocab("c", "3", nil, now)
	require.NoError(t, err)
	freshB, err := db.InsertVocab("d", "4", nil, now.Add(time.Hour))
	require.NoError(t, err)

	batch, err := db.TodaysBatch(now, 10, domain.ScopeAll())
	require.NoError(t, err)

	ids := make([]string, len(batch))
	for i, v := range batch {
		ids[i] = v.ID
	}
	// Due first (overdue card, then the new card already due at now),
	// then the remaining never-reviewed card, without duplicates.
	require.Equal(t, []string{reviewed.ID, freshA.ID, freshB.ID}, ids)
}

func TestTodaysBatchClampsLimit(t *testing.T) {
	db := openTestDB(t)
	now := date(t, "2020-01-01")

	for i := 0; i < 3; i++ {
		_, err := db.InsertVocab("front", "back", nil, now)
		require.NoError(t, err)
	}

	batch, err := db.TodaysBatch(now, 0, domain.ScopeAll())
	require.NoError(t, err)
	require.Len(t, batch, 1, "limit below 1 clamps to 1")

	batch, err = db.TodaysBatch(now, 100000, domain.ScopeAll())
	require.NoError(t, err)
	require.Len(t, batch, 3, "batch never exceeds the eligible cards")
}

func TestTodaysBatchEmptyStore(t *testing.T) {
	db := openTestDB(t)

	batch, err := db.TodaysBatch(date(t, "2020-01-01"), 10, domain.ScopeAll())
	require.NoError(t, err)
	require.Empty(t, batch)
}

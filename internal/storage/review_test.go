package storage

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/conorfennell/vocabdrill/internal/domain"
)

func TestAnswerReviewUpdatesCardAndStats(t *testing.T) {
	db := openTestDB(t)
	now := date(t, "2020-01-01")

	v, err := db.InsertVocab("hello", "merhaba", nil, now)
	require.NoError(t, err)

	result, err := db.AnswerReview(v.ID, domain.QualityPerfect, now)
	require.NoError(t, err)

	require.Equal(t, 1, result.Vocab.Review.Reps)
	require.Equal(t, 1, result.Vocab.Review.Interval)
	require.True(t, result.Vocab.Review.DueAt.Equal(date(t, "2020-01-02")))
	require.NotNil(t, result.Vocab.Review.LastReviewedAt)

	require.Equal(t, 5, result.Stats.XP)
	require.Equal(t, 1, result.Stats.Streak)
	require.Equal(t, 1, result.Stats.Level)
	require.Equal(t, "2020-01-01", result.Stats.LastReviewDate)

	// Both updates must be visible after the commit.
	stored, err := db.FindVocabByID(v.ID)
	require.NoError(t, err)
	require.Equal(t, 1, stored.Review.Reps)

	stats, err := db.GetStats()
	require.NoError(t, err)
	require.Equal(t, 5, stats.XP)
}

func TestAnswerReviewRemovesCardFromDue(t *testing.T) {
	db := openTestDB(t)
	now := date(t, "2020-01-01")

	v, err := db.InsertVocab("hello", "merhaba", nil, now)
	require.NoError(t, err)

	due, err := db.DueVocabs(now, domain.ScopeAll())
	require.NoError(t, err)
	require.Len(t, due, 1)

	_, err = db.AnswerReview(v.ID, domain.QualityPerfect, now)
	require.NoError(t, err)

	due, err = db.DueVocabs(now, domain.ScopeAll())
	require.NoError(t, err)
	require.Empty(t, due)
}

func TestAnswerReviewStreakAcrossDays(t *testing.T) {
	db := openTestDB(t)

	v, err := db.InsertVocab("hello", "merhaba", nil, date(t, "2020-01-01"))
	require.NoError(t, err)

	result, err := db.AnswerReview(v.ID, domain.QualityPerfect, date(t, "2020-01-01"))
	require.NoError(t, err)
	require.Equal(t, 1, result.Stats.Streak)

	result, err = db.AnswerReview(v.ID, domain.QualityPerfect, date(t, "2020-01-02"))
	require.NoError(t, err)
	require.Equal(t, 2, result.Stats.Streak)

	// Second review the same day does not inflate the streak.
	result, err = db.AnswerReview(v.ID, domain.QualityPerfect, date(t, "2020-01-02"))
	require.NoError(t, err)
	require.Equal(t, 2, result.Stats.Streak)

	// A gap resets it.
	result, err = db.AnswerReview(v.ID, domain.QualityPerfect, date(t, "2020-01-05"))
	require.NoError(t, err)
	require.Equal(t, 1, result.Stats.Streak)
}

func TestAnswerReviewFailedGrantsNoXP(t *testing.T) {
	db := openTestDB(t)
	now := date(t, "2020-01-01")

	v, err := db.InsertVocab("hello", "merhaba", nil, now)
	require.NoError(t, err)

	result, err := db.AnswerReview(v.ID, domain.QualityBlackout, now)
	require.NoError(t, err)
	require.Equal(t, 0, result.Stats.XP)
	require.Equal(t, 1, result.Stats.Streak, "a failed review still counts for the streak")
	require.Equal(t, 0, result.Vocab.Review.Reps)
	require.Equal(t, 1, result.Vocab.Review.Interval)
}

func TestAnswerReviewUnknownCard(t *testing.T) {
	db := openTestDB(t)
	now := date(t, "2020-01-01")

	_, err := db.AnswerReview("no-such-card", domain.QualityPerfect, now)
	require.ErrorIs(t, err, domain.ErrNotFound)

	// Nothing changed: the stats record is untouched.
	stats, err := db.GetStats()
	require.NoError(t, err)
	require.Equal(t, 0, stats.XP)
	require.Equal(t, 0, stats.Streak)
}

func TestAnswerReviewRejectsInvalidQuality(t *testing.T) {
	db := openTestDB(t)
	now := date(t, "2020-01-01")

	v, err := db.InsertVocab("hello", "merhaba", nil, now)
	require.NoError(t, err)

	_, err = db.AnswerReview(v.ID, domain.Quality(6), now)
	require.ErrorIs(t, err, domain.ErrInvalidQuality)
	_, err = db.AnswerReview(v.ID, domain.Quality(-1), now)
	require.ErrorIs(t, err, domain.ErrInvalidQuality)

	stored, err := db.FindVocabByID(v.ID)
	require.NoError(t, err)
	require.Equal(t, 0, stored.Review.Reps)
	require.Nil(t, stored.Review.LastReviewedAt)
}

func TestResetProgress(t *testing.T) {
	db := openTestDB(t)
	created := date(t, "2020-01-01")

	v, err := db.InsertVocab("hello", "merhaba", nil, created)
	require.NoError(t, err)
	_, err = db.AnswerReview(v.ID, domain.QualityPerfect, created)
	require.NoError(t, err)

	resetAt := date(t, "2020-06-01")
	require.NoError(t, db.ResetProgress(v.ID, resetAt))

	stored, err := db.FindVocabByID(v.ID)
	require.NoError(t, err)
	require.Equal(t, 2.5, stored.Review.EF)
	require.Equal(t, 0, stored.Review.Reps)
	require.Equal(t, 0, stored.Review.Interval)
	require.True(t, stored.Review.DueAt.Equal(resetAt))
	require.Nil(t, stored.Review.LastReviewedAt)

	require.ErrorIs(t, db.ResetProgress("no-such-card", resetAt), domain.ErrNotFound)
}

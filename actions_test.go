package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrowerFollowsSomeoneNew(t *testing.T) {
	path := writeFile(t, "ledger.txt", "1\n2\n3\n")
	api := &fakeTwitter{search: newIDSet(3, 1, 5), followOK: true}

	ok, err := NewGrower(api, NewLedger(path), "gophers", nopLogger()).Run()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []int64{5}, api.followed)
	assert.Equal(t, "1\n2\n3\n5\n", readFile(t, path))
}

func TestGrowerPicksAnyEligibleCandidate(t *testing.T) {
	for i := 0; i < 20; i++ {
		path := writeFile(t, "ledger.txt", "1\n")
		api := &fakeTwitter{search: newIDSet(1, 7, 8, 9), followOK: true}

		ok, err := NewGrower(api, NewLedger(path), "gophers", nopLogger()).Run()
		require.NoError(t, err)
		require.True(t, ok)
		require.Len(t, api.followed, 1)
		assert.Contains(t, []int64{7, 8, 9}, api.followed[0])
	}
}

func TestGrowerEveryoneAlreadyFollowed(t *testing.T) {
	path := writeFile(t, "ledger.txt", "1\n2\n3\n")
	api := &fakeTwitter{search: newIDSet(1, 2, 3), followOK: true}

	ok, err := NewGrower(api, NewLedger(path), "gophers", nopLogger()).Run()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, api.followed)
	assert.Equal(t, "1\n2\n3\n", readFile(t, path))
}

func TestGrowerFollowLimit(t *testing.T) {
	path := writeFile(t, "ledger.txt", "1\n")
	api := &fakeTwitter{search: newIDSet(4), followOK: false}

	ok, err := NewGrower(api, NewLedger(path), "gophers", nopLogger()).Run()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, []int64{4}, api.followed)
	assert.Equal(t, "1\n", readFile(t, path), "a refused follow isn't recorded")
}

func TestGrowerLookupFailureAfterFollow(t *testing.T) {
	path := writeFile(t, "ledger.txt", "")
	api := &fakeTwitter{search: newIDSet(4), followOK: true, showUserErr: &RemoteError{Op: "show user"}}

	ok, err := NewGrower(api, NewLedger(path), "gophers", nopLogger()).Run()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "4\n", readFile(t, path))
}

func TestGrowerSearchError(t *testing.T) {
	path := writeFile(t, "ledger.txt", "")
	boom := &RemoteError{Op: "search users", Err: errors.New("boom")}
	api := &fakeTwitter{err: boom}

	_, err := NewGrower(api, NewLedger(path), "gophers", nopLogger()).Run()
	assert.ErrorIs(t, err, boom)
}

func TestPrunerUnfollowsNonFollower(t *testing.T) {
	for _, unfollowOK := range []bool{true, false} {
		api := &fakeTwitter{
			following:  newIDSet(10, 20),
			followers:  newIDSet(20),
			unfollowOK: unfollowOK,
		}

		ok, err := NewPruner(api, nopLogger()).Run()
		require.NoError(t, err)
		assert.True(t, ok, "unfollow reported %v", unfollowOK)
		assert.Equal(t, []int64{10}, api.unfollowed)
	}
}

func TestPrunerNothingToUnfollow(t *testing.T) {
	api := &fakeTwitter{following: newIDSet(1, 2), followers: newIDSet(1, 2, 3)}

	ok, err := NewPruner(api, nopLogger()).Run()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, api.unfollowed)
}

func TestPrunerCandidatePool(t *testing.T) {
	tests := []struct {
		following, followers idSet
		want                 []int64
	}{
		{newIDSet(), newIDSet(1), []int64{}},
		{newIDSet(1, 2, 3), newIDSet(), []int64{1, 2, 3}},
		{newIDSet(1, 2, 3), newIDSet(2, 4), []int64{1, 3}},
		{newIDSet(5), newIDSet(5, 6), []int64{}},
	}
	for _, tt := range tests {
		p := NewPruner(&fakeTwitter{following: tt.following, followers: tt.followers}, nopLogger())
		pool, err := p.notFollowingBack()
		require.NoError(t, err)
		assert.Equal(t, tt.want, pool.sorted())
	}
}

func TestPrunerPicksWithinPool(t *testing.T) {
	api := &fakeTwitter{following: newIDSet(1, 2, 3, 4), followers: newIDSet(2), unfollowOK: true}
	p := NewPruner(api, nopLogger())
	p.pick = func(n int) int {
		require.Equal(t, 3, n)
		return n - 1
	}

	ok, err := p.Run()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []int64{4}, api.unfollowed)
}

func TestPrunerUnfollowError(t *testing.T) {
	boom := &RemoteError{Op: "unfollow", StatusCode: 500, Err: errors.New("boom")}
	api := &unfollowFails{
		fakeTwitter: &fakeTwitter{following: newIDSet(1), followers: newIDSet()},
		err:         boom,
	}

	_, err := NewPruner(api, nopLogger()).Run()
	assert.ErrorIs(t, err, boom)
}

type unfollowFails struct {
	*fakeTwitter
	err error
}

func (u *unfollowFails) Unfollow(id int64) (bool, error) {
	return false, u.err
}

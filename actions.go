package main

import (
	"math/rand"

	"github.com/rs/zerolog"
)

// Grower follows one new account per run.
type Grower struct {
	api    TwitterAPI
	ledger *Ledger
	query  string
	log    zerolog.Logger
	pick   func(n int) int
}

func NewGrower(api TwitterAPI, ledger *Ledger, query string, log zerolog.Logger) *Grower {
	return &Grower{api: api, ledger: ledger, query: query, log: log, pick: rand.Intn}
}

// Run searches for candidates and follows one we have never followed before.
// It returns false only when Twitter refuses the follow, i.e. we've hit the
// follow limit.
func (g *Grower) Run() (bool, error) {
	candidates, err := g.api.SearchUsers(g.query)
	if err != nil {
		return false, err
	}

	var eligible []int64
	for _, id := range candidates.sorted() {
		followed, err := g.ledger.Contains(id)
		if err != nil {
			return false, err
		}
		if !followed {
			eligible = append(eligible, id)
		}
	}

	if len(eligible) == 0 {
		g.log.Info().Str("query", g.query).Int("candidates", len(candidates)).Msg("everyone found has been followed before, nothing to do")
		return true, nil
	}

	id := eligible[g.pick(len(eligible))]
	ok, err := g.api.Follow(id)
	if err != nil {
		return false, err
	}
	if !ok {
		g.log.Info().Int64("user_id", id).Msg("cannot follow, follow limit reached")
		return false, nil
	}

	if err := g.ledger.Add(id); err != nil {
		return false, err
	}

	user, err := g.api.ShowUser(id)
	if err != nil {
		g.log.Warn().Err(err).Int64("user_id", id).Msg("followed a user but couldn't look them up")
		return true, nil
	}
	g.log.Info().Int64("user_id", id).Str("screen_name", user.ScreenName).Msg("followed a user")
	return true, nil
}

// Pruner unfollows one account that doesn't follow back.
type Pruner struct {
	api  TwitterAPI
	log  zerolog.Logger
	pick func(n int) int
}

func NewPruner(api TwitterAPI, log zerolog.Logger) *Pruner {
	return &Pruner{api: api, log: log, pick: rand.Intn}
}

// notFollowingBack is everyone we follow who doesn't follow us.
func (p *Pruner) notFollowingBack() (idSet, error) {
	following, err := p.api.ListFollowing()
	if err != nil {
		return nil, err
	}
	followers, err := p.api.ListFollowers()
	if err != nil {
		return nil, err
	}
	return following.minus(followers), nil
}

// Run returns false only when there is nobody left to unfollow. A failed
// unfollow still counts as work done.
func (p *Pruner) Run() (bool, error) {
	pool, err := p.notFollowingBack()
	if err != nil {
		return false, err
	}
	if len(pool) == 0 {
		p.log.Info().Msg("there is no user to unfollow")
		return false, nil
	}

	ids := pool.sorted()
	id := ids[p.pick(len(ids))]

	user, err := p.api.ShowUser(id)
	if err != nil {
		return false, err
	}

	ok, err := p.api.Unfollow(id)
	if err != nil {
		return false, err
	}
	if ok {
		p.log.Info().Int64("user_id", id).Str("screen_name", user.ScreenName).Msg("unfollowed a user")
	} else {
		p.log.Warn().Int64("user_id", id).Msg("failed to unfollow a user")
	}
	return true, nil
}

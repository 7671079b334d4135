package main

import (
	"errors"
	"net/http"

	"github.com/dghubble/go-twitter/twitter"
	"github.com/dghubble/oauth1"
	"github.com/rs/zerolog"
)

const SEARCH_COUNT = 100 // Max tweets the standard search endpoint returns per call

// Endpoint names, relative to https://api.twitter.com/1.1/
const (
	searchEndpoint      = "search/tweets.json"
	followEndpoint      = "friendships/create.json"
	unfollowEndpoint    = "friendships/destroy.json"
	showUserEndpoint    = "users/show.json"
	friendIDsEndpoint   = "friends/ids.json"
	followerIDsEndpoint = "followers/ids.json"
)

var errUnexpectedStatus = errors.New("unexpected response status")

// User is the bit of a profile we log.
type User struct {
	ID         int64
	ScreenName string
	Name       string
}

// TwitterAPI is everything the grow and prune actions need from Twitter.
type TwitterAPI interface {
	SearchUsers(query string) (idSet, error)
	Follow(id int64) (bool, error)
	Unfollow(id int64) (bool, error)
	ShowUser(id int64) (User, error)
	ListFollowing() (idSet, error)
	ListFollowers() (idSet, error)
}

type twitterClient struct {
	client *twitter.Client
	log    zerolog.Logger
}

// newTwitterHTTPClient returns an http.Client that signs every request with
// the account's OAuth1 credentials.
func newTwitterHTTPClient(cfg Config) *http.Client {
	config := oauth1.NewConfig(cfg.ConsumerKey, cfg.ConsumerSecret)
	token := oauth1.NewToken(cfg.AccessToken, cfg.AccessTokenSecret)
	return config.Client(oauth1.NoContext, token)
}

func newTwitterClient(httpClient *http.Client, log zerolog.Logger) *twitterClient {
	return &twitterClient{
		client: twitter.NewClient(httpClient),
		log:    log,
	}
}

// checkResponse turns anything other than a 200 into a RemoteError.
// go-twitter only reports an error for non-2xx responses when the body
// decodes as a Twitter error, so the status code is checked directly.
func checkResponse(op, endpoint string, resp *http.Response, err error) error {
	if resp == nil {
		if err == nil {
			err = errors.New("no response")
		}
		return &RemoteError{Op: op, Endpoint: endpoint, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		if err == nil {
			err = errUnexpectedStatus
		}
		return &RemoteError{Op: op, Endpoint: endpoint, StatusCode: resp.StatusCode, Err: err}
	}
	if err != nil {
		return &RemoteError{Op: op, Endpoint: endpoint, StatusCode: resp.StatusCode, Err: err}
	}
	return nil
}

// authorID is who wrote the tweet. For a retweet that's the original author,
// not the account that retweeted it.
func authorID(tweet twitter.Tweet) (int64, bool) {
	if tweet.RetweetedStatus != nil && tweet.RetweetedStatus.User != nil {
		return tweet.RetweetedStatus.User.ID, true
	}
	if tweet.User != nil {
		return tweet.User.ID, true
	}
	return 0, false
}

// SearchUsers runs a tweet search and returns the authors of the matches.
func (c *twitterClient) SearchUsers(query string) (idSet, error) {
	search, resp, err := c.client.Search.Tweets(&twitter.SearchTweetParams{
		Query: query,
		Count: SEARCH_COUNT,
	})
	if err := checkResponse("search users", searchEndpoint, resp, err); err != nil {
		return nil, err
	}

	ids := idSet{}
	for _, tweet := range search.Statuses {
		if id, ok := authorID(tweet); ok {
			ids.add(id)
		}
	}
	c.log.Debug().Str("query", query).Int("tweets", len(search.Statuses)).Int("users", len(ids)).Msg("searched tweets")
	return ids, nil
}

// Follow reports false when Twitter refuses the follow. That's what happens
// once the account hits its follow limit, so it isn't treated as an error.
func (c *twitterClient) Follow(id int64) (bool, error) {
	_, resp, err := c.client.Friendships.Create(&twitter.FriendshipCreateParams{
		UserID: id,
		Follow: twitter.Bool(true),
	})
	if resp != nil && resp.StatusCode != http.StatusOK {
		c.log.Warn().Int64("user_id", id).Int("status", resp.StatusCode).AnErr("api_error", err).Msg("follow refused")
		return false, nil
	}
	if err := checkResponse("follow", followEndpoint, resp, err); err != nil {
		return false, err
	}
	return true, nil
}

func (c *twitterClient) Unfollow(id int64) (bool, error) {
	_, resp, err := c.client.Friendships.Destroy(&twitter.FriendshipDestroyParams{UserID: id})
	if err := checkResponse("unfollow", unfollowEndpoint, resp, err); err != nil {
		return false, err
	}
	return true, nil
}

func (c *twitterClient) ShowUser(id int64) (User, error) {
	user, resp, err := c.client.Users.Show(&twitter.UserShowParams{UserID: id})
	if err := checkResponse("show user", showUserEndpoint, resp, err); err != nil {
		return User{}, err
	}
	return User{ID: user.ID, ScreenName: user.ScreenName, Name: user.Name}, nil
}

// ListFollowing only reads the first page of ids.
func (c *twitterClient) ListFollowing() (idSet, error) {
	friends, resp, err := c.client.Friends.IDs(&twitter.FriendIDParams{})
	if err := checkResponse("list following", friendIDsEndpoint, resp, err); err != nil {
		return nil, err
	}
	return newIDSet(friends.IDs...), nil
}

// ListFollowers only reads the first page of ids.
func (c *twitterClient) ListFollowers() (idSet, error) {
	followers, resp, err := c.client.Followers.IDs(&twitter.FollowerIDParams{})
	if err := checkResponse("list followers", followerIDsEndpoint, resp, err); err != nil {
		return nil, err
	}
	return newIDSet(followers.IDs...), nil
}

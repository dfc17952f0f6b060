package sim_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type loginState struct {
	IsLoggedIn bool `json:"isLoggedIn"`
}

func TestRegisterRejectsDuplicate(t *testing.T) {
	s, _, _ := newTestSim(t)

	body := map[string]string{"username": "bob", "password": "x"}

	env, err := s.Post(context.Background(), "/api/user/register", body)
	require.NoError(t, err)
	require.Equal(t, 200, env.Code)

	env, err = s.Post(context.Background(), "/api/user/register", body)
	require.NoError(t, err)
	require.Equal(t, 400, env.Code)
	require.Contains(t, env.Message, "already registered")
}

func TestLoginFlow(t *testing.T) {
	s, _, _ := newTestSim(t)

	env, err := s.Get(context.Background(), "/api/user/check-login")
	require.NoError(t, err)
	require.Equal(t, 200, env.Code)
	require.False(t, decode[loginState](t, env).IsLoggedIn)

	_, err = s.Post(context.Background(), "/api/user/register", map[string]string{
		"username": "alice", "password": "secret", "phone": "123", "gender": "f",
	})
	require.NoError(t, err)

	env, err = s.Post(context.Background(), "/api/user/check-login", map[string]string{
		"username": "alice", "password": "wrong",
	})
	require.NoError(t, err)
	require.Equal(t, 400, env.Code)

	env, err = s.Post(context.Background(), "/api/user/check-login", map[string]string{
		"username": "alice", "password": "secret",
	})
	require.NoError(t, err)
	require.Equal(t, 200, env.Code)

	env, err = s.Get(context.Background(), "/api/user/check-login")
	require.NoError(t, err)
	require.True(t, decode[loginState](t, env).IsLoggedIn)
}

func TestLoginUnknownUser(t *testing.T) {
	s, _, _ := newTestSim(t)

	env, err := s.Post(context.Background(), "/api/user/check-login", map[string]string{
		"username": "ghost", "password": "x",
	})
	require.NoError(t, err)
	require.Equal(t, 400, env.Code)
}

func TestCheckUsernameDenylist(t *testing.T) {
	s, _, _ := newTestSim(t)

	for _, taken := range []string{"admin", "test", "user123"} {
		env, err := s.Post(context.Background(), "/api/user/check-username", map[string]string{"username": taken})
		require.NoError(t, err)
		require.Equal(t, 400, env.Code)
	}

	env, err := s.Post(context.Background(), "/api/user/check-username", map[string]string{"username": "fresh"})
	require.NoError(t, err)
	require.Equal(t, 200, env.Code)
}

func TestCheckNickname(t *testing.T) {
	s, _, _ := newTestSim(t)

	env, err := s.Post(context.Background(), "/api/user/check-nickname", map[string]string{"nickname": ""})
	require.NoError(t, err)
	require.Equal(t, 400, env.Code)

	env, err = s.Post(context.Background(), "/api/user/check-nickname", map[string]string{"nickname": "n"})
	require.NoError(t, err)
	require.Equal(t, 200, env.Code)
}

func TestUserInfoMerge(t *testing.T) {
	s, _, _ := newTestSim(t)

	env, err := s.Get(context.Background(), "/api/user/info")
	require.NoError(t, err)
	require.Equal(t, 200, env.Code)
	require.Empty(t, decode[map[string]any](t, env))

	env, err = s.Post(context.Background(), "/api/user/update", map[string]any{"nickname": "Fresh Bob"})
	require.NoError(t, err)
	require.Equal(t, 200, env.Code)

	env, err = s.Post(context.Background(), "/api/user/update", map[string]any{"gender": "m"})
	require.NoError(t, err)

	info := decode[map[string]any](t, env)
	require.Equal(t, "Fresh Bob", info["nickname"])
	require.Equal(t, "m", info["gender"])
}

func TestUploadAvatar(t *testing.T) {
	s, _, _ := newTestSim(t)

	env, err := s.Post(context.Background(), "/api/user/upload-avatar", map[string]any{})
	require.NoError(t, err)
	require.Equal(t, 200, env.Code)

	data := decode[map[string]any](t, env)
	url, _ := data["url"].(string)
	require.Contains(t, url, "cat.jpeg?t=")

	env, err = s.Get(context.Background(), "/api/user/info")
	require.NoError(t, err)
	info := decode[map[string]any](t, env)
	require.Equal(t, url, info["avatar"])
}

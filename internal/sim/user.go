package sim

import (
	"context"
	"fmt"

	"github.com/freshmall/shopsim/internal/hash"
	"github.com/freshmall/shopsim/internal/kvstore"
)

// registeredUser is the durable shape of one registry entry. Passwords
// are stored bcrypt-hashed, never as plaintext.
type registeredUser struct {
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
	Phone        string `json:"phone"`
	Gender       string `json:"gender"`
}

// usernameDenylist backs the pure check-username validation.
var usernameDenylist = map[string]bool{
	"admin":   true,
	"test":    true,
	"user123": true,
}

func (s *Simulator) loadRegistry(ctx context.Context) ([]registeredUser, error) {
	var users []registeredUser
	if _, err := kvstore.GetJSON(ctx, s.store, kvstore.KeyRegisteredUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Simulator) handleCheckLoginState(ctx context.Context, _ Request) (Envelope, error) {
	flag, _, err := s.store.Get(ctx, kvstore.KeyIsLoggedIn)
	if err != nil {
		return Envelope{}, err
	}
	loggedIn := flag == "true"

	// An expired or tampered session reads back as logged out even if
	// the flag is still set.
	if loggedIn {
		token, ok, err := s.store.Get(ctx, kvstore.KeySessionToken)
		if err != nil {
			return Envelope{}, err
		}
		if ok {
			if _, err := s.sessions.Verify(token); err != nil {
				loggedIn = false
			}
		}
	}

	return OK(map[string]any{"isLoggedIn": loggedIn}, "ok"), nil
}

func (s *Simulator) handleLogin(ctx context.Context, req Request) (Envelope, error) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := req.Decode(&body); err != nil {
		return Invalid("invalid body"), nil
	}

	users, err := s.loadRegistry(ctx)
	if err != nil {
		return Envelope{}, err
	}

	matched := false
	for _, u := range users {
		if u.Username == body.Username && hash.CheckPassword(u.PasswordHash, body.Password) {
			matched = true
			break
		}
	}
	if !matched {
		return Invalid("wrong username or password, or user not registered"), nil
	}

	token, err := s.sessions.Mint(body.Username, s.now())
	if err != nil {
		return Envelope{}, fmt.Errorf("mint session: %w", err)
	}
	if err := s.store.Set(ctx, kvstore.KeyIsLoggedIn, "true"); err != nil {
		return Envelope{}, err
	}
	if err := s.store.Set(ctx, kvstore.KeySessionToken, token); err != nil {
		return Envelope{}, err
	}

	return OK(nil, "login successful"), nil
}

func (s *Simulator) handleRegister(ctx context.Context, req Request) (Envelope, error) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Phone    string `json:"phone"`
		Gender   string `json:"gender"`
	}
	if err := req.Decode(&body); err != nil {
		return Invalid("invalid body"), nil
	}

	users, err := s.loadRegistry(ctx)
	if err != nil {
		return Envelope{}, err
	}
	for _, u := range users {
		if u.Username == body.Username {
			return Invalid("username already registered"), nil
		}
	}

	pwHash, err := hash.HashPassword(body.Password)
	if err != nil {
		return Envelope{}, fmt.Errorf("hash password: %w", err)
	}
	users = append(users, registeredUser{
		Username:     body.Username,
		PasswordHash: pwHash,
		Phone:        body.Phone,
		Gender:       body.Gender,
	})
	if err := kvstore.SetJSON(ctx, s.store, kvstore.KeyRegisteredUsers, users); err != nil {
		return Envelope{}, err
	}

	return OK(nil, "registered"), nil
}

func (s *Simulator) handleCheckUsername(_ context.Context, req Request) (Envelope, error) {
	var body struct {
		Username string `json:"username"`
	}
	if err := req.Decode(&body); err != nil {
		return Invalid("invalid body"), nil
	}
	if usernameDenylist[body.Username] {
		return Invalid("username already exists"), nil
	}
	return OK(nil, "username available"), nil
}

func (s *Simulator) handleCheckNickname(_ context.Context, req Request) (Envelope, error) {
	var body struct {
		Nickname string `json:"nickname"`
	}
	if err := req.Decode(&body); err != nil {
		return Invalid("invalid body"), nil
	}
	if len(body.Nickname) < 1 {
		return Invalid("nickname must be at least 1 character"), nil
	}
	return OK(nil, "nickname available"), nil
}

func (s *Simulator) loadProfile(ctx context.Context) (map[string]any, error) {
	info := map[string]any{}
	if _, err := kvstore.GetJSON(ctx, s.store, kvstore.KeyUserInfo, &info); err != nil {
		return nil, err
	}
	return info, nil
}

func (s *Simulator) handleUserInfo(ctx context.Context, _ Request) (Envelope, error) {
	info, err := s.loadProfile(ctx)
	if err != nil {
		return Envelope{}, err
	}
	return OK(info, "ok"), nil
}

// handleUserUpdate shallow-merges the request body into the profile.
func (s *Simulator) handleUserUpdate(ctx context.Context, req Request) (Envelope, error) {
	var body map[string]any
	if err := req.Decode(&body); err != nil {
		return Invalid("invalid body"), nil
	}

	info, err := s.loadProfile(ctx)
	if err != nil {
		return Envelope{}, err
	}
	for k, v := range body {
		info[k] = v
	}
	if err := kvstore.SetJSON(ctx, s.store, kvstore.KeyUserInfo, info); err != nil {
		return Envelope{}, err
	}

	return OK(info, "updated"), nil
}

func (s *Simulator) handleUploadAvatar(ctx context.Context, _ Request) (Envelope, error) {
	url := fmt.Sprintf("https://fastly.jsdelivr.net/npm/@vant/assets/cat.jpeg?t=%d", s.now().UnixMilli())

	info, err := s.loadProfile(ctx)
	if err != nil {
		return Envelope{}, err
	}
	info["avatar"] = url
	if err := kvstore.SetJSON(ctx, s.store, kvstore.KeyUserInfo, info); err != nil {
		return Envelope{}, err
	}

	return OK(map[string]any{"url": url}, "uploaded"), nil
}

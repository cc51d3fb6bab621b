package store

// Login records the session token and user.
func (s *Store) Login(token string, user User) {
	s.mu.Lock()
	s.token = token
	s.user = &user
	s.mu.Unlock()
	s.notify()
}

// Logout clears the session.
func (s *Store) Logout() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()
	s.notify()
}

// UpdateUser replaces the stored user without touching the token.
func (s *Store) UpdateUser(user User) {
	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
	s.notify()
}

// User returns the signed-in user.
func (s *Store) User() (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != "" && s.user != nil
}

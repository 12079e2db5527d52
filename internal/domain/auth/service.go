package auth

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"skilllink/internal/domain/profile"
	"skilllink/internal/pkg/errs"
	"skilllink/internal/pkg/jwt"
	"skilllink/internal/pkg/validator"
)

// Service is the identity adapter: it owns credentials and bearer sessions.
type Service struct {
	people     profile.Repository
	profiles   *profile.Service
	tokens     *jwt.Service
	store      SessionStore
	bcryptCost int

	mu        sync.RWMutex
	listeners map[int]Listener
	nextID    int
}

func NewService(people profile.Repository, tokens *jwt.Service, store SessionStore) *Service {
	return &Service{
		people:     people,
		profiles:   profile.NewService(people),
		tokens:     tokens,
		store:      store,
		bcryptCost: bcrypt.DefaultCost,
		listeners:  make(map[int]Listener),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp creates the person (and worker rows when requested) and signs it in.
func (s *Service) SignUp(ctx context.Context, req *SignUpRequest) (*Session, error) {
	email := normalizeEmail(req.Email)
	if validator.Var(email, "required,email") != nil {
		return nil, ErrInvalidEmail
	}
	if len(req.Password) < minPasswordLength {
		return nil, ErrWeakPassword
	}
	first := strings.TrimSpace(req.FirstName)
	if first == "" {
		return nil, errs.Validation("first name must not be empty")
	}

	hash, err := hashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, errs.Remote("hash password", err)
	}
	person := &profile.Person{
		FirstName:    first,
		LastName:     strings.TrimSpace(req.LastName),
		Email:        email,
		Comuna:       strings.TrimSpace(req.Comuna),
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: hash,
	}
	if err := s.people.CreateAccount(ctx, person, req.AsWorker); err != nil {
		return nil, err
	}

	role := profile.RoleClient
	if req.AsWorker {
		role = profile.RoleWorker
	}
	log.Printf("auth: signed up person_id=%d role=%s", person.ID, role)
	return s.issue(person, role)
}

func (s *Service) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	person, err := s.people.GetPersonByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, profile.ErrPersonNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if person.PasswordHash == "" || !checkPassword(password, person.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	p, err := s.profiles.ResolveID(ctx, person.ID)
	if err != nil {
		return nil, err
	}
	return s.issue(person, p.Role)
}

func (s *Service) issue(person *profile.Person, role profile.Role) (*Session, error) {
	token, claims, err := s.tokens.GenerateToken(person.ID, person.Email, string(role))
	if err != nil {
		return nil, errs.Remote("sign token", err)
	}
	session := &Session{
		AccessToken: token,
		TokenID:     claims.ID,
		ExpiresAt:   claims.ExpiresAt.Time,
		PersonID:    person.ID,
		Email:       person.Email,
		Role:        role,
	}
	s.notify(EventSignedIn, session)
	return session, nil
}

// SignOut revokes the session's token until it would have expired anyway.
func (s *Service) SignOut(ctx context.Context, session *Session) error {
	if session == nil || session.TokenID == "" {
		return ErrInvalidSession
	}
	if err := s.store.Revoke(ctx, session.TokenID, session.ExpiresAt); err != nil {
		return errs.Remote("revoke session", err)
	}
	s.notify(EventSignedOut, nil)
	return nil
}

// GetSession validates a bearer token and checks it was not signed out.
func (s *Service) GetSession(ctx context.Context, token string) (*Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvalidSession
	}
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, ErrInvalidSession
	}
	revoked, err := s.store.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, errs.Remote("check session", err)
	}
	if revoked {
		return nil, ErrSessionRevoked
	}

	var expires time.Time
	if claims.ExpiresAt != nil {
		expires = claims.ExpiresAt.Time
	}
	return &Session{
		AccessToken: token,
		TokenID:     claims.ID,
		ExpiresAt:   expires,
		PersonID:    claims.PersonID,
		Email:       claims.Email,
		Role:        profile.Role(claims.Role),
	}, nil
}

// OnAuthStateChange registers fn and returns a function that removes it.
func (s *Service) OnAuthStateChange(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

func (s *Service) notify(event Event, session *Session) {
	s.mu.RLock()
	fns := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(event, session)
	}
}

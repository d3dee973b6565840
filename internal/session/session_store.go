package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-hrms/internal/identity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("session not found")

const keyPrefix = "session:"

//go:generate mockgen -source=session_store.go -destination=mock/session_store_mock.go -package=mock
type Store interface {
	Create(ctx context.Context, caller identity.Caller) (string, error)
	Get(ctx context.Context, sid string) (identity.Caller, error)
	Delete(ctx context.Context, sid string) error
}

// record is the server-side session payload.
type record struct {
	UserID   string `json:"user_id"`
	Name     string `json:"user_name"`
	Email    string `json:"user_email"`
	Role     string `json:"role"`
	EmpID    string `json:"emp_id,omitempty"`
	DeptID   string `json:"dept_id,omitempty"`
	Position string `json:"position,omitempty"`
}

type redisStore struct {
	rdb   *redis.Client
	ttl   time.Duration
	newID func() string
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) Store {
	return &redisStore{
		rdb:   rdb,
		ttl:   ttl,
		newID: func() string { return uuid.NewString() },
	}
}

func Key(sid string) string {
	return keyPrefix + sid
}

func (s *redisStore) Create(ctx context.Context, caller identity.Caller) (string, error) {
	payload, err := json.Marshal(toRecord(caller))
	if err != nil {
		return "", err
	}

	sid := s.newID()
	if err := s.rdb.Set(ctx, Key(sid), payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return sid, nil
}

func (s *redisStore) Get(ctx context.Context, sid string) (identity.Caller, error) {
	raw, err := s.rdb.Get(ctx, Key(sid)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return identity.Caller{}, ErrSessionNotFound
		}
		return identity.Caller{}, fmt.Errorf("load session: %w", err)
	}

	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return identity.Caller{}, fmt.Errorf("decode session: %w", err)
	}
	caller, err := rec.toCaller()
	if err != nil {
		return identity.Caller{}, err
	}
	return caller, nil
}

func (s *redisStore) Delete(ctx context.Context, sid string) error {
	return s.rdb.Del(ctx, Key(sid)).Err()
}

func toRecord(c identity.Caller) record {
	rec := record{
		UserID:   c.UserID.String(),
		Name:     c.Name,
		Email:    c.Email,
		Role:     c.Role.String(),
		Position: c.Position,
	}
	if c.EmployeeID != nil {
		rec.EmpID = c.EmployeeID.String()
	}
	if c.DepartmentID != nil {
		rec.DeptID = c.DepartmentID.String()
	}
	return rec
}

func (r record) toCaller() (identity.Caller, error) {
	uid, err := uuid.Parse(r.UserID)
	if err != nil {
		return identity.Caller{}, ErrSessionNotFound
	}
	c := identity.Caller{
		UserID:   uid,
		Name:     r.Name,
		Email:    r.Email,
		Role:     identity.Role(r.Role),
		Position: r.Position,
	}
	if !c.Role.Valid() {
		return identity.Caller{}, ErrSessionNotFound
	}
	if id, err := uuid.Parse(r.EmpID); err == nil {
		c.EmployeeID = &id
	}
	if id, err := uuid.Parse(r.DeptID); err == nil {
		c.DepartmentID = &id
	}
	return c, nil
}
